package catalog_models

type BandSearchResult struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	NameSlug string `json:"name_slug"`
	Genre    string `json:"genre"`
	Country  string `json:"country"`
}

type AlbumSearchResult struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	TitleSlug    string `json:"title_slug"`
	BandID       int64  `json:"band_id"`
	BandName     string `json:"band_name"`
	BandNameSlug string `json:"band_name_slug"`
	Type         string `json:"type"`
	ReleaseDate  string `json:"release_date"`
}

type BandSearchResults struct {
	Results      []BandSearchResult `json:"results"`
	TotalRecords int                `json:"total_records"`
	ParsingError string             `json:"parsing_error,omitempty"`
}

func (BandSearchResults) PageKind() PageKind { return PageKindBandSearch }

type AlbumSearchResults struct {
	Results      []AlbumSearchResult `json:"results"`
	TotalRecords int                 `json:"total_records"`
	ParsingError string              `json:"parsing_error,omitempty"`
}

func (AlbumSearchResults) PageKind() PageKind { return PageKindAlbumSearch }
