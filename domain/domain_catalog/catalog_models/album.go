package catalog_models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Album struct {
	ObjectID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID            int64              `bson:"id" json:"id"`
	Title         string             `bson:"title" json:"title"`
	TitleSlug     string             `bson:"title_slug" json:"title_slug"`
	BandIDs       []int64            `bson:"band_ids" json:"band_ids"`
	BandNames     []string           `bson:"band_names" json:"band_names"`
	BandNamesSlug []string           `bson:"band_names_slug" json:"band_names_slug"`
	Type          string             `bson:"type" json:"type"`
	ReleaseDate   string             `bson:"release_date" json:"release_date"`
	CatalogID     string             `bson:"catalog_id" json:"catalog_id"`
	Label         string             `bson:"label" json:"label"`
	Format        string             `bson:"format" json:"format"`
	Tracklist     []Track            `bson:"tracklist" json:"tracklist"`
	CoverURL      string             `bson:"cover_url" json:"cover_url"`
	URL           string             `bson:"url" json:"url"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
	ParsingError  string             `bson:"parsing_error,omitempty" json:"parsing_error,omitempty"`
}

func (Album) PageKind() PageKind { return PageKindAlbum }

// BandName 首个署名乐队，分裂专辑取第一个
func (a *Album) BandName() string {
	if len(a.BandNames) == 0 {
		return ""
	}
	return a.BandNames[0]
}

// Track 曲目；ID 仅在有歌词链接时存在，Lyrics 按需延迟填充
type Track struct {
	ID       *int64  `bson:"id" json:"id"`
	Number   int     `bson:"number" json:"number"`
	Title    string  `bson:"title" json:"title"`
	Duration string  `bson:"duration" json:"duration"`
	Note     string  `bson:"note,omitempty" json:"note,omitempty"`
	Lyrics   *string `bson:"lyrics" json:"lyrics"`
	CDNumber *int    `bson:"cd_number" json:"cdNumber"`
	Side     *string `bson:"side" json:"side"`
}

type Lyrics string

func (Lyrics) PageKind() PageKind { return PageKindLyrics }

// DiscographyEntry 专辑在乐队唱片目录中的展示形态
func (a *Album) DiscographyEntry() DiscographyEntry {
	return DiscographyEntry{
		ID:          a.ID,
		Title:       a.Title,
		TitleSlug:   a.TitleSlug,
		Type:        a.Type,
		ReleaseDate: a.ReleaseDate,
		CoverURL:    a.CoverURL,
		URL:         a.URL,
	}
}
