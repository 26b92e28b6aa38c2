package fetcher

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

const normalizeFlags = purell.FlagsSafe |
	purell.FlagRemoveDotSegments |
	purell.FlagRemoveDuplicateSlashes |
	purell.FlagRemoveFragment |
	purell.FlagSortQuery

// Endpoints 目录站点各类页面的地址
type Endpoints struct {
	base *url.URL
}

func NewEndpoints(baseURL string) (*Endpoints, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid catalog base url %q", baseURL)
	}
	return &Endpoints{base: base}, nil
}

func (e *Endpoints) resolve(path string, query url.Values) string {
	u := *e.base
	u.Path = strings.TrimRight(e.base.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return purell.NormalizeURL(&u, normalizeFlags)
}

func (e *Endpoints) BandURL(id int64) string {
	return e.resolve(fmt.Sprintf("/band/view/id/%d", id), nil)
}

func (e *Endpoints) DiscographyURL(bandID int64) string {
	return e.resolve(fmt.Sprintf("/band/discography/id/%d/tab/all", bandID), nil)
}

func (e *Endpoints) BandLinksURL(bandID int64) string {
	return e.resolve(fmt.Sprintf("/link/ajax-list/type/band/id/%d", bandID), nil)
}

func (e *Endpoints) BandDescriptionURL(bandID int64) string {
	return e.resolve(fmt.Sprintf("/band/read-more/id/%d", bandID), nil)
}

func (e *Endpoints) RandomBandURL() string {
	return e.resolve("/band/random", nil)
}

func (e *Endpoints) AlbumURL(id int64) string {
	return e.resolve(fmt.Sprintf("/albums/view/id/%d", id), nil)
}

func (e *Endpoints) MemberURL(id int64) string {
	return e.resolve(fmt.Sprintf("/artists/_/%d", id), nil)
}

func (e *Endpoints) MemberLinksURL(memberID int64) string {
	return e.resolve(fmt.Sprintf("/link/ajax-list/type/person/id/%d", memberID), nil)
}

func (e *Endpoints) LyricsURL(trackID int64) string {
	return e.resolve(fmt.Sprintf("/release/ajax-view-lyrics/id/%d", trackID), nil)
}

func (e *Endpoints) StatsURL() string {
	return e.resolve("/stats", nil)
}

func (e *Endpoints) BandSearchURL(query string) string {
	return e.resolve("/search/ajax-band-search/", searchQuery(query))
}

func (e *Endpoints) AlbumSearchURL(query string) string {
	return e.resolve("/search/ajax-album-search/", searchQuery(query))
}

func searchQuery(query string) url.Values {
	return url.Values{
		"field": {"name"},
		"query": {strings.Join(strings.Fields(query), " ")},
	}
}

// NormalizeURL 规范化任意目录地址，作为缓存键使用
func NormalizeURL(raw string) (string, error) {
	return purell.NormalizeURLString(raw, normalizeFlags)
}
