package usecase_catalog

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/metalvault/metalvault/broadcast"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/domain/mocks"
	"github.com/metalvault/metalvault/fetcher"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testOrigin = "https://www.metal-archives.com"

type harness struct {
	bands     *mocks.BandRepository
	albums    *mocks.AlbumRepository
	members   *mocks.MemberRepository
	fetcher   *mocks.Fetcher
	endpoints *fetcher.Endpoints
	events    *broadcast.Subscription
	deps      *Deps
	now       time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	endpoints, err := fetcher.NewEndpoints(testOrigin)
	require.NoError(t, err)

	b := broadcast.New(32)
	h := &harness{
		bands:     &mocks.BandRepository{},
		albums:    &mocks.AlbumRepository{},
		members:   &mocks.MemberRepository{},
		fetcher:   &mocks.Fetcher{},
		endpoints: endpoints,
		events:    b.Subscribe(broadcast.DefaultChannel),
		now:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	h.deps = &Deps{
		Bands:     h.bands,
		Albums:    h.albums,
		Members:   h.members,
		Fetcher:   h.fetcher,
		Endpoints: endpoints,
		Publisher: b,
		Policy:    DefaultRefreshPolicy().WithClock(func() time.Time { return h.now }),
		Scheduler: NewRefreshScheduler(2, time.Minute),
		Search:    NewSearchCache(8, time.Minute),
		Timeout:   10 * time.Second,
	}
	t.Cleanup(h.deps.Scheduler.Wait)
	return h
}

func (h *harness) daysAgo(n int) time.Time {
	return h.now.Add(-time.Duration(n) * 24 * time.Hour)
}

func (h *harness) serve(url, body string) *mock.Call {
	return h.fetcher.On("Fetch", mock.Anything, url).Return([]byte(body), nil)
}

func (h *harness) fail(url string) *mock.Call {
	return h.fetcher.On("Fetch", mock.Anything, url).
		Return(nil, &catalog_models.FetchError{URL: url, StatusCode: 503})
}

// drain 读出已发布的全部事件
func (h *harness) drain() []broadcast.Event {
	var out []broadcast.Event
	for {
		select {
		case e := <-h.events.Events():
			out = append(out, e)
		default:
			return out
		}
	}
}

func bandPage(id int64, name, status string) string {
	return fmt.Sprintf(`<html><body>
<h1 class="band_name"><a href="%s/bands/%s/%d">%s</a></h1>
<div id="band_stats"><dl><dt>Country of origin:</dt><dd>Norway</dd><dt>Status:</dt><dd>%s</dd></dl></div>
</body></html>`, testOrigin, name, id, name, status)
}

type discogRow struct {
	id    int64
	title string
	year  string
}

func discographyPage(rows ...discogRow) string {
	var sb strings.Builder
	sb.WriteString(`<table class="display discog"><thead><tr><th>Name</th><th>Type</th><th>Year</th></tr></thead><tbody>`)
	for _, r := range rows {
		fmt.Fprintf(&sb, `<tr><td><a href="%s/albums/Mayhem/%s/%d">%s</a></td><td>Full-length</td><td>%s</td></tr>`,
			testOrigin, r.title, r.id, r.title, r.year)
	}
	sb.WriteString(`</tbody></table>`)
	return sb.String()
}

func albumPage(id int64, title string) string {
	return fmt.Sprintf(`<html><body>
<h1 class="album_name"><a href="%s/albums/Mayhem/%s/%d">%s</a></h1>
<h2 class="band_name"><a href="%s/bands/Mayhem/67">Mayhem</a></h2>
<div id="album_info"><dl><dt>Type:</dt><dd>Full-length</dd><dt>Release date:</dt><dd>1994</dd></dl></div>
<a id="cover" href="%s/images/%d.jpg">cover</a>
</body></html>`, testOrigin, title, id, title, testOrigin, testOrigin, id)
}

const linksPage = `<a href="https://mayhem.bandcamp.com/" target="_blank">Bandcamp</a>`
