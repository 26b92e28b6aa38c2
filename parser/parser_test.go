package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "读取 fixture %s 失败", name)
	return b
}

func TestIDFromHref(t *testing.T) {
	cases := []struct {
		href string
		want int64
		ok   bool
	}{
		{"https://www.metal-archives.com/bands/Mayhem/67", 67, true},
		{"https://www.metal-archives.com/bands/Mayhem/67/", 67, true},
		{"https://www.metal-archives.com/bands/Mayhem/67#band_tab_members_all", 67, true},
		{"/albums/Mayhem/Deathcrush/1234?x=1", 1234, true},
		{"https://www.metal-archives.com/bands/Mayhem", 0, false},
		{"", 0, false},
		{"https://www.metal-archives.com/bands/Mayhem/-3", 0, false},
	}
	for _, c := range cases {
		id, err := idFromHref(c.href)
		if c.ok {
			assert.NoError(t, err, c.href)
			assert.Equal(t, c.want, id, c.href)
		} else {
			assert.ErrorIs(t, err, errNoID, c.href)
		}
	}
}

func TestMatchDefinitionsFirstMatchWins(t *testing.T) {
	doc, err := loadDocument([]byte(`<dl>
		<dt>Current LABEL:</dt><dd>First</dd>
		<dt>Last label:</dt><dd>Second</dd>
		<dt>Lyrical themes:</dt><dd>Winter,   Darkness</dd>
		<dt>Orphan:</dt>
	</dl>`))
	require.NoError(t, err)

	got := matchDefinitions(doc.Selection, bandVocabulary)
	assert.Equal(t, map[string]string{"label": "First", "themes": "Winter, Darkness"}, got)
}

func TestExtractDispatch(t *testing.T) {
	rec, err := Extract(catalog_models.PageKindBand, readFixture(t, "band.html"))
	require.NoError(t, err)
	assert.Equal(t, catalog_models.PageKindBand, rec.PageKind())

	rec, err = Extract(catalog_models.PageKindStats, readFixture(t, "stats.html"))
	require.NoError(t, err)
	assert.Equal(t, catalog_models.PageKindStats, rec.PageKind())

	rec, err = Extract(catalog_models.PageKindDiscography, readFixture(t, "discography.html"))
	assert.Error(t, err)
	require.NotNil(t, rec)
	assert.Len(t, rec.(catalog_models.Discography), 5)

	_, err = Extract(catalog_models.PageKind("playlist"), nil)
	assert.Error(t, err)
}

// 提取是纯函数：同一输入两次结果完全一致
func TestExtractIsDeterministic(t *testing.T) {
	for _, kind := range catalog_models.PageKinds {
		fixture := map[catalog_models.PageKind]string{
			catalog_models.PageKindBand:        "band.html",
			catalog_models.PageKindAlbum:       "album.html",
			catalog_models.PageKindMember:      "member.html",
			catalog_models.PageKindDiscography: "discography.html",
			catalog_models.PageKindBandSearch:  "band_search.json",
			catalog_models.PageKindAlbumSearch: "album_search.html",
			catalog_models.PageKindStats:       "stats.html",
			catalog_models.PageKindLinks:       "links.html",
			catalog_models.PageKindLyrics:      "lyrics.html",
			catalog_models.PageKindDescription: "description.html",
		}[kind]
		markup := readFixture(t, fixture)

		first, _ := Extract(kind, markup)
		second, _ := Extract(kind, markup)
		assert.Equal(t, first, second, string(kind))
	}
}
