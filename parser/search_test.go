package parser

import (
	"testing"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBandSearch(t *testing.T) {
	got := ExtractBandSearch(readFixture(t, "band_search.json"))

	assert.Equal(t, 2, got.TotalRecords)
	assert.Equal(t, []catalog_models.BandSearchResult{
		{ID: 67, Name: "Mayhem", NameSlug: "mayhem", Genre: "Black Metal", Country: "Norway"},
		{ID: 1234567, Name: "Mayhem", NameSlug: "mayhem", Genre: "Thrash Metal", Country: "Brazil"},
	}, got.Results)
	// 无链接的行被跳过并记录
	assert.Contains(t, got.ParsingError, "band_search.aaData[2].id")
}

func TestExtractAlbumSearch_WrappedInPre(t *testing.T) {
	got := ExtractAlbumSearch(readFixture(t, "album_search.html"))

	require.Empty(t, got.ParsingError)
	assert.Equal(t, 1, got.TotalRecords)
	assert.Equal(t, []catalog_models.AlbumSearchResult{{
		ID:           522,
		Title:        "De Mysteriis Dom Sathanas",
		TitleSlug:    "de_mysteriis_dom_sathanas",
		BandID:       67,
		BandName:     "Mayhem",
		BandNameSlug: "mayhem",
		Type:         "Full-length",
		ReleaseDate:  "May 24th, 1994",
	}}, got.Results)
}

func TestExtractSearch_InvalidPayload(t *testing.T) {
	got := ExtractBandSearch([]byte(`<html><body>Too many requests</body></html>`))
	assert.Equal(t, "band_search: no json payload", got.ParsingError)
	assert.NotNil(t, got.Results)
	assert.Empty(t, got.Results)

	got = ExtractBandSearch([]byte(`{"error":"query too short","aaData":[]}`))
	assert.Equal(t, "band_search: catalog error: query too short", got.ParsingError)
}
