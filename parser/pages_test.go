package parser

import (
	"testing"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/stretchr/testify/assert"
)

func TestExtractLinks(t *testing.T) {
	got := ExtractLinks(readFixture(t, "links.html"))
	assert.Equal(t, catalog_models.SocialLinks{
		{Social: "Facebook", URL: "https://www.facebook.com/mayhemofficial"},
		{Social: "Bandcamp", URL: "https://mayhem.bandcamp.com/"},
	}, got)

	assert.Empty(t, ExtractLinks([]byte(`<p>No links</p>`)))
}

func TestExtractLyrics(t *testing.T) {
	got := ExtractLyrics(readFixture(t, "lyrics.html"))
	assert.Equal(t, catalog_models.Lyrics("Upon the frozen land\nWhere death reigns\n\nFreezing moon"), got)
}

func TestExtractDescription(t *testing.T) {
	got := string(ExtractDescription(readFixture(t, "description.html")))
	assert.Contains(t, got, `<a href="/bands/Thorns/45">Thorns</a>`)
	assert.Contains(t, got, `<a href="/artists/Euronymous/1031">Euronymous</a>`)
	assert.NotContains(t, got, CatalogOrigin)
}

func TestExtractStats(t *testing.T) {
	got := ExtractStats(readFixture(t, "stats.html"))

	assert.Empty(t, got.ParsingError)
	assert.Equal(t, catalog_models.BandStats{
		Active:      97513,
		OnHold:      3101,
		SplitUp:     64820,
		ChangedName: 5210,
		Unknown:     10601,
		Total:       181245,
	}, got.Bands)
	assert.Equal(t, int64(465020), got.Albums)
	assert.Equal(t, int64(3941337), got.Songs)
}

func TestExtractStats_MissingCounters(t *testing.T) {
	got := ExtractStats([]byte(`<p>maintenance</p>`))
	assert.Contains(t, got.ParsingError, "stats.bands.active")
	assert.Contains(t, got.ParsingError, "stats.albums")
	assert.Zero(t, got.Bands.Total)
}

func TestParseCount(t *testing.T) {
	n, err := parseCount(" 3,941,337 ")
	assert.NoError(t, err)
	assert.Equal(t, int64(3941337), n)

	_, err = parseCount("many")
	assert.Error(t, err)
}
