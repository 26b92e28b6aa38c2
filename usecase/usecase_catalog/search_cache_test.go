package usecase_catalog

import (
	"testing"
	"time"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCacheNormalizesKeys(t *testing.T) {
	cache := NewSearchCache(4, time.Minute)
	results := &catalog_models.BandSearchResults{TotalRecords: 1}

	cache.Add("https://www.metal-archives.com/search/ajax-band-search/?field=name&query=mayhem", results)

	got, ok := cache.Get("HTTPS://WWW.Metal-Archives.com/search/ajax-band-search/?query=mayhem&field=name")
	require.True(t, ok)
	assert.Same(t, results, got)
	assert.Equal(t, 1, cache.Len())

	_, ok = cache.Get("https://www.metal-archives.com/search/ajax-band-search/?field=name&query=burzum")
	assert.False(t, ok)
}

func TestSearchCacheEvictsOldest(t *testing.T) {
	cache := NewSearchCache(2, time.Minute)
	for _, q := range []string{"a", "b", "c"} {
		cache.Add("https://www.metal-archives.com/search/ajax-band-search/?field=name&query="+q, &catalog_models.BandSearchResults{})
	}

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get("https://www.metal-archives.com/search/ajax-band-search/?field=name&query=a")
	assert.False(t, ok)
}

func TestNilSearchCache(t *testing.T) {
	var cache *SearchCache
	cache.Add("https://www.metal-archives.com/", &catalog_models.BandSearchResults{})
	_, ok := cache.Get("https://www.metal-archives.com/")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}
