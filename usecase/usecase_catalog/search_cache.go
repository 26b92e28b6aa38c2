package usecase_catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/fetcher"
)

// SearchCache 搜索结果短期缓存，键为规范化后的请求地址
type SearchCache struct {
	cache *expirable.LRU[string, catalog_models.Record]
}

func NewSearchCache(size int, ttl time.Duration) *SearchCache {
	if size <= 0 {
		size = 512
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SearchCache{cache: expirable.NewLRU[string, catalog_models.Record](size, nil, ttl)}
}

func (c *SearchCache) key(url string) string {
	if normalized, err := fetcher.NormalizeURL(url); err == nil {
		return normalized
	}
	return url
}

func (c *SearchCache) Get(url string) (catalog_models.Record, bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(c.key(url))
}

func (c *SearchCache) Add(url string, record catalog_models.Record) {
	if c == nil {
		return
	}
	c.cache.Add(c.key(url), record)
}

func (c *SearchCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
