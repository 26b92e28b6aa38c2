package bootstrap

import (
	"time"

	"github.com/metalvault/metalvault/broadcast"
	"github.com/metalvault/metalvault/domain"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/fetcher"
	"github.com/metalvault/metalvault/mongo"
	"github.com/metalvault/metalvault/repository/repository_catalog"
	"github.com/metalvault/metalvault/usecase/usecase_catalog"
)

func NewFetcher(env *Env) (*fetcher.Client, *fetcher.Endpoints, error) {
	client, err := fetcher.New(fetcher.Options{
		BaseURL:    env.CatalogBaseURL,
		Timeout:    time.Duration(env.FetchTimeout) * time.Second,
		RateLimit:  env.FetchRateLimit,
		RetryCount: env.FetchRetryCount,
		UserAgent:  env.UserAgent,
	})
	if err != nil {
		return nil, nil, err
	}
	endpoints, err := fetcher.NewEndpoints(env.CatalogBaseURL)
	if err != nil {
		return nil, nil, err
	}
	return client, endpoints, nil
}

// NewRefreshPolicy 由配置构造新鲜度策略
func NewRefreshPolicy(env *Env) usecase_catalog.RefreshPolicy {
	statuses := make([]catalog_models.BandStatus, 0, len(env.RefreshStatusList()))
	for _, s := range env.RefreshStatusList() {
		statuses = append(statuses, catalog_models.ParseBandStatus(s))
	}
	return usecase_catalog.NewRefreshPolicy(time.Duration(env.StaleAfterDays)*24*time.Hour, statuses)
}

// NewCatalog 组装编排层，进程内只构造一次
func NewCatalog(env *Env, db mongo.Database, events *broadcast.Broadcaster) (*usecase_catalog.Catalog, error) {
	client, endpoints, err := NewFetcher(env)
	if err != nil {
		return nil, err
	}

	albums := repository_catalog.NewAlbumRepository(db, domain.CollectionCatalogAlbums)
	deps := &usecase_catalog.Deps{
		Bands:     repository_catalog.NewBandRepository(db, domain.CollectionCatalogBands, albums),
		Albums:    albums,
		Members:   repository_catalog.NewMemberRepository(db, domain.CollectionCatalogMembers),
		Fetcher:   client,
		Endpoints: endpoints,
		Publisher: events,
		Policy:    NewRefreshPolicy(env),
		Scheduler: usecase_catalog.NewRefreshScheduler(env.RefreshWorkers, time.Duration(env.RefreshTimeout)*time.Second),
		Search:    usecase_catalog.NewSearchCache(env.SearchCacheSize, time.Duration(env.SearchCacheTTL)*time.Second),
		Timeout:   env.ContextTimeoutDuration(),
	}
	return usecase_catalog.NewCatalog(deps), nil
}
