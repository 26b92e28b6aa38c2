package usecase_catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/parser"
	"go.mongodb.org/mongo-driver/bson"
)

type StatsUsecase struct {
	deps *Deps
}

var _ catalog_interface.StatsUsecase = (*StatsUsecase)(nil)

func NewStatsUsecase(deps *Deps) *StatsUsecase {
	return &StatsUsecase{deps: deps}
}

// GetStats 本地存储统计与远端目录统计；远端失败时仍返回本地部分
func (uc *StatsUsecase) GetStats(ctx context.Context) catalog_models.PageInfo[catalog_models.StatsReport] {
	start := time.Now()
	info := catalog_models.PageInfo[catalog_models.StatsReport]{URL: uc.deps.Endpoints.StatsURL()}
	defer finish(&info, start)

	ctx, cancel := uc.deps.withTimeout(ctx)
	defer cancel()

	local, err := uc.localStats(ctx)
	if err != nil {
		info.Err = err
		return info
	}
	info.Data.Local = local

	page, err := uc.deps.Fetcher.Fetch(ctx, info.URL)
	if err != nil {
		info.Err = err
		return info
	}
	info.Data.Remote = parser.ExtractStats(page)
	return info
}

func (uc *StatsUsecase) localStats(ctx context.Context) (catalog_models.CatalogStats, error) {
	var stats catalog_models.CatalogStats

	bands, err := uc.deps.Bands.CountByStatus(ctx)
	if err != nil {
		return stats, err
	}
	albums, err := uc.deps.Albums.Count(ctx, bson.M{})
	if err != nil {
		return stats, err
	}
	songs, err := uc.deps.Albums.CountTracks(ctx)
	if err != nil {
		return stats, fmt.Errorf("local stats: %w", err)
	}

	stats.Bands = bands
	stats.Albums = albums
	stats.Songs = songs
	return stats, nil
}
