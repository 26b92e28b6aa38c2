package catalog_interface

import (
	"context"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
)

type BandUsecase interface {
	GetBand(ctx context.Context, id int64) catalog_models.PageInfo[*catalog_models.Band]
	// RefreshBand 强制重新抓取并替换存储副本
	RefreshBand(ctx context.Context, id int64) catalog_models.PageInfo[*catalog_models.Band]
	RandomBand(ctx context.Context) catalog_models.PageInfo[*catalog_models.Band]
	SearchBands(ctx context.Context, query string) catalog_models.PageInfo[catalog_models.BandSearchResults]
}

type AlbumUsecase interface {
	GetAlbum(ctx context.Context, id int64) catalog_models.PageInfo[*catalog_models.Album]
	SearchAlbums(ctx context.Context, query string) catalog_models.PageInfo[catalog_models.AlbumSearchResults]
}

type MemberUsecase interface {
	GetMember(ctx context.Context, id int64) catalog_models.PageInfo[*catalog_models.Member]
}

type LyricsUsecase interface {
	// GetLyrics albumID 为 0 时按曲目 id 查找所属专辑
	GetLyrics(ctx context.Context, trackID, albumID int64) catalog_models.PageInfo[catalog_models.Lyrics]
}

type StatsUsecase interface {
	GetStats(ctx context.Context) catalog_models.PageInfo[catalog_models.StatsReport]
}
