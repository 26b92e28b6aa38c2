package catalog_interface

import (
	"context"

	"github.com/metalvault/metalvault/broadcast"
	"github.com/metalvault/metalvault/domain"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fetcher 获取目录页面原始内容，失败时返回 *catalog_models.FetchError
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Publisher 进度事件发布，不得阻塞调用方
type Publisher interface {
	Publish(channel string, event broadcast.Event)
}

type BandRepository interface {
	domain.CatalogRepository[catalog_models.BandDocument]
	// FindResolvedByID 读取乐队并按引用顺序还原唱片目录
	FindResolvedByID(ctx context.Context, id int64) (*catalog_models.Band, error)
	CountByStatus(ctx context.Context) (catalog_models.BandStats, error)
}

type AlbumRepository interface {
	domain.CatalogRepository[catalog_models.Album]
	// ResolveReferences 按传入顺序返回存在的专辑，缺失的引用被跳过
	ResolveReferences(ctx context.Context, refs []primitive.ObjectID) ([]*catalog_models.Album, error)
	FindByTrackID(ctx context.Context, trackID int64) (*catalog_models.Album, error)
	SetTrackLyrics(ctx context.Context, albumID, trackID int64, lyrics string) error
	CountTracks(ctx context.Context) (int64, error)
}

type MemberRepository interface {
	domain.CatalogRepository[catalog_models.Member]
}
