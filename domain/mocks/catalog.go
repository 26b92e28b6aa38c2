// Package mocks 为领域接口提供 testify mock
package mocks

import (
	"context"

	"github.com/metalvault/metalvault/broadcast"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Fetcher struct{ mock.Mock }

func (m *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	ret := m.Called(ctx, url)
	body, _ := ret.Get(0).([]byte)
	return body, ret.Error(1)
}

type Publisher struct{ mock.Mock }

func (m *Publisher) Publish(channel string, event broadcast.Event) {
	m.Called(channel, event)
}

// catalogRepository 三类目录仓储共有的方法
type catalogRepository[T any] struct{ mock.Mock }

func (m *catalogRepository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	ret := m.Called(ctx, id)
	entity, _ := ret.Get(0).(*T)
	return entity, ret.Error(1)
}

func (m *catalogRepository[T]) FindRefByID(ctx context.Context, id int64) (primitive.ObjectID, bool, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(primitive.ObjectID), ret.Bool(1), ret.Error(2)
}

func (m *catalogRepository[T]) Insert(ctx context.Context, entity *T) (primitive.ObjectID, error) {
	ret := m.Called(ctx, entity)
	return ret.Get(0).(primitive.ObjectID), ret.Error(1)
}

func (m *catalogRepository[T]) UpsertByID(ctx context.Context, id int64, entity *T) (primitive.ObjectID, error) {
	ret := m.Called(ctx, id, entity)
	return ret.Get(0).(primitive.ObjectID), ret.Error(1)
}

func (m *catalogRepository[T]) Count(ctx context.Context, filter interface{}) (int64, error) {
	ret := m.Called(ctx, filter)
	return ret.Get(0).(int64), ret.Error(1)
}

type BandRepository struct {
	catalogRepository[catalog_models.BandDocument]
}

func (m *BandRepository) FindResolvedByID(ctx context.Context, id int64) (*catalog_models.Band, error) {
	ret := m.Called(ctx, id)
	band, _ := ret.Get(0).(*catalog_models.Band)
	return band, ret.Error(1)
}

func (m *BandRepository) CountByStatus(ctx context.Context) (catalog_models.BandStats, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(catalog_models.BandStats), ret.Error(1)
}

type AlbumRepository struct {
	catalogRepository[catalog_models.Album]
}

func (m *AlbumRepository) ResolveReferences(ctx context.Context, refs []primitive.ObjectID) ([]*catalog_models.Album, error) {
	ret := m.Called(ctx, refs)
	albums, _ := ret.Get(0).([]*catalog_models.Album)
	return albums, ret.Error(1)
}

func (m *AlbumRepository) FindByTrackID(ctx context.Context, trackID int64) (*catalog_models.Album, error) {
	ret := m.Called(ctx, trackID)
	album, _ := ret.Get(0).(*catalog_models.Album)
	return album, ret.Error(1)
}

func (m *AlbumRepository) SetTrackLyrics(ctx context.Context, albumID, trackID int64, lyrics string) error {
	return m.Called(ctx, albumID, trackID, lyrics).Error(0)
}

func (m *AlbumRepository) CountTracks(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

type MemberRepository struct {
	catalogRepository[catalog_models.Member]
}

type BandUsecase struct{ mock.Mock }

func (m *BandUsecase) GetBand(ctx context.Context, id int64) catalog_models.PageInfo[*catalog_models.Band] {
	return m.Called(ctx, id).Get(0).(catalog_models.PageInfo[*catalog_models.Band])
}

func (m *BandUsecase) RefreshBand(ctx context.Context, id int64) catalog_models.PageInfo[*catalog_models.Band] {
	return m.Called(ctx, id).Get(0).(catalog_models.PageInfo[*catalog_models.Band])
}

func (m *BandUsecase) RandomBand(ctx context.Context) catalog_models.PageInfo[*catalog_models.Band] {
	return m.Called(ctx).Get(0).(catalog_models.PageInfo[*catalog_models.Band])
}

func (m *BandUsecase) SearchBands(ctx context.Context, query string) catalog_models.PageInfo[catalog_models.BandSearchResults] {
	return m.Called(ctx, query).Get(0).(catalog_models.PageInfo[catalog_models.BandSearchResults])
}

type AlbumUsecase struct{ mock.Mock }

func (m *AlbumUsecase) GetAlbum(ctx context.Context, id int64) catalog_models.PageInfo[*catalog_models.Album] {
	return m.Called(ctx, id).Get(0).(catalog_models.PageInfo[*catalog_models.Album])
}

func (m *AlbumUsecase) SearchAlbums(ctx context.Context, query string) catalog_models.PageInfo[catalog_models.AlbumSearchResults] {
	return m.Called(ctx, query).Get(0).(catalog_models.PageInfo[catalog_models.AlbumSearchResults])
}

type MemberUsecase struct{ mock.Mock }

func (m *MemberUsecase) GetMember(ctx context.Context, id int64) catalog_models.PageInfo[*catalog_models.Member] {
	return m.Called(ctx, id).Get(0).(catalog_models.PageInfo[*catalog_models.Member])
}

type LyricsUsecase struct{ mock.Mock }

func (m *LyricsUsecase) GetLyrics(ctx context.Context, trackID, albumID int64) catalog_models.PageInfo[catalog_models.Lyrics] {
	return m.Called(ctx, trackID, albumID).Get(0).(catalog_models.PageInfo[catalog_models.Lyrics])
}

type StatsUsecase struct{ mock.Mock }

func (m *StatsUsecase) GetStats(ctx context.Context) catalog_models.PageInfo[catalog_models.StatsReport] {
	return m.Called(ctx).Get(0).(catalog_models.PageInfo[catalog_models.StatsReport])
}
