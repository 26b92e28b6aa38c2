package usecase_catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/parser"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AlbumUsecase struct {
	deps *Deps
}

var _ catalog_interface.AlbumUsecase = (*AlbumUsecase)(nil)

func NewAlbumUsecase(deps *Deps) *AlbumUsecase {
	return &AlbumUsecase{deps: deps}
}

// GetAlbum 读穿透：新鲜直接返回，过期返回旧副本并后台刷新，未命中同步抓取后写入
func (uc *AlbumUsecase) GetAlbum(ctx context.Context, id int64) catalog_models.PageInfo[*catalog_models.Album] {
	start := time.Now()
	info := catalog_models.PageInfo[*catalog_models.Album]{URL: uc.deps.Endpoints.AlbumURL(id)}
	defer finish(&info, start)

	ctx, cancel := uc.deps.withTimeout(ctx)
	defer cancel()

	cached, err := uc.deps.Albums.FindByID(ctx, id)
	if err != nil {
		info.Err = err
		return info
	}
	if cached != nil {
		if uc.deps.Policy.Classify(cached.UpdatedAt) == Stale {
			uc.scheduleRefresh(ctx, id)
		}
		info.Data = cached
		info.Cached = true
		return info
	}

	album, err := uc.sync(ctx, id, writeInsert)
	if err != nil {
		info.Err = err
		return info
	}
	info.Data = album
	return info
}

func (uc *AlbumUsecase) scheduleRefresh(ctx context.Context, id int64) {
	uc.deps.Scheduler.Schedule(ctx, fmt.Sprintf("album:%d", id), func(ctx context.Context) error {
		_, err := uc.sync(ctx, id, writeUpsert)
		return err
	})
}

// Resolve 唱片目录归一化：已存储则复用引用且不抓取，否则抓取写入后返回新引用。
// created 为 true 时 album 为新写入的记录。
func (uc *AlbumUsecase) Resolve(ctx context.Context, id int64) (album *catalog_models.Album, ref primitive.ObjectID, created bool, err error) {
	ref, ok, err := uc.deps.Albums.FindRefByID(ctx, id)
	if err != nil {
		return nil, primitive.NilObjectID, false, err
	}
	if ok {
		return nil, ref, false, nil
	}

	album, err = uc.sync(ctx, id, writeInsert)
	if err != nil {
		return nil, primitive.NilObjectID, false, err
	}
	return album, album.ObjectID, true, nil
}

// sync 抓取、提取并写入单张专辑
func (uc *AlbumUsecase) sync(ctx context.Context, id int64, mode writeMode) (*catalog_models.Album, error) {
	page, err := uc.deps.Fetcher.Fetch(ctx, uc.deps.Endpoints.AlbumURL(id))
	if err != nil {
		return nil, err
	}

	album := parser.ExtractAlbum(page)
	if err := checkExtracted(album.Title, album.ParsingError); err != nil {
		return nil, fmt.Errorf("album %d: %w", id, err)
	}
	if album.ID == 0 {
		album.ID = id
	}
	if album.ParsingError != "" {
		slog.Warn("album extracted with errors", "album_id", id, "parsing_error", album.ParsingError)
	}

	ref, err := persist[catalog_models.Album](ctx, uc.deps.Albums, album.ID, album, mode)
	if err != nil {
		return nil, err
	}
	album.ObjectID = ref
	return album, nil
}

func (uc *AlbumUsecase) SearchAlbums(ctx context.Context, query string) catalog_models.PageInfo[catalog_models.AlbumSearchResults] {
	start := time.Now()
	url := uc.deps.Endpoints.AlbumSearchURL(query)
	info := catalog_models.PageInfo[catalog_models.AlbumSearchResults]{URL: url}
	defer finish(&info, start)

	if strings.TrimSpace(query) == "" {
		info.Err = ErrEmptyQuery
		return info
	}
	if cached, ok := uc.deps.Search.Get(url); ok {
		info.Data = cached.(catalog_models.AlbumSearchResults)
		info.Cached = true
		return info
	}

	ctx, cancel := uc.deps.withTimeout(ctx)
	defer cancel()

	page, err := uc.deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		info.Err = err
		return info
	}
	info.Data = parser.ExtractAlbumSearch(page)
	if info.Data.ParsingError == "" {
		uc.deps.Search.Add(url, info.Data)
	}
	return info
}
