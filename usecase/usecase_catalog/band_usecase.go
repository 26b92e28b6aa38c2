package usecase_catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/metalvault/metalvault/broadcast"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/domain/domain_util"
	"github.com/metalvault/metalvault/parser"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BandUsecase struct {
	deps   *Deps
	albums *AlbumUsecase
}

var _ catalog_interface.BandUsecase = (*BandUsecase)(nil)

func NewBandUsecase(deps *Deps, albums *AlbumUsecase) *BandUsecase {
	return &BandUsecase{deps: deps, albums: albums}
}

func (uc *BandUsecase) GetBand(ctx context.Context, id int64) catalog_models.PageInfo[*catalog_models.Band] {
	start := time.Now()
	info := catalog_models.PageInfo[*catalog_models.Band]{URL: uc.deps.Endpoints.BandURL(id)}
	defer finish(&info, start)

	ctx, cancel := uc.deps.withTimeout(ctx)
	defer cancel()

	cached, err := uc.deps.Bands.FindResolvedByID(ctx, id)
	if err != nil {
		info.Err = err
		return info
	}
	if cached != nil {
		if uc.deps.Policy.ClassifyBand(cached.UpdatedAt, cached.Status) == Stale {
			uc.scheduleRefresh(ctx, id)
		}
		info.Data = cached
		info.Cached = true
		return info
	}

	band, err := uc.sync(ctx, id, writeInsert)
	if err != nil {
		info.Err = err
		return info
	}
	info.Data = band
	return info
}

// RefreshBand 同步执行完整刷新并替换存储副本
func (uc *BandUsecase) RefreshBand(ctx context.Context, id int64) catalog_models.PageInfo[*catalog_models.Band] {
	start := time.Now()
	info := catalog_models.PageInfo[*catalog_models.Band]{URL: uc.deps.Endpoints.BandURL(id)}
	defer finish(&info, start)

	band, err := uc.sync(ctx, id, writeUpsert)
	if err != nil {
		info.Err = err
		return info
	}
	info.Data = band
	return info
}

// RandomBand 返回随机乐队；未存储过的乐队在后台完成唱片目录解析与写入
func (uc *BandUsecase) RandomBand(ctx context.Context) catalog_models.PageInfo[*catalog_models.Band] {
	start := time.Now()
	info := catalog_models.PageInfo[*catalog_models.Band]{URL: uc.deps.Endpoints.RandomBandURL()}
	defer finish(&info, start)

	uc.deps.publish(broadcast.StartRandom())

	ctx, cancel := uc.deps.withTimeout(ctx)
	defer cancel()

	page, err := uc.deps.Fetcher.Fetch(ctx, info.URL)
	if err != nil {
		info.Err = err
		return info
	}
	band := parser.ExtractBand(page)
	if err := checkExtracted(band.Name, band.ParsingError); err != nil {
		info.Err = err
		return info
	}
	if band.ID == 0 {
		// 没有 id 无法归一化，只返回页面内容
		info.Data = band
		return info
	}
	info.URL = uc.deps.Endpoints.BandURL(band.ID)

	cached, err := uc.deps.Bands.FindResolvedByID(ctx, band.ID)
	if err != nil {
		info.Err = err
		return info
	}
	if cached != nil {
		if uc.deps.Policy.ClassifyBand(cached.UpdatedAt, cached.Status) == Stale {
			uc.scheduleRefresh(ctx, band.ID)
		}
		info.Data = cached
		info.Cached = true
		return info
	}

	if band.ParsingError != "" {
		slog.Warn("band extracted with errors", "band_id", band.ID, "parsing_error", band.ParsingError)
	}
	uc.enrich(ctx, band)
	discography, discErr := uc.fetchDiscography(ctx, band.ID)
	band.Discography = discography
	if band.Discography == nil {
		band.Discography = []catalog_models.DiscographyEntry{}
	}

	// 后台任务持有副本，返回给调用方的记录不再被修改
	stored := *band
	uc.deps.Scheduler.Schedule(ctx, bandKey(band.ID), func(ctx context.Context) error {
		_, err := uc.persistBand(ctx, &stored, discography, discErr, writeInsert)
		return err
	})
	info.Data = band
	return info
}

func (uc *BandUsecase) SearchBands(ctx context.Context, query string) catalog_models.PageInfo[catalog_models.BandSearchResults] {
	start := time.Now()
	url := uc.deps.Endpoints.BandSearchURL(query)
	info := catalog_models.PageInfo[catalog_models.BandSearchResults]{URL: url}
	defer finish(&info, start)

	if strings.TrimSpace(query) == "" {
		info.Err = ErrEmptyQuery
		return info
	}
	if cached, ok := uc.deps.Search.Get(url); ok {
		info.Data = cached.(catalog_models.BandSearchResults)
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
	info.Data = parser.ExtractBandSearch(page)
	if info.Data.ParsingError == "" {
		uc.deps.Search.Add(url, info.Data)
	}
	return info
}

func bandKey(id int64) string { return "band:" + strconv.FormatInt(id, 10) }

func (uc *BandUsecase) scheduleRefresh(ctx context.Context, id int64) {
	uc.deps.Scheduler.Schedule(ctx, bandKey(id), func(ctx context.Context) error {
		_, err := uc.sync(ctx, id, writeUpsert)
		return err
	})
}

// sync 抓取主页面后走完整写入流程；主页面失败时不写入任何内容
func (uc *BandUsecase) sync(ctx context.Context, id int64, mode writeMode) (*catalog_models.Band, error) {
	page, err := uc.deps.Fetcher.Fetch(ctx, uc.deps.Endpoints.BandURL(id))
	if err != nil {
		return nil, err
	}
	return uc.store(ctx, id, parser.ExtractBand(page), mode)
}

// store 补全可选页面、归一化唱片目录并写入乐队文档
func (uc *BandUsecase) store(ctx context.Context, id int64, band *catalog_models.Band, mode writeMode) (*catalog_models.Band, error) {
	if err := checkExtracted(band.Name, band.ParsingError); err != nil {
		return nil, fmt.Errorf("band %d: %w", id, err)
	}
	if band.ID == 0 {
		band.ID = id
	}
	if band.ParsingError != "" {
		slog.Warn("band extracted with errors", "band_id", band.ID, "parsing_error", band.ParsingError)
	}

	uc.enrich(ctx, band)
	discography, err := uc.fetchDiscography(ctx, band.ID)
	return uc.persistBand(ctx, band, discography, err, mode)
}

// persistBand 逐张解析唱片目录后写入乐队文档；discErr 为唱片目录页的抓取错误
func (uc *BandUsecase) persistBand(ctx context.Context, band *catalog_models.Band, discography []catalog_models.DiscographyEntry, discErr error, mode writeMode) (*catalog_models.Band, error) {
	refs := []primitive.ObjectID{}
	var entries []catalog_models.DiscographyEntry
	if discErr != nil {
		if mode == writeUpsert {
			// 保留已存储的唱片目录
			return nil, discErr
		}
		slog.Warn("discography unavailable, storing band without albums", "band_id", band.ID, "err", discErr)
		band.Discography = []catalog_models.DiscographyEntry{}
	} else {
		entries, refs = uc.resolveDiscography(ctx, band, discography)
		band.Discography = entries
	}

	doc := &catalog_models.BandDocument{BandProfile: band.BandProfile, Discography: refs}
	writeCtx, cancel := uc.deps.writeContext(ctx)
	defer cancel()
	ref, err := persist[catalog_models.BandDocument](writeCtx, uc.deps.Bands, band.ID, doc, mode)
	if err != nil {
		return nil, err
	}
	band.ObjectID = ref
	band.UpdatedAt = doc.UpdatedAt
	return band, nil
}

// enrich 外链与简介是可选页面，失败只记录日志
func (uc *BandUsecase) enrich(ctx context.Context, band *catalog_models.Band) {
	uc.deps.publish(broadcast.BandLinks(band.Name))
	if page, err := uc.deps.Fetcher.Fetch(ctx, uc.deps.Endpoints.BandLinksURL(band.ID)); err == nil {
		band.Links = parser.ExtractLinks(page)
	} else {
		slog.Warn("band links unavailable", "band_id", band.ID, "err", err)
	}

	if page, err := uc.deps.Fetcher.Fetch(ctx, uc.deps.Endpoints.BandDescriptionURL(band.ID)); err == nil {
		band.Description = string(parser.ExtractDescription(page))
	} else {
		slog.Warn("band description unavailable", "band_id", band.ID, "err", err)
	}
}

// fetchDiscography 抓取并提取唱片目录页；年份无法解析的条目保留并记录日志
func (uc *BandUsecase) fetchDiscography(ctx context.Context, id int64) ([]catalog_models.DiscographyEntry, error) {
	page, err := uc.deps.Fetcher.Fetch(ctx, uc.deps.Endpoints.DiscographyURL(id))
	if err != nil {
		return nil, err
	}
	discography, err := parser.ExtractDiscography(page)
	if err != nil {
		slog.Warn("discography extracted with errors", "band_id", id, "err", err)
	}
	return discography, nil
}

// resolveDiscography 按唱片目录顺序逐张解析专辑；单张失败跳过，不影响乐队写入
func (uc *BandUsecase) resolveDiscography(ctx context.Context, band *catalog_models.Band, discography []catalog_models.DiscographyEntry) ([]catalog_models.DiscographyEntry, []primitive.ObjectID) {
	entries := []catalog_models.DiscographyEntry{}
	refs := []primitive.ObjectID{}

	progress := domain_util.NewTaskProgress(bandKey(band.ID), len(discography))
	for i, entry := range discography {
		if err := ctx.Err(); err != nil {
			// 期限已到：剩余专辑计为失败，已解析部分照常写入
			progress.AddFailed(len(discography) - i)
			slog.Warn("discography resolution interrupted", "band_id", band.ID,
				"resolved", len(refs), "remaining", len(discography)-i, "err", err)
			break
		}
		album, ref, created, err := uc.albums.Resolve(ctx, entry.ID)
		if err != nil {
			progress.MarkFailed()
			slog.Warn("album skipped", "err", &catalog_models.ReferenceResolutionError{
				BandID:  band.ID,
				AlbumID: entry.ID,
				Err:     err,
			})
			continue
		}
		if created {
			progress.MarkCreated()
			entry.CoverURL = album.CoverURL
			uc.deps.publish(broadcast.NewAlbum(album))
		} else {
			progress.MarkReused()
		}
		entries = append(entries, entry)
		refs = append(refs, ref)
	}
	progress.Finish("done")
	uc.deps.publish(broadcast.AlbumNumber(progress.Snapshot()))

	return entries, refs
}
