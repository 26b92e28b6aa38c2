// Package usecase_catalog 目录数据的读穿透编排：新鲜度判定、后台刷新、唱片目录引用归一化。
package usecase_catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/metalvault/metalvault/broadcast"
	"github.com/metalvault/metalvault/domain"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/fetcher"
	"github.com/metalvault/metalvault/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrRecordUnavailable 页面缺少主锚点，记录无法提取，不会写入存储
var ErrRecordUnavailable = errors.New("record could not be extracted")

var ErrEmptyQuery = errors.New("search query is empty")

// Deps 编排层共享依赖，进程启动时构造一次
type Deps struct {
	Bands     catalog_interface.BandRepository
	Albums    catalog_interface.AlbumRepository
	Members   catalog_interface.MemberRepository
	Fetcher   catalog_interface.Fetcher
	Endpoints *fetcher.Endpoints
	Publisher catalog_interface.Publisher
	Policy    RefreshPolicy
	Scheduler *RefreshScheduler
	Search    *SearchCache
	Timeout   time.Duration
	// Channel 进度事件频道，默认 broadcast.DefaultChannel
	Channel string
}

func (d *Deps) channel() string {
	if d.Channel == "" {
		return broadcast.DefaultChannel
	}
	return d.Channel
}

func (d *Deps) publish(event broadcast.Event) {
	if d.Publisher != nil {
		d.Publisher.Publish(d.channel(), event)
	}
}

func (d *Deps) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.Timeout)
}

// writeContext 最终写入脱离请求期限，另给一段独立超时
func (d *Deps) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return d.withTimeout(context.WithoutCancel(ctx))
}

// writeMode 首次写入或整文档替换
type writeMode int

const (
	writeInsert writeMode = iota
	writeUpsert
)

// persist 按模式写入；首次写入遇到并发写入同一 id 时回退为替换
func persist[T any](ctx context.Context, repo domain.CatalogRepository[T], id int64, entity *T, mode writeMode) (primitive.ObjectID, error) {
	if mode == writeInsert {
		ref, err := repo.Insert(ctx, entity)
		if err == nil {
			return ref, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, err
		}
		slog.Debug("concurrent insert, falling back to upsert", "id", id)
	}
	return repo.UpsertByID(ctx, id, entity)
}

// checkExtracted 主锚点缺失时提取结果只有 parsing_error
func checkExtracted(anchor, parsingError string) error {
	if anchor != "" {
		return nil
	}
	if parsingError == "" {
		return ErrRecordUnavailable
	}
	return fmt.Errorf("%w: %s", ErrRecordUnavailable, parsingError)
}

func finish[T any](info *catalog_models.PageInfo[T], start time.Time) {
	info.ProcessingTime = time.Since(start)
}

// Catalog 进程内唯一的编排实例，路由与 CLI 共用
type Catalog struct {
	Deps    *Deps
	Bands   *BandUsecase
	Albums  *AlbumUsecase
	Members *MemberUsecase
	Lyrics  *LyricsUsecase
	Stats   *StatsUsecase
}

func NewCatalog(deps *Deps) *Catalog {
	albums := NewAlbumUsecase(deps)
	return &Catalog{
		Deps:    deps,
		Bands:   NewBandUsecase(deps, albums),
		Albums:  albums,
		Members: NewMemberUsecase(deps),
		Lyrics:  NewLyricsUsecase(deps),
		Stats:   NewStatsUsecase(deps),
	}
}

// Close 等待后台刷新任务结束
func (c *Catalog) Close() {
	c.Deps.Scheduler.Wait()
}
