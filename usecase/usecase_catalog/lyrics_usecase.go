package usecase_catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_interface"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/parser"
)

type LyricsUsecase struct {
	deps *Deps
}

var _ catalog_interface.LyricsUsecase = (*LyricsUsecase)(nil)

func NewLyricsUsecase(deps *Deps) *LyricsUsecase {
	return &LyricsUsecase{deps: deps}
}

// GetLyrics 歌词按需填充：已存储则直接返回，否则抓取后在后台写回所属专辑的曲目
func (uc *LyricsUsecase) GetLyrics(ctx context.Context, trackID, albumID int64) catalog_models.PageInfo[catalog_models.Lyrics] {
	start := time.Now()
	info := catalog_models.PageInfo[catalog_models.Lyrics]{URL: uc.deps.Endpoints.LyricsURL(trackID)}
	defer finish(&info, start)

	ctx, cancel := uc.deps.withTimeout(ctx)
	defer cancel()

	var album *catalog_models.Album
	var err error
	if albumID != 0 {
		album, err = uc.deps.Albums.FindByID(ctx, albumID)
	} else {
		album, err = uc.deps.Albums.FindByTrackID(ctx, trackID)
	}
	if err != nil {
		info.Err = err
		return info
	}

	if stored := storedLyrics(album, trackID); stored != nil {
		info.Data = catalog_models.Lyrics(*stored)
		info.Cached = true
		return info
	}

	page, err := uc.deps.Fetcher.Fetch(ctx, info.URL)
	if err != nil {
		info.Err = err
		return info
	}
	lyrics := parser.ExtractLyrics(page)
	info.Data = lyrics

	if album != nil && hasTrack(album, trackID) {
		owner := album.ID
		uc.deps.Scheduler.Schedule(ctx, fmt.Sprintf("lyrics:%d", trackID), func(ctx context.Context) error {
			return uc.deps.Albums.SetTrackLyrics(ctx, owner, trackID, string(lyrics))
		})
	}
	return info
}

func storedLyrics(album *catalog_models.Album, trackID int64) *string {
	if album == nil {
		return nil
	}
	for _, track := range album.Tracklist {
		if track.ID != nil && *track.ID == trackID {
			return track.Lyrics
		}
	}
	return nil
}

func hasTrack(album *catalog_models.Album, trackID int64) bool {
	for _, track := range album.Tracklist {
		if track.ID != nil && *track.ID == trackID {
			return true
		}
	}
	return false
}
