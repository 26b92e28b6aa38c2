package catalog_models

import (
	"fmt"
	"time"
)

// PageKind 目录页面类型，决定使用哪种提取器
type PageKind string

const (
	PageKindBand        PageKind = "band"
	PageKindAlbum       PageKind = "album"
	PageKindMember      PageKind = "member"
	PageKindDiscography PageKind = "discography"
	PageKindBandSearch  PageKind = "band_search"
	PageKindAlbumSearch PageKind = "album_search"
	PageKindStats       PageKind = "stats"
	PageKindLinks       PageKind = "links"
	PageKindLyrics      PageKind = "lyrics"
	PageKindDescription PageKind = "description"
)

var PageKinds = []PageKind{
	PageKindBand,
	PageKindAlbum,
	PageKindMember,
	PageKindDiscography,
	PageKindBandSearch,
	PageKindAlbumSearch,
	PageKindStats,
	PageKindLinks,
	PageKindLyrics,
	PageKindDescription,
}

func ParsePageKind(raw string) (PageKind, error) {
	for _, k := range PageKinds {
		if string(k) == raw {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown page kind %q", raw)
}

// Record 一次提取的类型化结果
type Record interface {
	PageKind() PageKind
}

// PageInfo 编排层的单次请求结果，由控制器转换为响应信封
type PageInfo[T any] struct {
	URL            string
	ProcessingTime time.Duration
	Data           T
	Err            error
	Cached         bool
}

func (p PageInfo[T]) Success() bool {
	return p.Err == nil
}
