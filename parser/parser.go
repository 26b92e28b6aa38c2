// Package parser 把目录站点的页面转换为类型化记录。
//
// 所有提取函数都是纯函数：不做网络或存储 I/O，相同输入得到相同输出。
// 字段级失败不会中断提取，而是汇总到记录的 parsing_error；
// 只有找不到页面主锚点（名称元素）时才返回仅含 parsing_error 的空记录。
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
)

// CatalogOrigin 目录站点源地址；图片与站内链接保存为相对路径
const CatalogOrigin = "https://www.metal-archives.com"

var (
	errMissingAnchor = errors.New("primary element not found")
	errNoID          = errors.New("no numeric id")
)

// Extract 按页面类型分派到对应提取器。
// 返回的 error 仅表示未知页面类型或唱片目录中的非致命排序错误，记录本身总是可用。
func Extract(kind catalog_models.PageKind, markup []byte) (catalog_models.Record, error) {
	switch kind {
	case catalog_models.PageKindBand:
		return ExtractBand(markup), nil
	case catalog_models.PageKindAlbum:
		return ExtractAlbum(markup), nil
	case catalog_models.PageKindMember:
		return ExtractMember(markup), nil
	case catalog_models.PageKindDiscography:
		return ExtractDiscography(markup)
	case catalog_models.PageKindBandSearch:
		return ExtractBandSearch(markup), nil
	case catalog_models.PageKindAlbumSearch:
		return ExtractAlbumSearch(markup), nil
	case catalog_models.PageKindStats:
		return ExtractStats(markup), nil
	case catalog_models.PageKindLinks:
		return ExtractLinks(markup), nil
	case catalog_models.PageKindLyrics:
		return ExtractLyrics(markup), nil
	case catalog_models.PageKindDescription:
		return ExtractDescription(markup), nil
	}
	return nil, fmt.Errorf("unsupported page kind %q", kind)
}

func loadDocument(markup []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(markup))
}

func normSpace(s string) string { return strings.Join(strings.Fields(s), " ") }

func normLabel(s string) string {
	s = strings.ToLower(normSpace(s))
	return strings.TrimSpace(strings.TrimSuffix(s, ":"))
}

// idFromHref 取链接最后一个路径段解析为整数
func idFromHref(href string) (int64, error) {
	u := href
	if i := strings.IndexAny(u, "#?"); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimRight(u, "/")
	last := u[strings.LastIndex(u, "/")+1:]
	id, err := strconv.ParseInt(last, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w in %q", errNoID, href)
	}
	return id, nil
}

func stripOrigin(href string) string {
	return strings.TrimPrefix(strings.TrimSpace(href), CatalogOrigin)
}

// relativizeLinks 站内绝对链接改写为相对路径
func relativizeLinks(html string) string {
	return strings.ReplaceAll(html, CatalogOrigin+"/", "/")
}

func int64Ptr(v int64) *int64 { return &v }

// fieldErrors 字段级失败汇总
type fieldErrors struct {
	kind catalog_models.PageKind
	errs []error
}

func (f *fieldErrors) add(field string, err error) {
	f.errs = append(f.errs, &catalog_models.ExtractionError{Kind: f.kind, Field: field, Err: err})
}

func (f *fieldErrors) String() string {
	if len(f.errs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f.errs))
	for _, err := range f.errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

func recordFailure(kind catalog_models.PageKind, field string, err error) string {
	return (&catalog_models.ExtractionError{Kind: kind, Field: field, Err: err}).Error()
}

// recoverInto 提取中的意外 panic 转为 parsing_error，保留已提取字段
func recoverInto(kind catalog_models.PageKind, target *string) {
	if r := recover(); r != nil {
		msg := recordFailure(kind, "", fmt.Errorf("unexpected markup: %v", r))
		if *target != "" {
			msg = *target + "; " + msg
		}
		*target = msg
	}
}
