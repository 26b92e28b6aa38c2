package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
)

// ExtractLinks 解析 /link/ajax-list 页面，所有新窗口打开的外链
func ExtractLinks(markup []byte) catalog_models.SocialLinks {
	links := catalog_models.SocialLinks{}
	doc, err := loadDocument(markup)
	if err != nil {
		return links
	}
	doc.Find("a[target='_blank']").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		links = append(links, catalog_models.SocialLink{
			Social: normSpace(a.Text()),
			URL:    strings.TrimSpace(href),
		})
	})
	return links
}

// ExtractLyrics 解析 /release/ajax-view-lyrics：源码换行按 HTML 空白处理，<br> 才是换行
func ExtractLyrics(markup []byte) catalog_models.Lyrics {
	const lineBreak = "\u2028"

	doc, err := loadDocument(markup)
	if err != nil {
		return ""
	}
	doc.Find("br").ReplaceWithHtml(lineBreak)
	lines := strings.Split(doc.Find("body").Text(), lineBreak)
	for i, line := range lines {
		lines[i] = normSpace(line)
	}
	return catalog_models.Lyrics(strings.TrimSpace(strings.Join(lines, "\n")))
}

// ExtractDescription 解析 /band/read-more，站内乐队链接改为相对路径
func ExtractDescription(markup []byte) catalog_models.BandDescription {
	doc, err := loadDocument(markup)
	if err != nil {
		return ""
	}
	html, err := doc.Find("body").Html()
	if err != nil {
		return ""
	}
	return catalog_models.BandDescription(strings.TrimSpace(relativizeLinks(html)))
}

var statusCounters = []struct {
	class  string
	status catalog_models.BandStatus
}{
	{"active", catalog_models.BandStatusActive},
	{"on_hold", catalog_models.BandStatusOnHold},
	{"split_up", catalog_models.BandStatusSplitUp},
	{"changed_name", catalog_models.BandStatusChangedName},
	{"unknown", catalog_models.BandStatusUnknown},
}

// ExtractStats 解析 /stats 页面
func ExtractStats(markup []byte) (stats catalog_models.CatalogStats) {
	const kind = catalog_models.PageKindStats

	doc, err := loadDocument(markup)
	if err != nil {
		stats.ParsingError = recordFailure(kind, "", err)
		return stats
	}
	defer recoverInto(kind, &stats.ParsingError)
	errs := &fieldErrors{kind: kind}

	for _, counter := range statusCounters {
		span := doc.Find("span." + counter.class).First()
		if span.Length() == 0 {
			errs.add("bands."+counter.class, errMissingAnchor)
			continue
		}
		n, err := parseCount(span.Text())
		if err != nil {
			errs.add("bands."+counter.class, err)
			continue
		}
		stats.Bands.Add(counter.status, n)
	}

	strong := doc.Find("p > strong")
	if strong.Length() >= 2 {
		if n, err := parseCount(strong.Eq(strong.Length() - 2).Text()); err == nil {
			stats.Albums = n
		} else {
			errs.add("albums", err)
		}
		if n, err := parseCount(strong.Last().Text()); err == nil {
			stats.Songs = n
		} else {
			errs.add("songs", err)
		}
	} else {
		errs.add("albums", errMissingAnchor)
	}

	stats.ParsingError = errs.String()
	return stats
}

// parseCount 容忍千位分隔符
func parseCount(s string) (int64, error) {
	digits := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == ',' || r == '.' || r == ' ' || r == '\u00a0':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	return n, nil
}
