package parser

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/domain/domain_util"
)

// ExtractDiscography 解析 /band/discography/id/{id}/tab/all，按发行年份降序（稳定排序）。
// 年份无法解析的条目排在最后并通过 error 报告，条目本身保留。
func ExtractDiscography(markup []byte) (catalog_models.Discography, error) {
	const kind = catalog_models.PageKindDiscography

	entries := catalog_models.Discography{}
	doc, err := loadDocument(markup)
	if err != nil {
		return entries, &catalog_models.ExtractionError{Kind: kind, Err: err}
	}

	type dated struct {
		entry catalog_models.DiscographyEntry
		year  int
	}
	var (
		errs []error
		rows []dated
	)
	doc.Find("table.discog tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		link := cells.Eq(0).Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		id, err := idFromHref(href)
		if err != nil {
			errs = append(errs, &catalog_models.ExtractionError{Kind: kind, Field: fmt.Sprintf("rows[%d].id", i), Err: err})
			return
		}

		entry := catalog_models.DiscographyEntry{
			ID:          id,
			Title:       normSpace(link.Text()),
			Type:        normSpace(cells.Eq(1).Text()),
			ReleaseDate: normSpace(cells.Eq(2).Text()),
			URL:         href,
		}
		entry.TitleSlug = domain_util.Slug(entry.Title)

		year, err := parseYear(entry.ReleaseDate)
		if err != nil {
			errs = append(errs, &catalog_models.ExtractionError{Kind: kind, Field: fmt.Sprintf("rows[%d].release_date", i), Err: err})
		}
		rows = append(rows, dated{entry: entry, year: year})
	})

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].year > rows[j].year
	})
	for _, r := range rows {
		entries = append(entries, r.entry)
	}
	return entries, errors.Join(errs...)
}

// parseYear 四位年份；失败时返回 0 使条目排在最后
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return year, nil
}
