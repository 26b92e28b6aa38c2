package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/domain/domain_util"
	"github.com/tidwall/gjson"
)

var errNoPayload = errors.New("no json payload")

// searchPayload 搜索接口返回 JSON；浏览器抓取时会被包在 <pre> 里
func searchPayload(markup []byte) (gjson.Result, error) {
	raw := string(bytes.TrimSpace(markup))
	if !strings.HasPrefix(raw, "{") {
		doc, err := loadDocument(markup)
		if err != nil {
			return gjson.Result{}, err
		}
		raw = strings.TrimSpace(doc.Find("pre").First().Text())
	}
	if raw == "" || !gjson.Valid(raw) {
		return gjson.Result{}, errNoPayload
	}
	payload := gjson.Parse(raw)
	if msg := payload.Get("error").String(); msg != "" {
		return gjson.Result{}, fmt.Errorf("catalog error: %s", msg)
	}
	return payload, nil
}

// fragmentLink aaData 单元格是 HTML 片段
func fragmentLink(fragment string) (text, href string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", ""
	}
	a := doc.Find("a").First()
	href, _ = a.Attr("href")
	return normSpace(a.Text()), href
}

func fragmentText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return normSpace(fragment)
	}
	return normSpace(doc.Text())
}

// ExtractBandSearch 解析 /search/ajax-band-search 结果：[名称链接, 流派, 国家]
func ExtractBandSearch(markup []byte) catalog_models.BandSearchResults {
	const kind = catalog_models.PageKindBandSearch

	out := catalog_models.BandSearchResults{Results: []catalog_models.BandSearchResult{}}
	payload, err := searchPayload(markup)
	if err != nil {
		out.ParsingError = recordFailure(kind, "", err)
		return out
	}
	out.TotalRecords = int(payload.Get("iTotalRecords").Int())

	errs := &fieldErrors{kind: kind}
	for i, row := range payload.Get("aaData").Array() {
		name, href := fragmentLink(row.Get("0").String())
		id, err := idFromHref(href)
		if err != nil {
			errs.add(fmt.Sprintf("aaData[%d].id", i), err)
			continue
		}
		out.Results = append(out.Results, catalog_models.BandSearchResult{
			ID:       id,
			Name:     name,
			NameSlug: domain_util.Slug(name),
			Genre:    fragmentText(row.Get("1").String()),
			Country:  fragmentText(row.Get("2").String()),
		})
	}
	out.ParsingError = errs.String()
	return out
}

// ExtractAlbumSearch 解析 /search/ajax-album-search 结果：[乐队链接, 专辑链接, 类型, 发行日期]
func ExtractAlbumSearch(markup []byte) catalog_models.AlbumSearchResults {
	const kind = catalog_models.PageKindAlbumSearch

	out := catalog_models.AlbumSearchResults{Results: []catalog_models.AlbumSearchResult{}}
	payload, err := searchPayload(markup)
	if err != nil {
		out.ParsingError = recordFailure(kind, "", err)
		return out
	}
	out.TotalRecords = int(payload.Get("iTotalRecords").Int())

	errs := &fieldErrors{kind: kind}
	for i, row := range payload.Get("aaData").Array() {
		title, albumHref := fragmentLink(row.Get("1").String())
		id, err := idFromHref(albumHref)
		if err != nil {
			errs.add(fmt.Sprintf("aaData[%d].id", i), err)
			continue
		}
		result := catalog_models.AlbumSearchResult{
			ID:          id,
			Title:       title,
			TitleSlug:   domain_util.Slug(title),
			Type:        fragmentText(row.Get("2").String()),
			ReleaseDate: fragmentText(row.Get("3").String()),
		}
		bandName, bandHref := fragmentLink(row.Get("0").String())
		result.BandName = bandName
		result.BandNameSlug = domain_util.Slug(bandName)
		if bandID, err := idFromHref(bandHref); err == nil {
			result.BandID = bandID
		} else {
			errs.add(fmt.Sprintf("aaData[%d].band_id", i), err)
		}
		out.Results = append(out.Results, result)
	}
	out.ParsingError = errs.String()
	return out
}
