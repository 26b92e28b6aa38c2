package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/domain/domain_util"
)

// ExtractBand 解析乐队主页面。唱片目录、链接与简介在独立页面上，由编排层补全。
func ExtractBand(markup []byte) (band *catalog_models.Band) {
	const kind = catalog_models.PageKindBand

	doc, err := loadDocument(markup)
	if err != nil {
		return &catalog_models.Band{BandProfile: catalog_models.BandProfile{ParsingError: recordFailure(kind, "", err)}}
	}

	nameEl := doc.Find("h1.band_name").First()
	if nameEl.Length() == 0 {
		nameEl = doc.Find("h2.band_name").First()
	}
	if nameEl.Length() == 0 {
		return &catalog_models.Band{BandProfile: catalog_models.BandProfile{ParsingError: recordFailure(kind, "name", errMissingAnchor)}}
	}

	band = &catalog_models.Band{
		BandProfile: catalog_models.BandProfile{
			CurrentLineup: []catalog_models.MemberLineUp{},
			PastLineup:    []catalog_models.MemberLineUp{},
			Links:         []catalog_models.SocialLink{},
		},
		Discography: []catalog_models.DiscographyEntry{},
	}
	defer recoverInto(kind, &band.ParsingError)
	errs := &fieldErrors{kind: kind}

	band.Name = normSpace(nameEl.Text())
	band.NameSlug = domain_util.Slug(band.Name)
	if href, ok := nameEl.Find("a").First().Attr("href"); ok {
		if id, err := idFromHref(href); err == nil {
			band.ID = id
		} else {
			errs.add("id", err)
		}
	} else {
		errs.add("id", errNoID)
	}

	info := matchDefinitions(doc.Find("#band_stats"), bandVocabulary)
	if len(info) == 0 {
		// 旧版页面没有 #band_stats 容器
		info = matchDefinitions(doc.Selection, bandVocabulary)
	}
	band.Country = info["country"]
	band.City = info["city"]
	band.Status = catalog_models.ParseBandStatus(info["status"])
	band.FormedIn = info["formed_in"]
	band.YearsActive = info["years_active"]
	band.Genres = info["genres"]
	band.Themes = info["themes"]
	band.Label = info["label"]

	if href, ok := doc.Find("a#photo").Attr("href"); ok {
		band.PhotoURL = stripOrigin(href)
	}
	if href, ok := doc.Find("a#logo").Attr("href"); ok {
		band.LogoURL = stripOrigin(href)
	}

	band.CurrentLineup = extractLineup(doc.Find("#band_tab_members_current"), "current_lineup", errs)
	band.PastLineup = extractLineup(doc.Find("#band_tab_members_past"), "past_lineup", errs)

	band.ParsingError = errs.String()
	return band
}

// extractLineup 主行（成员+角色）后可跟一行 "See also" 延续行
func extractLineup(container *goquery.Selection, field string, errs *fieldErrors) []catalog_models.MemberLineUp {
	lineup := []catalog_models.MemberLineUp{}
	container.Find("table.lineupTable tr").Each(func(_ int, row *goquery.Selection) {
		switch {
		case row.HasClass("lineupRow"):
			lineup = append(lineup, extractLineupRow(row, field, errs))
		case row.HasClass("lineupBandsRow"):
			if len(lineup) == 0 {
				return
			}
			last := &lineup[len(lineup)-1]
			last.OtherBands = append(last.OtherBands, extractSeeAlso(row)...)
		}
	})
	return lineup
}

func extractLineupRow(row *goquery.Selection, field string, errs *fieldErrors) catalog_models.MemberLineUp {
	cells := row.Find("td")
	member := catalog_models.MemberLineUp{OtherBands: []catalog_models.OtherBand{}}

	link := cells.First().Find("a").First()
	if link.Length() > 0 {
		member.Fullname = normSpace(link.Text())
		href, _ := link.Attr("href")
		member.URL = href
		if id, err := idFromHref(href); err == nil {
			member.ID = int64Ptr(id)
		} else {
			errs.add(field+".id", err)
		}
	} else {
		member.Fullname = normSpace(cells.First().Text())
	}
	member.FullnameSlug = domain_util.Slug(member.Fullname)
	if cells.Length() > 1 {
		member.Role = normSpace(cells.Eq(1).Text())
	}
	return member
}

// extractSeeAlso 逗号分隔的乐队名，只与同一行内的乐队超链接做字面匹配
func extractSeeAlso(row *goquery.Selection) []catalog_models.OtherBand {
	linked := make(map[string]int64)
	row.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "/bands/") {
			return
		}
		name := normSpace(a.Text())
		if _, seen := linked[name]; seen {
			return
		}
		if id, err := idFromHref(href); err == nil {
			linked[name] = id
		}
	})

	text := normSpace(row.Text())
	if i := strings.Index(strings.ToLower(text), "see also:"); i >= 0 {
		text = text[i+len("see also:"):]
	}

	var out []catalog_models.OtherBand
	for _, item := range strings.Split(text, ",") {
		name := strings.TrimSpace(item)
		name = strings.TrimSpace(strings.TrimPrefix(name, "ex-"))
		if name == "" {
			continue
		}
		other := catalog_models.OtherBand{Name: name, NameSlug: domain_util.Slug(name)}
		if id, ok := linked[name]; ok {
			other.ID = int64Ptr(id)
		}
		out = append(out, other)
	}
	return out
}
