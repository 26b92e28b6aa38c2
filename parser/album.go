package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/domain/domain_util"
)

// ExtractAlbum 解析专辑页面
func ExtractAlbum(markup []byte) (album *catalog_models.Album) {
	const kind = catalog_models.PageKindAlbum

	doc, err := loadDocument(markup)
	if err != nil {
		return &catalog_models.Album{ParsingError: recordFailure(kind, "", err)}
	}

	titleEl := doc.Find("h1.album_name").First()
	if titleEl.Length() == 0 {
		return &catalog_models.Album{ParsingError: recordFailure(kind, "title", errMissingAnchor)}
	}

	album = &catalog_models.Album{
		BandIDs:       []int64{},
		BandNames:     []string{},
		BandNamesSlug: []string{},
		Tracklist:     []catalog_models.Track{},
	}
	defer recoverInto(kind, &album.ParsingError)
	errs := &fieldErrors{kind: kind}

	album.Title = normSpace(titleEl.Text())
	album.TitleSlug = domain_util.Slug(album.Title)
	if href, ok := titleEl.Find("a").First().Attr("href"); ok {
		album.URL = href
		if id, err := idFromHref(href); err == nil {
			album.ID = id
		} else {
			errs.add("id", err)
		}
	} else {
		errs.add("id", errNoID)
	}

	// 分裂专辑有多个署名乐队
	doc.Find("h2.band_name a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		id, err := idFromHref(href)
		if err != nil {
			errs.add("band_ids", err)
			return
		}
		name := normSpace(a.Text())
		album.BandIDs = append(album.BandIDs, id)
		album.BandNames = append(album.BandNames, name)
		album.BandNamesSlug = append(album.BandNamesSlug, domain_util.Slug(name))
	})
	if len(album.BandIDs) == 0 {
		if name := normSpace(doc.Find("h2.band_name").First().Text()); name != "" {
			album.BandNames = append(album.BandNames, name)
			album.BandNamesSlug = append(album.BandNamesSlug, domain_util.Slug(name))
		}
	}

	info := matchDefinitions(doc.Find("#album_info"), albumVocabulary)
	if len(info) == 0 {
		info = matchDefinitions(doc.Selection, albumVocabulary)
	}
	album.Type = info["type"]
	album.ReleaseDate = info["release_date"]
	album.CatalogID = info["catalog_id"]
	album.Label = info["label"]
	album.Format = info["format"]

	if href, ok := doc.Find("#cover").Attr("href"); ok {
		album.CoverURL = stripOrigin(href)
	}

	album.Tracklist = extractTracklist(doc.Find("table.table_lyrics").First(), errs)

	album.ParsingError = errs.String()
	return album
}

type rowKind int

const (
	rowAggregate rowKind = iota
	rowHidden
	rowSideHeader
	rowDiscHeader
	rowTrack
)

var discHeaderPattern = regexp.MustCompile(`(?i)^(?:disc|cd)\s*(\d+)`)

func classifyRow(row *goquery.Selection) (rowKind, string) {
	if row.HasClass("displayNone") {
		return rowHidden, ""
	}
	if !row.HasClass("even") && !row.HasClass("odd") {
		if header := row.Find("td[colspan]").First(); header.Length() > 0 {
			text := normSpace(header.Text())
			if discHeaderPattern.MatchString(text) {
				return rowDiscHeader, text
			}
			if strings.Contains(strings.ToLower(text), "side") {
				return rowSideHeader, text
			}
		}
	}
	if row.HasClass("sideRow") || row.HasClass("discRow") || row.Find("strong, b").Length() > 0 {
		return rowAggregate, ""
	}
	if row.HasClass("even") || row.HasClass("odd") {
		return rowTrack, ""
	}
	return rowAggregate, ""
}

// extractTracklist 按文档顺序遍历行；(side, cd) 只由表头行修改，其余行原样向后传递
func extractTracklist(table *goquery.Selection, errs *fieldErrors) []catalog_models.Track {
	tracks := []catalog_models.Track{}
	var (
		currentSide *string
		currentCD   *int
	)

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		kind, text := classifyRow(row)
		switch kind {
		case rowSideHeader:
			words := strings.Fields(text)
			side := words[len(words)-1]
			currentSide = &side
		case rowDiscHeader:
			m := discHeaderPattern.FindStringSubmatch(text)
			cd, _ := strconv.Atoi(m[1])
			currentCD = &cd
			// 新的碟片从头开始分面
			currentSide = nil
		case rowTrack:
			track, ok := extractTrack(row, len(tracks), errs)
			if !ok {
				return
			}
			if currentSide != nil {
				side := *currentSide
				track.Side = &side
			}
			if currentCD != nil {
				cd := *currentCD
				track.CDNumber = &cd
			}
			tracks = append(tracks, track)
		}
	})
	return tracks
}

func extractTrack(row *goquery.Selection, index int, errs *fieldErrors) (catalog_models.Track, bool) {
	cells := row.Find("td")
	if cells.Length() < 3 {
		return catalog_models.Track{}, false
	}

	field := fmt.Sprintf("tracklist[%d]", index)
	track := catalog_models.Track{
		Title:    normSpace(cells.Eq(1).Text()),
		Duration: normSpace(cells.Eq(2).Text()),
	}

	rawNumber := strings.TrimSuffix(normSpace(cells.Eq(0).Text()), ".")
	if n, err := strconv.Atoi(rawNumber); err == nil {
		track.Number = n
	} else {
		errs.add(field+".number", fmt.Errorf("invalid track number %q", rawNumber))
	}

	if cells.Length() > 3 {
		extra := cells.Eq(3)
		if href, ok := extra.Find("a[href^='#']").First().Attr("href"); ok {
			digits := strings.Map(func(r rune) rune {
				if r >= '0' && r <= '9' {
					return r
				}
				return -1
			}, href)
			if id, err := strconv.ParseInt(digits, 10, 64); err == nil {
				track.ID = int64Ptr(id)
			} else {
				errs.add(field+".id", fmt.Errorf("%w in %q", errNoID, href))
			}
		} else if em := extra.Find("em").First(); em.Length() > 0 {
			track.Note = normSpace(em.Text())
		}
	}
	return track, true
}
