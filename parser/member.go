package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/domain/domain_util"
)

var artistIDPattern = regexp.MustCompile(`artistId\s*=\s*(\d+)`)

// ExtractMember 解析艺人页面
func ExtractMember(markup []byte) (member *catalog_models.Member) {
	const kind = catalog_models.PageKindMember

	doc, err := loadDocument(markup)
	if err != nil {
		return &catalog_models.Member{ParsingError: recordFailure(kind, "", err)}
	}

	nameEl := doc.Find("h1.band_member_name").First()
	if nameEl.Length() == 0 {
		return &catalog_models.Member{ParsingError: recordFailure(kind, "fullname", errMissingAnchor)}
	}

	member = &catalog_models.Member{Links: []catalog_models.SocialLink{}}
	defer recoverInto(kind, &member.ParsingError)
	errs := &fieldErrors{kind: kind}

	member.Fullname = normSpace(nameEl.Text())
	member.FullnameSlug = domain_util.Slug(member.Fullname)

	if id, ok := findArtistID(doc); ok {
		member.ID = id
	} else {
		errs.add("id", errNoID)
	}

	info := matchDefinitions(doc.Find("#member_info"), memberVocabulary)
	if len(info) == 0 {
		info = matchDefinitions(doc.Selection, memberVocabulary)
	}
	member.RealName = info["real_name"]
	member.Age = info["age"]
	member.PlaceOfBirth = info["place_of_birth"]
	member.Gender = info["gender"]

	if href, ok := doc.Find("a#artist").Attr("href"); ok {
		member.PhotoURL = stripOrigin(href)
	}
	member.Biography = extractBiography(doc)

	member.ActiveBands = extractMemberTab(doc.Find("#artist_tab_active"), "active_bands", errs)
	member.PastBands = extractMemberTab(doc.Find("#artist_tab_past"), "past_bands", errs)
	member.GuestSession = extractMemberTab(doc.Find("#artist_tab_guest"), "guest_session", errs)
	member.Live = extractMemberTab(doc.Find("#artist_tab_live"), "live", errs)
	member.MiscStaff = extractMemberTab(doc.Find("#artist_tab_misc"), "misc_staff", errs)

	member.ParsingError = errs.String()
	return member
}

func findArtistID(doc *goquery.Document) (int64, bool) {
	var id int64
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		m := artistIDPattern.FindStringSubmatch(s.Text())
		if m == nil {
			return true
		}
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			id = v
			return false
		}
		return true
	})
	if id != 0 {
		return id, true
	}
	if href, ok := doc.Find("link[rel='canonical']").Attr("href"); ok {
		if v, err := idFromHref(href); err == nil {
			return v, true
		}
	}
	return 0, false
}

func extractBiography(doc *goquery.Document) string {
	comment := doc.Find(".band_comment").First()
	if comment.Length() == 0 {
		return ""
	}
	comment = comment.Clone()
	comment.Find("h2, .tool_strip").Remove()
	if normSpace(comment.Text()) == "" {
		return ""
	}
	html, err := comment.Html()
	if err != nil {
		return ""
	}
	html = strings.NewReplacer("\t", "", "\n", "").Replace(html)
	return strings.TrimSpace(relativizeLinks(html))
}

func extractMemberTab(tab *goquery.Selection, field string, errs *fieldErrors) []catalog_models.MemberBand {
	bands := []catalog_models.MemberBand{}
	tab.Find("div.member_in_band").Each(func(_ int, block *goquery.Selection) {
		heading := block.Find("h3.member_in_band_name").First()
		band := catalog_models.MemberBand{Albums: []catalog_models.MemberAlbum{}}

		if link := heading.Find("a").First(); link.Length() > 0 {
			band.Name = normSpace(link.Text())
			href, _ := link.Attr("href")
			if id, err := idFromHref(href); err == nil {
				band.ID = int64Ptr(id)
			} else {
				errs.add(field+".id", err)
			}
		} else {
			band.Name = normSpace(heading.Text())
		}
		band.NameSlug = domain_util.Slug(band.Name)
		band.Role = normSpace(block.Find("p.member_in_band_role").First().Text())

		block.Find("table tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}
			link := cells.Eq(1).Find("a").First()
			href, ok := link.Attr("href")
			if !ok {
				return
			}
			id, err := idFromHref(href)
			if err != nil {
				errs.add(field+".albums.id", err)
				return
			}
			album := catalog_models.MemberAlbum{
				ID:          id,
				Title:       normSpace(link.Text()),
				ReleaseDate: normSpace(cells.Eq(0).Text()),
			}
			album.TitleSlug = domain_util.Slug(album.Title)
			if cells.Length() > 2 {
				album.Role = normSpace(cells.Eq(2).Text())
			}
			band.Albums = append(band.Albums, album)
		})
		bands = append(bands, band)
	})
	return bands
}
