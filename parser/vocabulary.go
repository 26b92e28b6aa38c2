package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// labelRule 标签包含 contains（小写）即映射到 field
type labelRule struct {
	contains string
	field    string
}

var bandVocabulary = []labelRule{
	{"country of origin", "country"},
	{"location", "city"},
	{"status", "status"},
	{"formed in", "formed_in"},
	{"years active", "years_active"},
	{"genre", "genres"},
	{"themes", "themes"},
	{"label", "label"},
}

var albumVocabulary = []labelRule{
	{"type", "type"},
	{"release date", "release_date"},
	{"catalog id", "catalog_id"},
	{"label", "label"},
	{"format", "format"},
}

var memberVocabulary = []labelRule{
	{"real/full name", "real_name"},
	{"age", "age"},
	{"place of birth", "place_of_birth"},
	{"gender", "gender"},
}

// matchDefinitions 遍历 dt/dd 对，按词表做大小写不敏感的子串匹配；同一字段首次命中生效
func matchDefinitions(scope *goquery.Selection, rules []labelRule) map[string]string {
	out := make(map[string]string, len(rules))
	scope.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		dd := dt.NextFiltered("dd")
		if dd.Length() == 0 {
			return
		}
		label := normLabel(dt.Text())
		for _, rule := range rules {
			if !strings.Contains(label, rule.contains) {
				continue
			}
			if _, seen := out[rule.field]; !seen {
				out[rule.field] = normSpace(dd.Text())
			}
			return
		}
	})
	return out
}
