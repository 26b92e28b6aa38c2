package domain_util

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var pinyinArgs = pinyin.NewArgs()

// Slug 生成检索用标识：去变音符号，汉字转拼音，空白折叠为下划线，其余标点移除
func Slug(s string) string {
	// transform.Chain 带内部状态，每次调用新建
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	sep := false
	writeSep := func() {
		if sep && b.Len() > 0 {
			b.WriteByte('_')
		}
		sep = false
	}

	for _, r := range folded {
		switch {
		case unicode.Is(unicode.Han, r):
			for _, syllable := range pinyin.LazyPinyin(string(r), pinyinArgs) {
				sep = true
				writeSep()
				b.WriteString(syllable)
				sep = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			writeSep()
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '_':
			sep = true
		}
	}
	return b.String()
}
