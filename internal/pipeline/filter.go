package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// NormalizeTitle prepares a title for keyword matching: NFC form, all
// whitespace removed, lower case.
func NormalizeTitle(s string) string {
	return strings.ToLower(stripSpace(norm.NFC.String(s)))
}

// MatchKeyword reports the first keyword contained in any of the titles.
// Empty titles and keywords never match.
func MatchKeyword(titles, keywords []string) (string, bool) {
	for _, t := range titles {
		t = NormalizeTitle(t)
		if t == "" {
			continue
		}
		for _, k := range keywords {
			nk := NormalizeTitle(k)
			if nk != "" && strings.Contains(t, nk) {
				return k, true
			}
		}
	}
	return "", false
}

// HeadTitle returns the text of the document's <title>, trimmed.
func HeadTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("head > title").First().Text())
}

// VisibleRunes counts the runes of the body text with all whitespace removed.
func VisibleRunes(doc *goquery.Document) int {
	return runeCount(stripSpace(doc.Find("body").Text()))
}
