package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ClassTableText marks spans directly inside table cells.
const ClassTableText = "in-table-text-resize"

// DefaultSmallImageMax is the exclusive bound below which both dimensions
// make an image decorative.
const DefaultSmallImageMax = 20

var (
	leadingNumber = regexp.MustCompile(`^\s*([\d.]+)`)
	styleWidth    = regexp.MustCompile(`(?i)(?:^|[;\s])width\s*:\s*([\d.]+)`)
	styleHeight   = regexp.MustCompile(`(?i)(?:^|[;\s])height\s*:\s*([\d.]+)`)
)

// HideSmallImages adds display-none to images whose width and height are
// both below limit. Both dimensions come from the width and height attributes
// when both are set, otherwise both from the inline style; an image with an
// unknown dimension is kept.
func HideSmallImages(doc *goquery.Document, limit int) int {
	if limit <= 0 {
		limit = DefaultSmallImageMax
	}

	var small []*html.Node
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		w, h, ok := dimensions(s)
		if ok && w < float64(limit) && h < float64(limit) {
			small = append(small, s.Nodes[0])
		}
	})

	for _, n := range small {
		doc.FindNodes(n).AddClass(ClassHidden)
	}
	return len(small)
}

// dimensions never mixes an attribute with a style value.
func dimensions(s *goquery.Selection) (float64, float64, bool) {
	wAttr := s.AttrOr("width", "")
	hAttr := s.AttrOr("height", "")
	if wAttr != "" && hAttr != "" {
		w, okW := parseDimension(leadingNumber, wAttr)
		h, okH := parseDimension(leadingNumber, hAttr)
		return w, h, okW && okH
	}

	style := s.AttrOr("style", "")
	w, okW := parseDimension(styleWidth, style)
	h, okH := parseDimension(styleHeight, style)
	return w, h, okW && okH
}

func parseDimension(re *regexp.Regexp, v string) (float64, bool) {
	m := re.FindStringSubmatch(v)
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// TagTableText adds in-table-text-resize to spans that are direct children of
// table body cells.
func TagTableText(doc *goquery.Document) int {
	spans := doc.Find("table > tbody > tr > td > span")
	spans.AddClass(ClassTableText)
	return spans.Length()
}
