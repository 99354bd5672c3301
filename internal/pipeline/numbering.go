package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/alnah/go-note2site/internal/zhnum"
)

// Classes assigned to second-level lists inside long list items.
const (
	ClassL2List = "titleL2ul"
	ClassL2Item = "titleL2li"
	ClassL2Lead = "titleL2p"
	ClassL2Span = "titleL2span"
)

// Defaults for list numbering.
const (
	DefaultLevel2Threshold = 800
	DefaultSkipMarker      = "編輯格式"
	numeralSeparator       = "、"
)

const (
	level1Selector = ".outerSpace > ul > li > p:first-of-type > span:first-of-type"
	level2Selector = ".outerSpace > ul > li"
)

// NumberingOptions configures NumberLists.
type NumberingOptions struct {
	// Level2Threshold is the rune count an item must exceed for its nested
	// lists to be numbered.
	Level2Threshold int
	// SkipMarker hides a first-level item whose lead text contains it.
	SkipMarker string
}

// NumberingStats reports what NumberLists changed.
type NumberingStats struct {
	Level1 int
	Level2 int
	Hidden int
}

type numberEdit struct {
	span    *html.Node
	prefix  string
	hide    *html.Node // list item to hide instead of numbering
	classes []annotation
}

// NumberLists prefixes content-block list items with localized ordinals.
//
// An item of a content block's top-level list longer than Level2Threshold
// runes gets its nested lists numbered 一、二、三… across all of them. Every
// top-level item's first paragraph span is numbered 壹、貳、參…, except that
// an item whose span contains SkipMarker is hidden and not counted.
func NumberLists(doc *goquery.Document, opts NumberingOptions) NumberingStats {
	if opts.Level2Threshold <= 0 {
		opts.Level2Threshold = DefaultLevel2Threshold
	}
	if opts.SkipMarker == "" {
		opts.SkipMarker = DefaultSkipMarker
	}

	var edits []numberEdit
	var stats NumberingStats

	doc.Find(level2Selector).Each(func(_ int, item *goquery.Selection) {
		if runeCount(item.Text()) <= opts.Level2Threshold {
			return
		}
		n := 0
		item.ChildrenFiltered("ul").Each(func(_ int, ul *goquery.Selection) {
			e := numberEdit{classes: []annotation{{ul.Nodes[0], []string{ClassL2List}}}}
			ul.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				n++
				e.classes = append(e.classes, annotation{li.Nodes[0], []string{ClassL2Item}})
				lead := li.ChildrenFiltered("p, span").First()
				if lead.Length() == 0 {
					return
				}
				e.classes = append(e.classes, annotation{lead.Nodes[0], []string{ClassL2Lead}})
				span := lead.ChildrenFiltered("span").First()
				if span.Length() == 0 {
					return
				}
				e.classes = append(e.classes, annotation{span.Nodes[0], []string{ClassL2Span}})
				edits = append(edits, numberEdit{span: span.Nodes[0], prefix: zhnum.Lower(n) + numeralSeparator})
				stats.Level2++
			})
			edits = append(edits, e)
		})
	})

	counter := 0
	doc.Find(level1Selector).Each(func(_ int, span *goquery.Selection) {
		if strings.Contains(span.Text(), opts.SkipMarker) {
			if li := span.Closest("li"); li.Length() > 0 {
				edits = append(edits, numberEdit{hide: li.Nodes[0]})
				stats.Hidden++
			}
			return
		}
		counter++
		edits = append(edits, numberEdit{span: span.Nodes[0], prefix: zhnum.Upper(counter) + numeralSeparator})
		stats.Level1++
	})

	for _, e := range edits {
		for _, a := range e.classes {
			doc.FindNodes(a.node).AddClass(a.classes...)
		}
		if e.hide != nil {
			li := doc.FindNodes(e.hide)
			style, _ := li.Attr("style")
			li.SetAttr("style", setDeclaration(style, "display", "none"))
		}
		if e.span != nil {
			s := doc.FindNodes(e.span)
			s.SetText(e.prefix + s.Text())
		}
	}

	return stats
}
