package pipeline

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Classes and attributes assigned by the style normalizer.
const (
	ClassFontSizePrefix = "oldFontSize-"
	ClassColorPrefix    = "oldColor-"
	ClassRankPrefix     = "newFontSizeRank-"
	ClassTooManySizes   = "flagTooMuchFontSize"

	AttrAnimation  = "data-aos"
	AnimationValue = "fade-up"

	DefaultMaxDistinctFontSizes = 6
)

var (
	fontSizeDecl = regexp.MustCompile(`(?i)font-size\s*:\s*([\d.]+)pt`)
	// background-color is excluded by requiring a start or separator before "color".
	colorDecl = regexp.MustCompile(`(?i)(?:^|[;\s])color\s*:\s*#([0-9a-f]{6}|[0-9a-f]{3})\b`)
)

// StyleOptions configures TagStyles.
type StyleOptions struct {
	// MaxDistinctFontSizes flags the body when a page uses more sizes.
	MaxDistinctFontSizes int
}

// RankMap maps a numeric font size to its rank, 1 being the largest.
type RankMap map[float64]int

// StyleResult reports the ranking of one page.
type StyleResult struct {
	Ranks   RankMap
	Flagged bool
}

type styledElement struct {
	node    *html.Node
	rawSize string
	size    float64
	sized   bool
	color   string
}

// TagStyles tags every element carrying an inline style. Point font sizes and
// hex colors are recorded in usage and encoded as oldFontSize-<n>Pt and
// oldColor-<hex> classes; each styled element gets data-aos="fade-up". Sized
// elements then receive newFontSizeRank-<rank> against this page's distinct
// sizes, and the body is flagged when there are too many of them.
func TagStyles(doc *goquery.Document, usage *StyleUsage, opts StyleOptions) StyleResult {
	if opts.MaxDistinctFontSizes <= 0 {
		opts.MaxDistinctFontSizes = DefaultMaxDistinctFontSizes
	}

	var elems []styledElement
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		if strings.TrimSpace(style) == "" {
			return
		}
		e := styledElement{node: s.Nodes[0]}
		if m := fontSizeDecl.FindStringSubmatch(style); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				e.rawSize, e.size, e.sized = m[1], v, true
				usage.AddFontSize(m[1])
			}
		}
		if m := colorDecl.FindStringSubmatch(style); m != nil {
			e.color = expandHex(strings.ToLower(m[1]))
			usage.AddColor(e.color)
		}
		elems = append(elems, e)
	})

	ranks := rankSizes(elems)
	flagged := len(ranks) > opts.MaxDistinctFontSizes

	for _, e := range elems {
		s := doc.FindNodes(e.node)
		if e.sized {
			s.AddClass(ClassFontSizePrefix + e.rawSize + "Pt")
		}
		if e.color != "" {
			s.AddClass(ClassColorPrefix + e.color)
		}
		s.SetAttr(AttrAnimation, AnimationValue)
		if e.sized {
			s.AddClass(ClassRankPrefix + strconv.Itoa(ranks[e.size]))
		}
	}
	if flagged {
		doc.Find("body").AddClass(ClassTooManySizes)
	}

	return StyleResult{Ranks: ranks, Flagged: flagged}
}

func rankSizes(elems []styledElement) RankMap {
	seen := make(map[float64]bool)
	var sizes []float64
	for _, e := range elems {
		if e.sized && !seen[e.size] {
			seen[e.size] = true
			sizes = append(sizes, e.size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	ranks := make(RankMap, len(sizes))
	for i, v := range sizes {
		ranks[v] = i + 1
	}
	return ranks
}

// expandHex turns "abc" into "aabbcc"; 6-digit values pass through.
func expandHex(h string) string {
	if len(h) != 3 {
		return h
	}
	return string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
}

// StripFontSizes removes every font-size declaration from inline styles and
// drops style attributes left empty. It returns the number of elements touched.
func StripFontSizes(doc *goquery.Document) int {
	var targets []*html.Node
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		if strings.Contains(strings.ToLower(style), "font-size") {
			targets = append(targets, s.Nodes[0])
		}
	})

	for _, n := range targets {
		s := doc.FindNodes(n)
		style, _ := s.Attr("style")
		if rest := removeDeclaration(style, "font-size"); rest != "" {
			s.SetAttr("style", rest)
		} else {
			s.RemoveAttr("style")
		}
	}
	return len(targets)
}

// splitDeclarations splits an inline style into trimmed, non-empty parts.
func splitDeclarations(style string) []string {
	var out []string
	for _, d := range strings.Split(style, ";") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

func declName(decl string) string {
	name, _, _ := strings.Cut(decl, ":")
	return strings.ToLower(strings.TrimSpace(name))
}

func removeDeclaration(style, prop string) string {
	var kept []string
	for _, d := range splitDeclarations(style) {
		if declName(d) != prop {
			kept = append(kept, d)
		}
	}
	return strings.Join(kept, "; ")
}

// setDeclaration sets prop to value, replacing any existing declaration.
func setDeclaration(style, prop, value string) string {
	kept := splitDeclarations(removeDeclaration(style, prop))
	kept = append(kept, prop+": "+value)
	return strings.Join(kept, "; ")
}
