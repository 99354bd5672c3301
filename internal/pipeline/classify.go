package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Classes assigned by the structural classifier.
const (
	ClassEnvelope = "outerSpaceWithTopic"
	ClassTopic    = "topicStringDom"
	ClassDate     = "dateTimeStringDom"
	ClassContent  = "outerSpace"
	ClassLegacy   = "outerSpaceOld"
	ClassHidden   = "display-none"
)

// Layout summarizes what the classifier found.
type Layout struct {
	Envelope      bool
	ContentBlocks int
	LegacyBlocks  int
}

type annotation struct {
	node    *html.Node
	classes []string
}

// layoutPlan is computed from the untouched tree and applied afterwards.
type layoutPlan struct {
	envelope    *html.Node
	content     []*html.Node
	annotations []annotation
}

// Classify restructures the export wrapper. The first div nested in the first
// top-level div becomes the envelope at the front of the body; its first two
// child divs are the topic and date blocks, and the remaining ones become
// content blocks placed before the envelope in their original order. Every
// other top-level div is hidden, and marked legacy when it still holds text.
func Classify(doc *goquery.Document) Layout {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return Layout{}
	}

	p := planLayout(body)
	p.apply(doc, body.Nodes[0])

	layout := Layout{Envelope: p.envelope != nil, ContentBlocks: len(p.content)}
	for _, a := range p.annotations {
		if a.classes[len(a.classes)-1] == ClassHidden {
			layout.LegacyBlocks++
		}
	}
	return layout
}

func planLayout(body *goquery.Selection) layoutPlan {
	var p layoutPlan
	top := body.ChildrenFiltered("div")

	envelope := top.First().ChildrenFiltered("div").First()
	moved := make(map[*html.Node]bool)
	if envelope.Length() > 0 {
		p.envelope = envelope.Nodes[0]
		moved[p.envelope] = true
		p.annotations = append(p.annotations, annotation{p.envelope, []string{ClassEnvelope}})

		envelope.ChildrenFiltered("div").Each(func(i int, s *goquery.Selection) {
			n := s.Nodes[0]
			switch i {
			case 0:
				p.annotations = append(p.annotations, annotation{n, []string{ClassTopic}})
			case 1:
				p.annotations = append(p.annotations, annotation{n, []string{ClassDate}})
			default:
				p.content = append(p.content, n)
				p.annotations = append(p.annotations, annotation{n, []string{ClassContent}})
			}
		})
	}

	// The envelope leaves its wrapper, so the wrapper is judged on what remains.
	top.Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		if strings.TrimSpace(textExcluding(n, moved)) != "" {
			p.annotations = append(p.annotations, annotation{n, []string{ClassLegacy, ClassHidden}})
		} else {
			p.annotations = append(p.annotations, annotation{n, []string{ClassHidden}})
		}
	})

	return p
}

func (p layoutPlan) apply(doc *goquery.Document, body *html.Node) {
	for _, a := range p.annotations {
		doc.FindNodes(a.node).AddClass(a.classes...)
	}
	if p.envelope == nil {
		return
	}

	detach(p.envelope)
	prependChild(body, p.envelope)
	for _, n := range p.content {
		detach(n)
		body.InsertBefore(n, p.envelope)
	}
}
