package pipeline

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustParse(t *testing.T, content string) *goquery.Document {
	t.Helper()

	doc, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return doc
}

func mustRender(t *testing.T, doc *goquery.Document) string {
	t.Helper()

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return out
}

// classesOf returns the class attribute of the first match.
func classesOf(doc *goquery.Document, sel string) string {
	v, _ := doc.Find(sel).First().Attr("class")
	return v
}

// exportPage builds a page shaped like the notebook export: a wrapper div
// holding the envelope, whose children are topic, date and content blocks.
func exportPage(title, topic, date, clock string, blocks ...string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head>")
	if title != "" {
		b.WriteString("<title>" + title + "</title>")
	}
	b.WriteString("</head><body><div><div>")
	b.WriteString("<div><p>" + topic + "</p></div>")
	b.WriteString("<div><p>" + date + "</p><p>" + clock + "</p></div>")
	for _, blk := range blocks {
		b.WriteString("<div>" + blk + "</div>")
	}
	b.WriteString("</div></div></body></html>")
	return b.String()
}
