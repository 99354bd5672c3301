package pipeline

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	page := `<html><head></head><body>` +
		`<div id="wrapper"><div id="env">` +
		`<div id="topic"><p>題目</p></div>` +
		`<div id="date"><p>April 11, 2025</p></div>` +
		`<div id="c1"><p>one</p></div>` +
		`<div id="c2"><p>two</p></div>` +
		`<div id="c3"><p>three</p></div>` +
		`</div></div>` +
		`<div id="legacy"><p>leftover</p></div>` +
		`<div id="empty"> </div>` +
		`</body></html>`
	doc := mustParse(t, page)

	layout := Classify(doc)

	if !layout.Envelope || layout.ContentBlocks != 3 || layout.LegacyBlocks != 3 {
		t.Errorf("Classify() = %+v, want envelope, 3 content, 3 legacy", layout)
	}

	var order []string
	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		order = append(order, id)
	})
	want := []string{"c1", "c2", "c3", "env", "wrapper", "legacy", "empty"}
	if len(order) != len(want) {
		t.Fatalf("body children = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("body children = %v, want %v", order, want)
		}
	}

	classes := map[string]string{
		"#env":     ClassEnvelope,
		"#topic":   ClassTopic,
		"#date":    ClassDate,
		"#c1":      ClassContent,
		"#c3":      ClassContent,
		"#wrapper": ClassHidden,
		"#legacy":  ClassLegacy + " " + ClassHidden,
		"#empty":   ClassHidden,
	}
	for sel, want := range classes {
		if got := classesOf(doc, sel); got != want {
			t.Errorf("class of %s = %q, want %q", sel, got, want)
		}
	}

	if doc.Find("#env > #topic").Length() != 1 || doc.Find("#env > #date").Length() != 1 {
		t.Error("topic and date blocks must stay inside the envelope")
	}
}

func TestClassify_WrapperKeepsText(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<body><div id="wrapper"><div id="env"><div></div></div><p>stray</p></div></body>`)
	Classify(doc)

	if got := classesOf(doc, "#wrapper"); got != ClassLegacy+" "+ClassHidden {
		t.Errorf("wrapper class = %q, want legacy and hidden", got)
	}
}

func TestClassify_NoEnvelope(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<body><div id="only"><p>flat text</p></div><p>outside</p></body>`)
	layout := Classify(doc)

	if layout.Envelope || layout.ContentBlocks != 0 {
		t.Errorf("Classify() = %+v, want no envelope", layout)
	}
	if got := classesOf(doc, "#only"); got != ClassLegacy+" "+ClassHidden {
		t.Errorf("class = %q, want legacy and hidden", got)
	}
}

func TestClassify_EmptyBody(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<html><body></body></html>`)
	if got := Classify(doc); got != (Layout{}) {
		t.Errorf("Classify() = %+v, want zero layout", got)
	}
}
