package pipeline

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-note2site/internal/assets"
)

// CanvasID is the id of the optional background canvas.
const CanvasID = "glsl-canvas"

// InjectOptions configures InjectAssets.
type InjectOptions struct {
	// Canvas prepends <canvas id="glsl-canvas"> to the body.
	Canvas bool
}

// InjectAssets appends a <style> block holding the fonts and index
// stylesheets to <head>, followed by the head fragment, then appends the
// tail fragment to <body>.
func InjectAssets(doc *goquery.Document, bundle *assets.Bundle, opts InjectOptions) error {
	head := doc.Find("head").First()
	body := doc.Find("body").First()
	if head.Length() == 0 || body.Length() == 0 {
		return fmt.Errorf("%w: document has no head or body", ErrParse)
	}

	style := newElement(atom.Style)
	style.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: "\n" + sanitizeCSS(bundle.FontsCSS) + "\n" + sanitizeCSS(bundle.IndexCSS) + "\n",
	})
	head.Nodes[0].AppendChild(style)

	if err := appendFragment(head.Nodes[0], bundle.Head, atom.Head); err != nil {
		return err
	}

	if opts.Canvas {
		prependChild(body.Nodes[0], newElement(atom.Canvas, "id", CanvasID))
	}

	return appendFragment(body.Nodes[0], bundle.Tail, atom.Body)
}

func appendFragment(parent *html.Node, content string, context atom.Atom) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	nodes, err := parseFragment(content, context)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
