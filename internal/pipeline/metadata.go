package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-note2site/internal/dateutil"
)

const (
	metaPublishDate   = `meta[name="publish_date"]`
	metaPublishedTime = `meta[property="article:published_time"]`
)

// StampSource tells where a publication stamp came from.
type StampSource string

// Stamp sources.
const (
	SourceMeta      StampSource = "meta"
	SourceDateBlock StampSource = "date-block"
	SourceDefault   StampSource = "default"
)

// MetadataOptions configures ApplyMetadata.
type MetadataOptions struct {
	// TimeElement prepends <time datetime="YYYY/MM/DD"> to the body.
	TimeElement bool
}

// Metadata is what ApplyMetadata derived for a page.
type Metadata struct {
	Stamp  dateutil.Stamp
	Source StampSource
	Title  string
}

// ExtractStamp derives the publication stamp. An existing publish_date or
// article:published_time meta value wins and is used verbatim; otherwise the
// date block's first two paragraphs are parsed; otherwise defaults apply.
func ExtractStamp(doc *goquery.Document) (dateutil.Stamp, StampSource) {
	for _, sel := range []string{metaPublishDate, metaPublishedTime} {
		if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
			return dateutil.FromMeta(v), SourceMeta
		}
	}

	block := doc.Find("." + ClassDate).First()
	if block.Length() == 0 {
		return dateutil.Default(), SourceDefault
	}
	ps := block.Find("p")
	return dateutil.FromParts(ps.Eq(0).Text(), ps.Eq(1).Text()), SourceDateBlock
}

// ApplyMetadata injects the publication meta elements, the optional <time>
// element and a fallback <title>. Nothing already present is replaced, so
// applying it twice leaves the document unchanged.
func ApplyMetadata(doc *goquery.Document, opts MetadataOptions) Metadata {
	stamp, source := ExtractStamp(doc)
	head := doc.Find("head").First()
	body := doc.Find("body").First()

	if head.Length() > 0 {
		h := head.Nodes[0]
		if doc.Find(metaPublishDate).Length() == 0 {
			h.AppendChild(newElement(atom.Meta, "name", "publish_date", "content", stamp.PublishDate()))
		}
		if doc.Find(metaPublishedTime).Length() == 0 {
			h.AppendChild(newElement(atom.Meta, "property", "article:published_time", "content", stamp.PublishedTime()))
		}
	}

	if opts.TimeElement && body.Length() > 0 && doc.Find("time[datetime]").Length() == 0 {
		t := newElement(atom.Time, "datetime", stamp.PublishDate())
		t.AppendChild(&html.Node{Type: html.TextNode, Data: stamp.PublishDate()})
		prependChild(body.Nodes[0], t)
	}

	return Metadata{Stamp: stamp, Source: source, Title: ensureTitle(doc, head)}
}

// ensureTitle returns the document title, adding one from the topic block
// when the head has none.
func ensureTitle(doc *goquery.Document, head *goquery.Selection) string {
	if existing := doc.Find("head > title").First(); existing.Length() > 0 {
		return strings.TrimSpace(existing.Text())
	}

	topic := doc.Find("." + ClassTopic).First()
	if topic.Length() == 0 {
		return ""
	}
	var title string
	if p := topic.Find("p").First(); p.Length() > 0 {
		title = strings.TrimSpace(p.Text())
	} else {
		title = strings.TrimSpace(topic.Text())
	}
	if title == "" || head.Length() == 0 {
		return title
	}

	t := newElement(atom.Title)
	t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.Nodes[0].AppendChild(t)
	return title
}
