package pipeline

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/alnah/go-note2site/internal/lookup"
)

// AssetOptions configures ResolveAssets.
type AssetOptions struct {
	// BaseURL is the lookup service endpoint used to build file URLs.
	BaseURL string
	// Workers bounds concurrent lookups within one page.
	Workers int
}

// AssetFailure describes one image whose reference was left unchanged.
type AssetFailure struct {
	Src      string
	Filename string
	Err      error
}

// AssetReport summarizes ResolveAssets.
type AssetReport struct {
	Resolved int
	Skipped  int
	Failures []AssetFailure
}

type imageRef struct {
	node     *html.Node
	src      string
	filename string
}

// ResolveAssets rewrites every <img src> whose filename the resolver knows to
// <BaseURL>?getFile=<hash>. Images are considered left to right; data: URIs
// and sources already pointing at the file endpoint are skipped. A failed
// lookup leaves src byte-identical and is reported in AssetReport.Failures.
// The only error returned is ctx's.
func ResolveAssets(ctx context.Context, doc *goquery.Document, r lookup.Resolver, opts AssetOptions) (AssetReport, error) {
	var report AssetReport
	if r == nil {
		return report, nil
	}
	if opts.BaseURL == "" {
		opts.BaseURL = lookup.DefaultBaseURL
	}

	var refs []imageRef
	var names []string
	seen := make(map[string]bool)
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if skipSource(src, opts.BaseURL) {
			report.Skipped++
			return
		}
		name := sourceFilename(src)
		if name == "" {
			report.Skipped++
			return
		}
		refs = append(refs, imageRef{node: s.Nodes[0], src: src, filename: name})
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})
	if len(refs) == 0 {
		return report, nil
	}

	outcomes := lookup.ResolveAll(ctx, r, names, opts.Workers)
	if err := ctx.Err(); err != nil {
		return report, err
	}
	byName := make(map[string]lookup.Outcome, len(outcomes))
	for _, o := range outcomes {
		byName[o.Filename] = o
	}

	for _, ref := range refs {
		o := byName[ref.filename]
		if o.Err != nil {
			report.Failures = append(report.Failures, AssetFailure{Src: ref.src, Filename: ref.filename, Err: o.Err})
			continue
		}
		doc.FindNodes(ref.node).SetAttr("src", lookup.FileURL(opts.BaseURL, o.Hash))
		report.Resolved++
	}
	return report, nil
}

func skipSource(src, baseURL string) bool {
	src = strings.TrimSpace(src)
	return src == "" ||
		strings.HasPrefix(strings.ToLower(src), "data:") ||
		lookup.IsFileURL(baseURL, src)
}

// sourceFilename returns the last path segment of src. Both slash kinds
// separate segments since exports made on Windows use backslashes.
func sourceFilename(src string) string {
	if i := strings.LastIndexAny(src, `/\`); i >= 0 {
		return src[i+1:]
	}
	return src
}
