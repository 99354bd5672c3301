// Package note2site turns a tree of exported notebook pages into the source
// of a Jekyll site: one normalized HTML file per page plus a section manifest.
//
// # Quick Start
//
// Build a transformer, hand it to a builder, and run it:
//
//	t := note2site.NewTransformer(
//	    note2site.WithSkipTitleKeywords("圖庫資源", "示範"),
//	    note2site.WithMinContentChars(100),
//	)
//	b, err := note2site.NewBuilder(note2site.BuildConfig{
//	    Source: "exports",
//	    Output: "jekyll",
//	    Mode:   note2site.ModeFlat,
//	}, t)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := b.Build(ctx)
//
// res.Manifest lists the surviving pages by section, in traversal order.
// res.Usage holds every font size and color seen across the corpus.
//
// # Page Pipeline
//
// Transformer.Transform runs these stages on one page:
//
//  1. Text preprocessing (collapsed line breaks, language tags, arrow icons)
//  2. Parsing, then the skip checks (title keywords, minimum visible text)
//  3. Structural classification of the export envelope
//  4. Style tagging with per-page font-size ranks, then list numbering
//  5. Font-size stripping, small image hiding, table text tagging
//  6. Publication metadata and title fallback
//  7. Image reference resolution through the lookup service
//  8. Stylesheet and fragment injection, then serialization
//
// A page that fails a skip check comes back with Result.Skipped set and no
// HTML. Nothing is written for it.
//
// # Image Lookup
//
// Pass a resolver with WithResolver to rewrite image sources. The production
// resolver is internal/lookup's Client behind a per-run Cache; tests inject
// their own. A failed lookup leaves the image source untouched.
package note2site
