package note2site

import (
	"slices"

	"github.com/alnah/go-note2site/internal/assets"
	"github.com/alnah/go-note2site/internal/logger"
	"github.com/alnah/go-note2site/internal/lookup"
	"github.com/alnah/go-note2site/internal/pipeline"
)

// Option configures a Transformer.
type Option func(*Transformer)

// transformerConfig holds the tunables of a Transformer.
type transformerConfig struct {
	keywords        []string
	minContentChars int
	locale          string
	style           pipeline.StyleOptions
	numbering       pipeline.NumberingOptions
	smallImageMax   int
	metadata        pipeline.MetadataOptions
	inject          pipeline.InjectOptions
	lookup          pipeline.AssetOptions
}

// defaultMinContentChars is the visible text a page needs to survive.
const defaultMinContentChars = 100

// WithSkipTitleKeywords replaces the blocked title keywords.
func WithSkipTitleKeywords(keywords ...string) Option {
	return func(t *Transformer) {
		t.cfg.keywords = slices.Clone(keywords)
	}
}

// WithMinContentChars sets the minimum visible rune count.
// Panics if n < 0 (programmer error).
func WithMinContentChars(n int) Option {
	if n < 0 {
		panic("note2site: WithMinContentChars must not be negative")
	}
	return func(t *Transformer) {
		t.cfg.minContentChars = n
	}
}

// WithLocale sets the language tag that replaces English ones.
func WithLocale(locale string) Option {
	return func(t *Transformer) {
		t.cfg.locale = locale
	}
}

// WithMaxDistinctFontSizes sets the per-page size count above which the body
// is flagged.
func WithMaxDistinctFontSizes(n int) Option {
	return func(t *Transformer) {
		t.cfg.style.MaxDistinctFontSizes = n
	}
}

// WithNumbering configures localized list numbering.
func WithNumbering(opts pipeline.NumberingOptions) Option {
	return func(t *Transformer) {
		t.cfg.numbering = opts
	}
}

// WithSmallImageMax sets the size under which images are hidden.
func WithSmallImageMax(n int) Option {
	return func(t *Transformer) {
		t.cfg.smallImageMax = n
	}
}

// WithTimeElement toggles the <time> element prepended to the body.
func WithTimeElement(enabled bool) Option {
	return func(t *Transformer) {
		t.cfg.metadata.TimeElement = enabled
	}
}

// WithCanvas toggles the background canvas element.
func WithCanvas(enabled bool) Option {
	return func(t *Transformer) {
		t.cfg.inject.Canvas = enabled
	}
}

// WithResolver enables image reference resolution. baseURL builds the file
// URLs; workers bounds concurrent lookups per page (0 = lookup.DefaultWorkers).
func WithResolver(r lookup.Resolver, baseURL string, workers int) Option {
	return func(t *Transformer) {
		t.resolver = r
		t.cfg.lookup = pipeline.AssetOptions{BaseURL: baseURL, Workers: workers}
	}
}

// WithBundle sets the stylesheets and fragments injected into every page.
func WithBundle(b *assets.Bundle) Option {
	return func(t *Transformer) {
		t.bundle = b
	}
}

// WithLogger sets the logger for skip and lookup events.
func WithLogger(l logger.Logger) Option {
	return func(t *Transformer) {
		t.log = l
	}
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuildLogger sets the logger for discovery and write events.
func WithBuildLogger(l logger.Logger) BuilderOption {
	return func(b *Builder) {
		b.log = l
	}
}

// WithSiteGenerator runs g over the output directory once everything is
// written. dest is passed through (empty = generator default).
func WithSiteGenerator(g SiteGenerator, dest string) BuilderOption {
	return func(b *Builder) {
		b.generator = g
		b.dest = dest
	}
}
