package note2site

import (
	"context"
	"fmt"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-note2site/internal/assets"
	"github.com/alnah/go-note2site/internal/logger"
	"github.com/alnah/go-note2site/internal/lookup"
	"github.com/alnah/go-note2site/internal/pipeline"
)

// Transformer runs the page pipeline. It holds no per-page state, so one
// instance serves a whole run.
type Transformer struct {
	cfg          transformerConfig
	preprocessor *pipeline.Preprocessor
	bundle       *assets.Bundle
	resolver     lookup.Resolver
	log          logger.Logger
}

// NewTransformer creates a Transformer with the default thresholds and the
// embedded assets. No title keyword is blocked and image resolution is off
// until the matching options are given.
func NewTransformer(opts ...Option) *Transformer {
	t := &Transformer{
		cfg: transformerConfig{
			minContentChars: defaultMinContentChars,
			locale:          pipeline.DefaultLocale,
			metadata:        pipeline.MetadataOptions{TimeElement: true},
		},
		log: logger.NewNop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.bundle == nil {
		t.bundle = assets.DefaultBundle()
	}
	t.preprocessor = pipeline.NewPreprocessor(t.cfg.locale)

	return t
}

// Transform converts one exported page. Skipped pages return a Result with
// Skipped set and no error. The context is checked between stages and bounds
// the image lookups.
// Recovers from internal panics so one malformed page cannot stop a run.
func (t *Transformer) Transform(ctx context.Context, page RawPage) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: %s: internal error: %v", ErrTransform, page.Title, r)
		}
	}()

	log := t.log.With(logger.String("page", page.Title))

	// Regex stage runs on the raw string, before any DOM exists
	content := t.preprocessor.Process(page.Body)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := pipeline.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransform, page.Title, err)
	}

	if skipped := t.checkSkip(doc, page); skipped != nil {
		log.Info("page skipped",
			logger.String("reason", string(skipped.Reason)),
			logger.String("detail", skipped.Detail),
			logger.String("path", page.Path))
		return skipped, nil
	}

	res = &Result{Usage: pipeline.NewStyleUsage()}

	pipeline.Classify(doc)

	// Numbering reads the lead spans after style tagging has run; the global
	// font-size strip comes last so it sees every styled element.
	styles := pipeline.TagStyles(doc, res.Usage, t.cfg.style)
	res.Flagged = styles.Flagged
	pipeline.NumberLists(doc, t.cfg.numbering)
	pipeline.StripFontSizes(doc)

	pipeline.HideSmallImages(doc, t.cfg.smallImageMax)
	pipeline.TagTableText(doc)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	md := pipeline.ApplyMetadata(doc, t.cfg.metadata)
	res.Title = md.Title
	res.Stamp = md.Stamp

	if t.resolver != nil {
		report, err := pipeline.ResolveAssets(ctx, doc, t.resolver, t.cfg.lookup)
		if err != nil {
			return nil, err
		}
		for _, f := range report.Failures {
			log.Warn("asset lookup failed",
				logger.String("src", f.Src),
				logger.String("filename", f.Filename),
				logger.Error(f.Err))
		}
		res.Assets = report
	}

	if err := pipeline.InjectAssets(doc, t.bundle, t.cfg.inject); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransform, page.Title, err)
	}

	out, err := pipeline.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransform, page.Title, err)
	}
	res.HTML = out

	return res, nil
}

// checkSkip applies the title keyword and minimum content checks.
func (t *Transformer) checkSkip(doc *goquery.Document, page RawPage) *Result {
	titles := []string{pipeline.HeadTitle(doc), page.Title}
	if kw, ok := pipeline.MatchKeyword(titles, t.cfg.keywords); ok {
		return &Result{Skipped: true, Reason: SkipTitleKeyword, Detail: kw}
	}

	if n := pipeline.VisibleRunes(doc); n < t.cfg.minContentChars {
		return &Result{Skipped: true, Reason: SkipTooShort, Detail: strconv.Itoa(n)}
	}

	return nil
}
