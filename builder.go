package note2site

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-note2site/internal/fileutil"
	"github.com/alnah/go-note2site/internal/logger"
	"github.com/alnah/go-note2site/internal/pipeline"
	"github.com/alnah/go-note2site/internal/sitegen"
)

// Defaults for BuildConfig.
const (
	DefaultManifest = "sections.json"
	DefaultLayout   = "default"
	DefaultTitle    = "Notes"
)

// Site tree layout under the output directory.
const (
	pagesDir   = "pages"
	dataDir    = "_data"
	layoutsDir = "_layouts"
)

// manifestExtensions are the formats the manifest can be written in.
var manifestExtensions = []string{".json", ".yml", ".yaml"}

// SiteGenerator renders a written site tree.
type SiteGenerator interface {
	Build(ctx context.Context, source, dest string) error
}

// Compile-time interface implementation check.
var _ SiteGenerator = (*sitegen.Generator)(nil)

// BuildConfig describes one site build.
type BuildConfig struct {
	Source   string // Export root
	Output   string // Site source directory
	Mode     Mode   // Default: ModeFlat
	Manifest string // File name under _data/ (default: sections.json)
	Layout   string // Layout name (default: "default")
	Title    string // _config.yml title (default: "Notes")
	Clean    bool   // Remove Output before writing
}

// BuildResult is what a Build run produced.
type BuildResult struct {
	Manifest     Manifest
	ManifestPath string
	Stats        BuildStats
	Usage        *StyleUsage // Corpus-wide sizes and colors
}

// Builder walks the source tree, transforms every page, and writes the site.
type Builder struct {
	cfg         BuildConfig
	transformer *Transformer
	generator   SiteGenerator
	dest        string
	log         logger.Logger
}

// NewBuilder validates cfg and fills its defaults.
func NewBuilder(cfg BuildConfig, t *Transformer, opts ...BuilderOption) (*Builder, error) {
	if t == nil {
		return nil, ErrNilTransformer
	}
	if cfg.Output == "" {
		return nil, ErrEmptyOutput
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeFlat
	}
	if cfg.Mode != ModeFlat && cfg.Mode != ModeNested {
		return nil, fmt.Errorf("%w: %q (must be flat or nested)", ErrInvalidMode, cfg.Mode)
	}
	if cfg.Manifest == "" {
		cfg.Manifest = DefaultManifest
	}
	if strings.ContainsAny(cfg.Manifest, `/\`) ||
		!slices.Contains(manifestExtensions, strings.ToLower(filepath.Ext(cfg.Manifest))) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidManifest, cfg.Manifest)
	}
	if cfg.Layout == "" {
		cfg.Layout = DefaultLayout
	}
	if strings.ContainsAny(cfg.Layout, `/\.`) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLayout, cfg.Layout)
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}

	b := &Builder{cfg: cfg, transformer: t, log: logger.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build runs the whole aggregation. Pages are processed one at a time in
// traversal order. Unreadable, failing and skipped pages are logged and left
// out; the manifest is written once, after the last page.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	start := time.Now()

	// An output directory inside the source tree must not be read back.
	var exclude []string
	if fileutil.IsWithin(b.cfg.Output, b.cfg.Source) {
		exclude = append(exclude, b.cfg.Output)
	}
	sections, err := Discover(b.cfg.Source, b.cfg.Mode, exclude...)
	if err != nil {
		return nil, err
	}

	if b.cfg.Clean {
		if err := b.clean(); err != nil {
			return nil, err
		}
	}

	usage := pipeline.NewCorpusUsage()
	manifest := Manifest{}
	var stats BuildStats

	// Flat file names count every section and page that was read, so an
	// index never shifts when a neighbour is skipped.
	sectionIndex := 0
	for _, sec := range sections {
		pages := b.readSection(sec, &stats)
		if len(pages) == 0 {
			continue
		}

		var kept []Page
		for pageIndex, raw := range pages {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			res, err := b.transformer.Transform(ctx, raw)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				b.log.Error("page transform failed", logger.String("path", raw.Path), logger.Error(err))
				stats.Failed++
				continue
			}
			if res.Skipped {
				stats.Skipped++
				continue
			}

			usage.Merge(res.Usage)
			stats.AssetsResolved += res.Assets.Resolved
			stats.AssetFailures += len(res.Assets.Failures)
			if res.Flagged {
				stats.Flagged++
			}

			rel := b.pagePath(sec, sectionIndex, pageIndex, raw)
			if err := b.writePage(rel, raw.Title, res.HTML); err != nil {
				return nil, err
			}
			kept = append(kept, Page{
				PageInfo: PageInfo{Title: raw.Title},
				PageBody: res.HTML,
				URL:      pageURL(rel),
			})
		}
		sectionIndex++

		if len(kept) == 0 {
			b.log.Info("section omitted, no surviving pages", logger.String("section", sec.Name))
			continue
		}
		manifest = append(manifest, Section{
			SectionInfo:  SectionInfo{DisplayName: sec.Name},
			SectionPages: kept,
		})
	}

	stats.Sections = len(manifest)
	stats.Pages = manifest.PageCount()

	manifestPath, err := b.writeManifest(manifest)
	if err != nil {
		return nil, err
	}
	if err := b.writeScaffolding(); err != nil {
		return nil, err
	}

	b.log.Info("site written",
		logger.String("output", b.cfg.Output),
		logger.Int("sections", stats.Sections),
		logger.Int("pages", stats.Pages),
		logger.Int("skipped", stats.Skipped),
		logger.Int("failed", stats.Failed),
		logger.Duration("elapsed", time.Since(start)))

	result := &BuildResult{
		Manifest:     manifest,
		ManifestPath: manifestPath,
		Stats:        stats,
		Usage:        usage.Snapshot(),
	}

	if b.generator != nil {
		if err := b.generator.Build(ctx, b.cfg.Output, b.dest); err != nil {
			return result, fmt.Errorf("%w: %w", ErrSiteBuild, err)
		}
		b.log.Info("site generated", logger.String("source", b.cfg.Output))
	}

	return result, nil
}

// readSection loads the section's page files. Read failures are logged,
// counted and skipped.
func (b *Builder) readSection(sec SourceSection, stats *BuildStats) []RawPage {
	pages := make([]RawPage, 0, len(sec.Files))
	for _, name := range sec.Files {
		p := filepath.Join(sec.Dir, name)
		data, err := os.ReadFile(p) // #nosec G304 -- path comes from directory listing
		if err != nil {
			b.log.Warn("page read failed", logger.String("path", p), logger.Error(err))
			stats.Failed++
			continue
		}
		pages = append(pages, RawPage{Title: pageTitle(name), Body: string(data), Path: p})
	}
	return pages
}

// pagePath returns the slash-separated page path relative to the output
// directory.
func (b *Builder) pagePath(sec SourceSection, sectionIndex, pageIndex int, raw RawPage) string {
	if b.cfg.Mode == ModeNested {
		return path.Join(pagesDir, sec.Rel, filepath.Base(raw.Path))
	}
	return path.Join(pagesDir, strconv.Itoa(sectionIndex)+"-"+strconv.Itoa(pageIndex)+pageExt)
}

// pageURL turns a relative page path into a site URL, escaping each segment.
func pageURL(rel string) string {
	segments := strings.Split(rel, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(segments, "/")
}

func (b *Builder) writePage(rel, title, body string) error {
	content := frontMatter(b.cfg.Layout, title) + "\n" + body + "\n"
	p := filepath.Join(b.cfg.Output, filepath.FromSlash(rel))
	if err := fileutil.WriteFile(p, []byte(content)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, p, err)
	}
	b.log.Debug("page written", logger.String("path", p))
	return nil
}

// clean removes the output directory unless doing so could destroy the
// source tree, the home directory or a filesystem root.
func (b *Builder) clean() error {
	abs, err := filepath.Abs(b.cfg.Output)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnsafeClean, b.cfg.Output, err)
	}
	if abs == filepath.Dir(abs) {
		return fmt.Errorf("%w: %s is a filesystem root", ErrUnsafeClean, abs)
	}
	if fileutil.IsWithin(b.cfg.Source, abs) {
		return fmt.Errorf("%w: %s contains the source directory", ErrUnsafeClean, abs)
	}
	if home, err := os.UserHomeDir(); err == nil && fileutil.IsWithin(home, abs) {
		return fmt.Errorf("%w: %s contains the home directory", ErrUnsafeClean, abs)
	}

	if err := os.RemoveAll(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: removing %s: %w", ErrWriteOutput, abs, err)
	}
	b.log.Info("output cleaned", logger.String("output", abs))
	return nil
}
