package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	note2site "github.com/alnah/go-note2site"
	"github.com/alnah/go-note2site/internal/assets"
	"github.com/alnah/go-note2site/internal/config"
	"github.com/alnah/go-note2site/internal/hints"
	"github.com/alnah/go-note2site/internal/logger"
	"github.com/alnah/go-note2site/internal/lookup"
	"github.com/alnah/go-note2site/internal/pipeline"
	"github.com/alnah/go-note2site/internal/sitegen"
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// customAssetFiles lists what a custom asset directory may provide.
var customAssetFiles = []string{
	"styles/" + assets.StyleFonts + ".css",
	"styles/" + assets.StyleIndex + ".css",
	"templates/" + assets.TemplateHead + ".html",
	"templates/" + assets.TemplateTail + ".html",
	"templates/" + assets.TemplateLayout + ".html",
}

// runBuild resolves the configuration, writes the site and, unless disabled,
// runs the site generator over it.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one source directory, got %d arguments", ErrUsage, len(positional))
	}

	cfg, err := resolveConfig(flags, positional, env)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	defer func() { _ = log.Sync() }()

	transformer, err := newTransformer(cfg, log)
	if err != nil {
		return err
	}

	var opts []note2site.BuilderOption
	opts = append(opts, note2site.WithBuildLogger(log))
	if cfg.Site.Build {
		var genOut io.Writer = env.Stderr
		if flags.common.quiet {
			genOut = io.Discard
		}
		opts = append(opts, note2site.WithSiteGenerator(
			sitegen.New(cfg.Site.Command, cfg.SiteTimeout(), genOut), cfg.Site.Dest))
	}

	builder, err := note2site.NewBuilder(note2site.BuildConfig{
		Source:   cfg.Source.Dir,
		Output:   cfg.Output.Dir,
		Mode:     note2site.Mode(cfg.Source.Mode),
		Manifest: cfg.Output.Manifest,
		Layout:   cfg.Site.Layout,
		Title:    cfg.Site.Title,
		Clean:    cfg.Output.Clean,
	}, transformer, opts...)
	if err != nil {
		return err
	}

	res, buildErr := builder.Build(ctx)
	if res == nil {
		return withHint(buildErr, cfg)
	}

	// The report describes the written sources, so it is kept even when the
	// generator failed afterwards.
	if cfg.Report.Path != "" {
		title := cfg.Site.Title + " style report"
		if err := note2site.WriteReport(cfg.Report.Path, title, res.Usage, res.Stats); err != nil {
			return withHint(err, cfg)
		}
	}

	if buildErr != nil {
		return withHint(buildErr, cfg)
	}

	if !flags.common.quiet {
		printSummary(env.Stdout, cfg, res)
		if res.Stats.AssetFailures > 0 {
			fmt.Fprintf(env.Stderr, "warning: %d image lookups failed, sources left unchanged%s\n",
				res.Stats.AssetFailures, hints.ForLookup())
		}
	}
	return nil
}

// resolveConfig applies defaults, the config file, NOTE2SITE_* variables and
// flags, in increasing priority, then validates the result.
func resolveConfig(flags *buildFlags, positional []string, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg, err := loadEnvConfig(env.Getenv)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(userConfigPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, positional, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Source.Dir == "" {
		return nil, fmt.Errorf("%w: no source directory given%s", ErrUsage, hints.ForSourceNotFound())
	}
	return cfg, nil
}

// mergeFlags applies flags that were set to cfg (CLI wins).
func mergeFlags(flags *buildFlags, positional []string, cfg *config.Config) {
	if len(positional) == 1 {
		cfg.Source.Dir = positional[0]
	}

	strs := []struct {
		value string
		dst   *string
	}{
		{flags.output.dir, &cfg.Output.Dir},
		{flags.output.mode, &cfg.Source.Mode},
		{flags.output.manifest, &cfg.Output.Manifest},
		{flags.output.report, &cfg.Report.Path},
		{flags.site.title, &cfg.Site.Title},
		{flags.site.layout, &cfg.Site.Layout},
		{flags.site.command, &cfg.Site.Command},
		{flags.site.dest, &cfg.Site.Dest},
		{flags.site.timeout, &cfg.Site.Timeout},
		{flags.transform.locale, &cfg.Transform.Locale},
		{flags.lookup.baseURL, &cfg.Lookup.BaseURL},
		{flags.lookup.timeout, &cfg.Lookup.Timeout},
		{flags.assets, &cfg.Assets.BasePath},
		{flags.log.format, &cfg.Log.Format},
	}
	for _, s := range strs {
		if s.value != "" {
			*s.dst = s.value
		}
	}

	if flags.output.clean {
		cfg.Output.Clean = true
	}
	if flags.site.noBuild {
		cfg.Site.Build = false
	}
	if flags.filter.keywords != nil {
		cfg.Filter.SkipTitleKeywords = flags.filter.keywords
	}
	if flags.filter.minChars != minCharsUnset {
		cfg.Filter.MinContentChars = flags.filter.minChars
	}
	if flags.transform.canvas {
		cfg.Transform.Canvas = true
	}
	if flags.transform.noTime {
		cfg.Transform.TimeElement = false
	}
	if flags.lookup.disabled {
		cfg.Lookup.Enabled = false
	}
	if flags.lookup.workers != 0 {
		cfg.Lookup.Workers = flags.lookup.workers
	}
	if flags.lookup.rateLimit != rateLimitUnset {
		cfg.Lookup.RateLimit = flags.lookup.rateLimit
	}

	// --log-level beats the shorthands.
	switch {
	case flags.log.level != "":
		cfg.Log.Level = flags.log.level
	case flags.common.verbose:
		cfg.Log.Level = "debug"
	case flags.common.quiet:
		cfg.Log.Level = "error"
	}
}

// newTransformer builds the page pipeline described by cfg.
func newTransformer(cfg *config.Config, log logger.Logger) (*note2site.Transformer, error) {
	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w%s", err, hints.ForAssetNotFound(customAssetFiles))
	}
	bundle, err := assets.LoadBundle(loader)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w%s", err, hints.ForAssetNotFound(customAssetFiles))
	}

	opts := []note2site.Option{
		note2site.WithSkipTitleKeywords(cfg.Filter.SkipTitleKeywords...),
		note2site.WithMinContentChars(cfg.Filter.MinContentChars),
		note2site.WithLocale(cfg.Transform.Locale),
		note2site.WithMaxDistinctFontSizes(cfg.Transform.MaxDistinctFontSizes),
		note2site.WithNumbering(pipeline.NumberingOptions{
			Level2Threshold: cfg.Transform.Level2Threshold,
			SkipMarker:      cfg.Transform.SkipMarker,
		}),
		note2site.WithSmallImageMax(cfg.Transform.SmallImageMax),
		note2site.WithTimeElement(cfg.Transform.TimeElement),
		note2site.WithCanvas(cfg.Transform.Canvas),
		note2site.WithBundle(bundle),
		note2site.WithLogger(log),
	}

	if cfg.Lookup.Enabled {
		client, err := lookup.NewClient(lookup.Config{
			BaseURL:   cfg.Lookup.BaseURL,
			PathKey:   cfg.Lookup.PathKey,
			Timeout:   cfg.LookupTimeout(),
			RateLimit: cfg.Lookup.RateLimit,
		})
		if err != nil {
			return nil, err
		}
		opts = append(opts, note2site.WithResolver(lookup.NewCache(client), client.BaseURL(), cfg.Lookup.Workers))
	}

	return note2site.NewTransformer(opts...), nil
}

// withHint appends the hint matching err, if any.
func withHint(err error, cfg *config.Config) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, note2site.ErrSiteBuild):
		return fmt.Errorf("%w%s", err, hints.ForSiteBuild(cfg.Site.Command))
	case errors.Is(err, note2site.ErrSourceNotFound):
		return fmt.Errorf("%w%s", err, hints.ForSourceNotFound())
	case errors.Is(err, note2site.ErrWriteOutput):
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	default:
		return err
	}
}

// userConfigPaths returns where a config name is looked up outside the
// working directory.
func userConfigPaths(name string) []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "note2site", name+".yaml")}
}

func printSummary(w io.Writer, cfg *config.Config, res *note2site.BuildResult) {
	s := res.Stats
	fmt.Fprintf(w, "Wrote %d pages in %d sections to %s (%d skipped, %d failed)\n",
		s.Pages, s.Sections, cfg.Output.Dir, s.Skipped, s.Failed)
	if s.Flagged > 0 {
		fmt.Fprintf(w, "%d pages use too many font sizes (body.%s)\n", s.Flagged, pipeline.ClassTooManySizes)
	}
	if cfg.Site.Build {
		dest := cfg.Site.Dest
		if dest == "" {
			dest = filepath.Join(cfg.Output.Dir, "_site")
		}
		fmt.Fprintf(w, "Site built in %s\n", dest)
	}
	if cfg.Report.Path != "" {
		fmt.Fprintf(w, "Style report: %s\n", cfg.Report.Path)
	}
}
