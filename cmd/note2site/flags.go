package main

import (
	flag "github.com/spf13/pflag"
)

// Sentinels detect numeric flags that were not given, since 0 is a valid
// value for each of them.
const (
	minCharsUnset  = -1
	rateLimitUnset = -1.0
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds site tree flags.
type outputFlags struct {
	dir      string
	mode     string
	manifest string
	clean    bool
	report   string
}

// siteFlags holds scaffolding and generator flags.
type siteFlags struct {
	title   string
	layout  string
	noBuild bool
	command string
	dest    string
	timeout string
}

// filterFlags holds page filter flags.
type filterFlags struct {
	keywords []string
	minChars int
}

// transformFlags holds page pipeline flags.
type transformFlags struct {
	locale string
	canvas bool
	noTime bool
}

// lookupFlags holds asset lookup service flags.
type lookupFlags struct {
	disabled  bool
	baseURL   string
	timeout   string
	workers   int
	rateLimit float64
}

// logFlags holds structured logging flags.
type logFlags struct {
	level  string
	format string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common    commonFlags
	output    outputFlags
	site      siteFlags
	filter    filterFlags
	transform transformFlags
	lookup    lookupFlags
	assets    string
	log       logFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every page (debug level)")
}

func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "site source directory")
	fs.StringVarP(&f.mode, "mode", "m", "", "section layout: flat, nested")
	fs.StringVar(&f.manifest, "manifest", "", "manifest file name under _data/ (.json, .yml)")
	fs.BoolVar(&f.clean, "clean", false, "remove the output directory first")
	fs.StringVar(&f.report, "report", "", "write the style report to this file (.html or .md)")
}

func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.title, "title", "", "site title in _config.yml")
	fs.StringVar(&f.layout, "layout", "", "layout name in page front matter")
	fs.BoolVar(&f.noBuild, "no-build", false, "only write the site sources")
	fs.StringVar(&f.command, "generator", "", "site generator executable")
	fs.StringVar(&f.dest, "dest", "", "generator destination (default: <output>/_site)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "generator timeout (e.g., 90s, 5m)")
}

func addFilterFlags(fs *flag.FlagSet, f *filterFlags) {
	fs.StringSliceVar(&f.keywords, "skip-keyword", nil, "skip pages whose title contains this (repeatable)")
	fs.IntVar(&f.minChars, "min-chars", minCharsUnset, "minimum visible characters per page")
}

func addTransformFlags(fs *flag.FlagSet, f *transformFlags) {
	fs.StringVar(&f.locale, "locale", "", "language tag replacing English ones")
	fs.BoolVar(&f.canvas, "canvas", false, "add the background canvas element")
	fs.BoolVar(&f.noTime, "no-time", false, "do not prepend a <time> element")
}

func addLookupFlags(fs *flag.FlagSet, f *lookupFlags) {
	fs.BoolVar(&f.disabled, "no-lookup", false, "keep image sources as exported")
	fs.StringVar(&f.baseURL, "lookup-url", "", "lookup service endpoint")
	fs.StringVar(&f.timeout, "lookup-timeout", "", "per-request lookup timeout (e.g., 10s)")
	fs.IntVar(&f.workers, "lookup-workers", 0, "concurrent lookups per page (1-32)")
	fs.Float64Var(&f.rateLimit, "rate-limit", rateLimitUnset, "lookup requests per second (0 = unlimited)")
}

func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.format, "log-format", "", "log format: console, json")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, env *Environment) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &buildFlags{}

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addSiteFlags(fs, &f.site)
	addFilterFlags(fs, &f.filter)
	addTransformFlags(fs, &f.transform)
	addLookupFlags(fs, &f.lookup)
	fs.StringVar(&f.assets, "assets", "", "directory overriding the embedded stylesheets and fragments")
	addLogFlags(fs, &f.log)

	fs.Usage = func() { printBuildUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
