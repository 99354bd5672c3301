package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-note2site/internal/config"
)

// ErrInvalidEnv is returned when a NOTE2SITE_* variable cannot be parsed.
var ErrInvalidEnv = errors.New("invalid environment variable")

const envPrefix = "NOTE2SITE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // NOTE2SITE_CONFIG: config file name or path
	SourceDir  string // NOTE2SITE_SOURCE_DIR: export root
	OutputDir  string // NOTE2SITE_OUTPUT_DIR: site source directory
	Mode       string // NOTE2SITE_MODE: flat, nested

	// Tier 2 - Generator and lookup
	Timeout       string // NOTE2SITE_TIMEOUT: generator timeout
	LookupURL     string // NOTE2SITE_LOOKUP_URL: lookup service endpoint
	LookupTimeout string // NOTE2SITE_LOOKUP_TIMEOUT: per-request timeout
	LookupWorkers int    // NOTE2SITE_LOOKUP_WORKERS: concurrent lookups
	NoLookup      bool   // NOTE2SITE_NO_LOOKUP: disable image resolution
	NoBuild       bool   // NOTE2SITE_NO_BUILD: skip the generator

	// Tier 3 - Extended
	AssetsDir string // NOTE2SITE_ASSETS: custom asset directory
	Report    string // NOTE2SITE_REPORT: style report path
	LogLevel  string // NOTE2SITE_LOG_LEVEL: debug, info, warn, error
	LogFormat string // NOTE2SITE_LOG_FORMAT: console, json
}

// knownEnvVars lists valid NOTE2SITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"NOTE2SITE_CONFIG":     true,
	"NOTE2SITE_SOURCE_DIR": true,
	"NOTE2SITE_OUTPUT_DIR": true,
	"NOTE2SITE_MODE":       true,
	// Tier 2 - Generator and lookup
	"NOTE2SITE_TIMEOUT":        true,
	"NOTE2SITE_LOOKUP_URL":     true,
	"NOTE2SITE_LOOKUP_TIMEOUT": true,
	"NOTE2SITE_LOOKUP_WORKERS": true,
	"NOTE2SITE_NO_LOOKUP":      true,
	"NOTE2SITE_NO_BUILD":       true,
	// Tier 3 - Extended
	"NOTE2SITE_ASSETS":     true,
	"NOTE2SITE_REPORT":     true,
	"NOTE2SITE_LOG_LEVEL":  true,
	"NOTE2SITE_LOG_FORMAT": true,
	// Read by the doctor command
	"NOTE2SITE_CONTAINER": true,
}

// loadEnvConfig reads the NOTE2SITE_* variables through getenv.
// Durations are kept as strings and checked with the rest of the config.
func loadEnvConfig(getenv func(string) string) (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath:    getenv("NOTE2SITE_CONFIG"),
		SourceDir:     getenv("NOTE2SITE_SOURCE_DIR"),
		OutputDir:     getenv("NOTE2SITE_OUTPUT_DIR"),
		Mode:          getenv("NOTE2SITE_MODE"),
		Timeout:       getenv("NOTE2SITE_TIMEOUT"),
		LookupURL:     getenv("NOTE2SITE_LOOKUP_URL"),
		LookupTimeout: getenv("NOTE2SITE_LOOKUP_TIMEOUT"),
		AssetsDir:     getenv("NOTE2SITE_ASSETS"),
		Report:        getenv("NOTE2SITE_REPORT"),
		LogLevel:      getenv("NOTE2SITE_LOG_LEVEL"),
		LogFormat:     getenv("NOTE2SITE_LOG_FORMAT"),
	}

	if v := getenv("NOTE2SITE_LOOKUP_WORKERS"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil || w < 1 {
			return nil, fmt.Errorf("%w: NOTE2SITE_LOOKUP_WORKERS=%q must be a positive integer", ErrInvalidEnv, v)
		}
		cfg.LookupWorkers = w
	}

	for _, b := range []struct {
		name string
		dst  *bool
	}{
		{"NOTE2SITE_NO_LOOKUP", &cfg.NoLookup},
		{"NOTE2SITE_NO_BUILD", &cfg.NoBuild},
	} {
		v := getenv(b.name)
		if v == "" {
			continue
		}
		on, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q must be a boolean", ErrInvalidEnv, b.name, v)
		}
		*b.dst = on
	}

	return cfg, nil
}

// warnUnknownEnvVars logs warnings for unrecognized NOTE2SITE_* variables.
// Helps catch typos like NOTE2SITE_OUTPUT instead of NOTE2SITE_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Flags are merged afterwards, giving flags > env > file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	strs := []struct {
		value string
		dst   *string
	}{
		{env.SourceDir, &cfg.Source.Dir},
		{env.Mode, &cfg.Source.Mode},
		{env.OutputDir, &cfg.Output.Dir},
		{env.Timeout, &cfg.Site.Timeout},
		{env.LookupURL, &cfg.Lookup.BaseURL},
		{env.LookupTimeout, &cfg.Lookup.Timeout},
		{env.AssetsDir, &cfg.Assets.BasePath},
		{env.Report, &cfg.Report.Path},
		{env.LogLevel, &cfg.Log.Level},
		{env.LogFormat, &cfg.Log.Format},
	}
	for _, s := range strs {
		if s.value != "" {
			*s.dst = s.value
		}
	}

	if env.LookupWorkers > 0 {
		cfg.Lookup.Workers = env.LookupWorkers
	}
	if env.NoLookup {
		cfg.Lookup.Enabled = false
	}
	if env.NoBuild {
		cfg.Site.Build = false
	}
}
