package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/alnah/go-note2site/internal/fileutil"
	"github.com/alnah/go-note2site/internal/logger"
	"github.com/alnah/go-note2site/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxTitleLength   = 200  // Site title
	MaxKeywordLength = 100  // One skip keyword
	MaxURLLength     = 2048 // Browser limit
	MaxLayoutLength  = 64   // Layout file name
	MaxMarkerLength  = 50   // List skip marker
)

// Worker bounds for asset lookups within one page.
const (
	MinWorkers = 1
	MaxWorkers = 32
)

// Aggregation modes.
const (
	ModeFlat   = "flat"
	ModeNested = "nested"
)

// Modes lists the accepted source.mode values.
var Modes = []string{ModeFlat, ModeNested}

// ManifestExtensions lists the accepted output.manifest extensions.
var ManifestExtensions = []string{".json", ".yml", ".yaml"}

// Config holds all configuration for a site build.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Output    OutputConfig    `yaml:"output"`
	Site      SiteConfig      `yaml:"site"`
	Filter    FilterConfig    `yaml:"filter"`
	Transform TransformConfig `yaml:"transform"`
	Lookup    LookupConfig    `yaml:"lookup"`
	Assets    AssetsConfig    `yaml:"assets"`
	Log       LogConfig       `yaml:"log"`
	Report    ReportConfig    `yaml:"report"`
}

// SourceConfig defines where exported pages are read from.
type SourceConfig struct {
	Dir  string `yaml:"dir"`  // Export root (empty = must specify)
	Mode string `yaml:"mode"` // "flat" or "nested" (default: "flat")
}

// OutputConfig defines the generated site tree.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // Site source directory (default: "jekyll")
	Clean    bool   `yaml:"clean"`    // Remove Dir before writing
	Manifest string `yaml:"manifest"` // File under _data/ (default: "sections.json")
}

// SiteConfig defines site scaffolding and the generator run.
type SiteConfig struct {
	Title   string `yaml:"title"`   // _config.yml title
	Layout  string `yaml:"layout"`  // Layout name for page front matter (default: "default")
	Build   bool   `yaml:"build"`   // Run the site generator after writing
	Command string `yaml:"command"` // Generator executable (default: "jekyll")
	Dest    string `yaml:"dest"`    // Generator destination (empty = <output.dir>/_site)
	Timeout string `yaml:"timeout"` // Generator timeout, Go duration (default: "5m")
}

// FilterConfig defines which pages are dropped.
type FilterConfig struct {
	SkipTitleKeywords []string `yaml:"skipTitleKeywords"`
	MinContentChars   int      `yaml:"minContentChars"` // Visible runes, whitespace excluded (default: 100)
}

// TransformConfig tunes the page pipeline.
type TransformConfig struct {
	Locale               string `yaml:"locale"`               // Replacement language tag (default: "zh-TW")
	MaxDistinctFontSizes int    `yaml:"maxDistinctFontSizes"` // Above this, the page is flagged (default: 6)
	Level2Threshold      int    `yaml:"level2Threshold"`      // Item length that enables sublist numbering (default: 800)
	SkipMarker           string `yaml:"skipMarker"`           // Hides a numbered item (default: "編輯格式")
	SmallImageMax        int    `yaml:"smallImageMax"`        // Images smaller in both dimensions are hidden (default: 20)
	TimeElement          bool   `yaml:"timeElement"`          // Prepend <time> to body (default: true)
	Canvas               bool   `yaml:"canvas"`               // Prepend the background canvas
}

// LookupConfig defines the asset lookup service.
type LookupConfig struct {
	Enabled   bool    `yaml:"enabled"`
	BaseURL   string  `yaml:"baseURL"`
	PathKey   string  `yaml:"pathKey"`
	Timeout   string  `yaml:"timeout"`   // Per request, Go duration (default: "10s")
	RateLimit float64 `yaml:"rateLimit"` // Requests per second (0 = unlimited)
	Workers   int     `yaml:"workers"`   // Concurrent lookups per page (default: 4)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig mirrors logger.Config.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ReportConfig defines the corpus style report.
type ReportConfig struct {
	Path string `yaml:"path"` // Empty = no report
}

// DefaultSkipTitleKeywords are the title fragments of template and scratch
// notebooks.
var DefaultSkipTitleKeywords = []string{"圖庫資源", "模板試作", "工程組", "示範"}

// DefaultConfig returns a working configuration.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{Mode: ModeFlat},
		Output: OutputConfig{Dir: "jekyll", Manifest: "sections.json"},
		Site: SiteConfig{
			Title:   "Notes",
			Layout:  "default",
			Build:   true,
			Command: "jekyll",
			Timeout: "5m",
		},
		Filter: FilterConfig{
			SkipTitleKeywords: slices.Clone(DefaultSkipTitleKeywords),
			MinContentChars:   100,
		},
		Transform: TransformConfig{
			Locale:               "zh-TW",
			MaxDistinctFontSizes: 6,
			Level2Threshold:      800,
			SkipMarker:           "編輯格式",
			SmallImageMax:        20,
			TimeElement:          true,
		},
		Lookup: LookupConfig{
			Enabled: true,
			BaseURL: "https://diagmindtw.com/sql_read_api/persist.php",
			PathKey: "ZGlzdFxwYWdlcw",
			Timeout: "10s",
			Workers: 4,
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Validate checks enums, bounds and field lengths.
// Called automatically by LoadConfig, but available for callers that build
// a Config by hand.
func (c *Config) Validate() error {
	if c.Source.Mode != "" && !slices.Contains(Modes, c.Source.Mode) {
		return fmt.Errorf("%w: source.mode: invalid value %q (must be flat or nested)", ErrInvalidConfig, c.Source.Mode)
	}

	if c.Output.Manifest != "" {
		if strings.ContainsAny(c.Output.Manifest, `/\`) {
			return fmt.Errorf("%w: output.manifest: must be a file name, got %q", ErrInvalidConfig, c.Output.Manifest)
		}
		if !slices.Contains(ManifestExtensions, strings.ToLower(filepath.Ext(c.Output.Manifest))) {
			return fmt.Errorf("%w: output.manifest: extension must be one of %s", ErrInvalidConfig, strings.Join(ManifestExtensions, ", "))
		}
	}

	// Site
	if err := validateFieldLength("site.title", c.Site.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.layout", c.Site.Layout, MaxLayoutLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Site.Layout, `/\.`) {
		return fmt.Errorf("%w: site.layout: must be a bare name, got %q", ErrInvalidConfig, c.Site.Layout)
	}
	if err := validateDuration("site.timeout", c.Site.Timeout); err != nil {
		return err
	}

	// Filter
	for i, kw := range c.Filter.SkipTitleKeywords {
		if err := validateFieldLength(fmt.Sprintf("filter.skipTitleKeywords[%d]", i), kw, MaxKeywordLength); err != nil {
			return err
		}
	}
	if c.Filter.MinContentChars < 0 {
		return fmt.Errorf("%w: filter.minContentChars: must be >= 0, got %d", ErrInvalidConfig, c.Filter.MinContentChars)
	}

	// Transform
	if c.Transform.Locale != "" {
		if _, err := language.Parse(c.Transform.Locale); err != nil {
			return fmt.Errorf("%w: transform.locale: %v", ErrInvalidConfig, err)
		}
	}
	if c.Transform.MaxDistinctFontSizes < 0 {
		return fmt.Errorf("%w: transform.maxDistinctFontSizes: must be >= 0, got %d", ErrInvalidConfig, c.Transform.MaxDistinctFontSizes)
	}
	if c.Transform.Level2Threshold < 0 {
		return fmt.Errorf("%w: transform.level2Threshold: must be >= 0, got %d", ErrInvalidConfig, c.Transform.Level2Threshold)
	}
	if c.Transform.SmallImageMax < 0 {
		return fmt.Errorf("%w: transform.smallImageMax: must be >= 0, got %d", ErrInvalidConfig, c.Transform.SmallImageMax)
	}
	if err := validateFieldLength("transform.skipMarker", c.Transform.SkipMarker, MaxMarkerLength); err != nil {
		return err
	}

	// Lookup
	if err := validateFieldLength("lookup.baseURL", c.Lookup.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if c.Lookup.Enabled {
		u, err := url.Parse(c.Lookup.BaseURL)
		if err != nil || !fileutil.IsURL(c.Lookup.BaseURL) || u.Host == "" {
			return fmt.Errorf("%w: lookup.baseURL: must be an absolute http(s) URL, got %q", ErrInvalidConfig, c.Lookup.BaseURL)
		}
		if c.Lookup.PathKey == "" {
			return fmt.Errorf("%w: lookup.pathKey: required when lookup is enabled", ErrInvalidConfig)
		}
	}
	if err := validateDuration("lookup.timeout", c.Lookup.Timeout); err != nil {
		return err
	}
	if c.Lookup.RateLimit < 0 {
		return fmt.Errorf("%w: lookup.rateLimit: must be >= 0, got %.2f", ErrInvalidConfig, c.Lookup.RateLimit)
	}
	if c.Lookup.Workers != 0 && (c.Lookup.Workers < MinWorkers || c.Lookup.Workers > MaxWorkers) {
		return fmt.Errorf("%w: lookup.workers: must be between %d and %d, got %d", ErrInvalidConfig, MinWorkers, MaxWorkers, c.Lookup.Workers)
	}

	// Log
	if c.Log.Level != "" && !slices.Contains(logger.Levels, c.Log.Level) {
		return fmt.Errorf("%w: log.level: invalid value %q (must be one of %s)", ErrInvalidConfig, c.Log.Level, strings.Join(logger.Levels, ", "))
	}
	if c.Log.Format != "" && !slices.Contains(logger.Formats, c.Log.Format) {
		return fmt.Errorf("%w: log.format: invalid value %q (must be one of %s)", ErrInvalidConfig, c.Log.Format, strings.Join(logger.Formats, ", "))
	}

	return nil
}

// SiteTimeout returns site.timeout as a duration, zero when unset.
func (c *Config) SiteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Site.Timeout)
	return d
}

// LookupTimeout returns lookup.timeout as a duration, zero when unset.
func (c *Config) LookupTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Lookup.Timeout)
	return d
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateDuration accepts an empty value or a positive Go duration.
func validateDuration(fieldName, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fmt.Errorf("%w: %s: must be a positive duration like \"10s\", got %q", ErrInvalidConfig, fieldName, value)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/note2site/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "note2site", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
