package main

import (
	"errors"
	"os"

	note2site "github.com/alnah/go-note2site"
	"github.com/alnah/go-note2site/internal/assets"
	"github.com/alnah/go-note2site/internal/config"
	"github.com/alnah/go-note2site/internal/lookup"
	"github.com/alnah/go-note2site/internal/sitegen"
)

// Exit codes for the note2site CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Site written (and built)
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or environment
	ExitIO        = 3 // Source missing, output not writable
	ExitSiteBuild = 4 // Site generator failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, note2site.ErrSiteBuild) ||
		errors.Is(err, sitegen.ErrBuild) {
		return ExitSiteBuild
	}

	if errors.Is(err, note2site.ErrSourceNotFound) ||
		errors.Is(err, note2site.ErrWriteOutput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, note2site.ErrInvalidMode) ||
		errors.Is(err, note2site.ErrInvalidLayout) ||
		errors.Is(err, note2site.ErrInvalidManifest) ||
		errors.Is(err, note2site.ErrEmptyOutput) ||
		errors.Is(err, note2site.ErrUnsafeClean) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, lookup.ErrInvalidConfig) {
		return ExitUsage
	}

	return ExitGeneral
}
