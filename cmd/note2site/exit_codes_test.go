package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	note2site "github.com/alnah/go-note2site"
	"github.com/alnah/go-note2site/internal/assets"
	"github.com/alnah/go-note2site/internal/config"
	"github.com/alnah/go-note2site/internal/lookup"
	"github.com/alnah/go-note2site/internal/sitegen"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Generator errors (exit 4)
		{"site build", note2site.ErrSiteBuild, ExitSiteBuild},
		{"generator", sitegen.ErrBuild, ExitSiteBuild},
		{"wrapped site build", fmt.Errorf("%w: %w", note2site.ErrSiteBuild, sitegen.ErrBuild), ExitSiteBuild},

		// I/O errors (exit 3)
		{"source not found", note2site.ErrSourceNotFound, ExitIO},
		{"write output", note2site.ErrWriteOutput, ExitIO},
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"wrapped source not found", fmt.Errorf("discover: %w", note2site.ErrSourceNotFound), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"invalid env", ErrInvalidEnv, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"invalid mode", note2site.ErrInvalidMode, ExitUsage},
		{"invalid layout", note2site.ErrInvalidLayout, ExitUsage},
		{"invalid manifest", note2site.ErrInvalidManifest, ExitUsage},
		{"empty output", note2site.ErrEmptyOutput, ExitUsage},
		{"unsafe clean", note2site.ErrUnsafeClean, ExitUsage},
		{"invalid asset path", assets.ErrInvalidBasePath, ExitUsage},
		{"invalid asset name", assets.ErrInvalidAssetName, ExitUsage},
		{"path traversal", assets.ErrPathTraversal, ExitUsage},
		{"lookup config", lookup.ErrInvalidConfig, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something went wrong"), ExitGeneral},
		{"transform", note2site.ErrTransform, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard codes = %d/%d/%d, want 0/1/2", ExitSuccess, ExitGeneral, ExitUsage)
	}

	seen := map[int]bool{}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitSiteBuild} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
		if seen[code] {
			t.Errorf("exit code %d used twice", code)
		}
		seen[code] = true
	}
}
