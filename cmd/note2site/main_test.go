package main

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{"note2site"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: note2site"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"note2site", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"note2site dev"},
		},
		{
			name:         "version flag exits 0",
			args:         []string{"note2site", "--version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"note2site"},
		},
		{
			name:         "help command lists commands",
			args:         []string{"note2site", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: note2site", "Commands:", "build"},
		},
		{
			name:         "help build shows build help",
			args:         []string{"note2site", "help", "build"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: note2site build", "--no-lookup", "NOTE2SITE_SOURCE_DIR"},
		},
		{
			name:         "help for unknown command",
			args:         []string{"note2site", "help", "deploy"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: deploy"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"note2site", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "build without source",
			args:         []string{"note2site", "build", "--no-build"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"no source directory", "hint:"},
		},
		{
			name:         "build with bad flag",
			args:         []string{"note2site", "build", "--frobnicate"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown flag"},
		},
		{
			name:         "build help exits 0",
			args:         []string{"note2site", "build", "--help"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"Usage: note2site build"},
		},
		{
			name:         "missing source exits with ExitIO",
			args:         []string{"note2site", "build", "--no-build", "--no-lookup", "/nonexistent/export/root"},
			wantCode:     ExitIO,
			wantInStderr: []string{"source directory not found", "hint:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(nil)
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr)
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout)
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr)
				}
			}
		})
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"note2site", "build", "-v"}, true},
		{[]string{"note2site", "build", "--verbose", "src"}, true},
		{[]string{"note2site", "build", "src"}, false},
		{[]string{"note2site", "build", "--", "-v"}, false},
	}
	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
