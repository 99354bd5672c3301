package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestPrintUsage - Main usage lists every command
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	out := buf.String()

	for _, want := range []string{"Usage: note2site", "build", "doctor", "version", "help"} {
		if !strings.Contains(out, want) {
			t.Errorf("usage missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintBuildUsage - Every flag and variable is documented
// ---------------------------------------------------------------------------

func TestPrintBuildUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printBuildUsage(&buf)
	out := buf.String()

	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &buildFlags{}
	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addSiteFlags(fs, &f.site)
	addFilterFlags(fs, &f.filter)
	addTransformFlags(fs, &f.transform)
	addLookupFlags(fs, &f.lookup)
	addLogFlags(fs, &f.log)

	fs.VisitAll(func(fl *flag.Flag) {
		if !strings.Contains(out, "--"+fl.Name) {
			t.Errorf("build usage does not document --%s", fl.Name)
		}
		if fl.Shorthand != "" && !strings.Contains(out, "-"+fl.Shorthand+", --"+fl.Name) {
			t.Errorf("build usage does not document -%s for --%s", fl.Shorthand, fl.Name)
		}
	})
	if !strings.Contains(out, "--assets") {
		t.Error("build usage does not document --assets")
	}

	for name := range knownEnvVars {
		if name == "NOTE2SITE_CONTAINER" {
			continue
		}
		if !strings.Contains(out, name) {
			t.Errorf("build usage does not list %s", name)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Help command routing
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows main usage",
			wantInStdout: []string{"Usage: note2site", "Commands:"},
		},
		{
			name:         "build shows build help",
			args:         []string{"build"},
			wantInStdout: []string{"Usage: note2site build", "Image lookup:", "Environment:"},
		},
		{
			name:         "doctor shows doctor help",
			args:         []string{"doctor"},
			wantInStdout: []string{"Usage: note2site doctor"},
		},
		{
			name:         "version shows version help",
			args:         []string{"version"},
			wantInStdout: []string{"Usage: note2site version"},
		},
		{
			name:         "help shows help help",
			args:         []string{"help"},
			wantInStdout: []string{"Usage: note2site help"},
		},
		{
			name:         "unknown command shows error",
			args:         []string{"publish"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: publish", "Commands:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(nil)
			if code := runHelp(tt.args, env); code != tt.wantCode {
				t.Errorf("runHelp() = %d, want %d", code, tt.wantCode)
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout missing %q", want)
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr missing %q", want)
				}
			}
		})
	}
}
