package note2site

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-note2site/internal/pipeline"
)

func sampleUsage() *StyleUsage {
	u := pipeline.NewStyleUsage()
	for _, s := range []string{"10.5", "24", "9"} {
		u.AddFontSize(s)
	}
	u.AddColor("ff0000")
	u.AddColor("1f1f1f")
	return u
}

// ---------------------------------------------------------------------------
// TestReportMarkdown - Tables and empty sets
// ---------------------------------------------------------------------------

func TestReportMarkdown(t *testing.T) {
	t.Parallel()

	stats := BuildStats{Sections: 2, Pages: 5, Skipped: 1, AssetFailures: 3}

	t.Run("usage listed in order", func(t *testing.T) {
		t.Parallel()

		md := ReportMarkdown("Style report", sampleUsage(), stats)

		for _, want := range []string{
			"# Style report\n",
			"| Pages | 5 |",
			"| Image lookups failed | 3 |",
			"## Font sizes (3)",
			"| 24pt | `oldFontSize-24Pt` |",
			"| `#1f1f1f` | `oldColor-1f1f1f` |",
		} {
			if !strings.Contains(md, want) {
				t.Errorf("report missing %q", want)
			}
		}
		if strings.Index(md, "| 24pt") > strings.Index(md, "| 10.5pt") ||
			strings.Index(md, "| 10.5pt") > strings.Index(md, "| 9pt") {
			t.Error("font sizes not largest first")
		}
		if strings.Index(md, "#1f1f1f") > strings.Index(md, "#ff0000") {
			t.Error("colors not in lexical order")
		}
	})

	t.Run("nil usage", func(t *testing.T) {
		t.Parallel()

		md := ReportMarkdown("r", nil, BuildStats{})
		if strings.Count(md, "None recorded.") != 2 {
			t.Errorf("empty usage should say so twice:\n%s", md)
		}
	})
}

func TestRenderReport(t *testing.T) {
	t.Parallel()

	out, err := RenderReport("Notes <draft>", sampleUsage(), BuildStats{Pages: 1})
	if err != nil {
		t.Fatalf("RenderReport() error: %v", err)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Notes &lt;draft&gt;</title>",
		"<table>",
		"<code>oldColor-ff0000</code>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderReport() missing %q", want)
		}
	}
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name     string
		file     string
		contains string
	}{
		{name: "html", file: "report.html", contains: "<table>"},
		{name: "markdown", file: "reports/report.MD", contains: "| Size | Class |"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := filepath.Join(dir, tt.file)
			if err := WriteReport(p, "r", sampleUsage(), BuildStats{}); err != nil {
				t.Fatalf("WriteReport() error: %v", err)
			}
			data, err := os.ReadFile(p) // #nosec G304 -- test path
			if err != nil {
				t.Fatalf("reading report: %v", err)
			}
			if !strings.Contains(string(data), tt.contains) {
				t.Errorf("report missing %q", tt.contains)
			}
		})
	}

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		if err := WriteReport("", "r", nil, BuildStats{}); !errors.Is(err, ErrWriteOutput) {
			t.Errorf("WriteReport(\"\") error = %v, want ErrWriteOutput", err)
		}
	})
}
