package note2site

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-note2site/internal/fileutil"
)

// reportTemplate wraps the rendered report in a complete HTML5 document.
const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>
`

// ReportMarkdown describes the corpus style usage and run counters as GFM.
// Font sizes are listed largest first, colors in lexical order.
func ReportMarkdown(title string, usage *StyleUsage, stats BuildStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Run\n\n")
	b.WriteString("| Counter | Value |\n|---|---:|\n")
	for _, row := range []struct {
		name  string
		value int
	}{
		{"Sections", stats.Sections},
		{"Pages", stats.Pages},
		{"Skipped", stats.Skipped},
		{"Failed", stats.Failed},
		{"Flagged (too many font sizes)", stats.Flagged},
		{"Images resolved", stats.AssetsResolved},
		{"Image lookups failed", stats.AssetFailures},
	} {
		fmt.Fprintf(&b, "| %s | %d |\n", row.name, row.value)
	}

	var sizes, colors []string
	if usage != nil {
		sizes = usage.FontSizes()
		colors = usage.Colors()
	}

	fmt.Fprintf(&b, "\n## Font sizes (%d)\n\n", len(sizes))
	if len(sizes) == 0 {
		b.WriteString("None recorded.\n")
	} else {
		b.WriteString("| Size | Class |\n|---:|---|\n")
		for _, s := range sizes {
			fmt.Fprintf(&b, "| %spt | `oldFontSize-%sPt` |\n", s, s)
		}
	}

	fmt.Fprintf(&b, "\n## Colors (%d)\n\n", len(colors))
	if len(colors) == 0 {
		b.WriteString("None recorded.\n")
	} else {
		b.WriteString("| Color | Class |\n|---|---|\n")
		for _, c := range colors {
			fmt.Fprintf(&b, "| `#%s` | `oldColor-%s` |\n", c, c)
		}
	}

	return b.String()
}

// RenderReport converts the report to a standalone HTML document.
func RenderReport(title string, usage *StyleUsage, stats BuildStats) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithXHTML()),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(ReportMarkdown(title, usage, stats)), &buf); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return fmt.Sprintf(reportTemplate, html.EscapeString(title), buf.String()), nil
}

// WriteReport renders the report to path. A .md path gets the Markdown
// source instead of HTML.
func WriteReport(path, title string, usage *StyleUsage, stats BuildStats) error {
	var content string
	if strings.EqualFold(filepath.Ext(path), ".md") {
		content = ReportMarkdown(title, usage, stats)
	} else {
		var err error
		content, err = RenderReport(title, usage, stats)
		if err != nil {
			return err
		}
	}

	if err := fileutil.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	return nil
}
