package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

// newTestEnv returns an Environment reading vars instead of the process
// environment, with captured output.
func newTestEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2025, 4, 11, 22, 53, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			sort.Strings(out)
			return out
		},
	}
	return env, &stdout, &stderr
}

// exportPage builds a page shaped like the notebook export.
func exportPage(title string, content ...string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="en-US"><head><title>` + title + `</title></head><body><div><div>`)
	b.WriteString("<div><p>" + title + "</p></div>")
	b.WriteString("<div><p>April 11, 2025</p><p>10:53 PM</p></div>")
	for _, c := range content {
		b.WriteString("<div>" + c + "</div>")
	}
	b.WriteString("</div></div></body></html>")
	return b.String()
}

var longText = strings.Repeat("筆記內容", 30)

// writeExport creates a flat export with one section of two pages and
// returns its root.
func writeExport(t *testing.T, extra ...string) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "週報")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	pages := map[string]string{
		"第一週.html": exportPage("第一週", append([]string{"<p>" + longText + "</p>"}, extra...)...),
		"第二週.html": exportPage("第二週", `<p style="font-size:14pt;color:#1F1F1F">`+longText+"</p>"),
	}
	for name, body := range pages {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return root
}
