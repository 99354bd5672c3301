package note2site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-note2site/internal/lookup"
)

const testBaseURL = "https://files.example.com/persist.php"

// longText has enough visible runes to pass the default content minimum.
var longText = strings.Repeat("筆記內容", 30)

// exportedPage builds a page shaped like the notebook export: a wrapper div
// holding the envelope, whose children are topic, date and content blocks.
func exportedPage(title string, blocks ...string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="en-US"><head>`)
	if title != "" {
		b.WriteString("<title>" + title + "</title>")
	}
	b.WriteString("</head><body><div><div>")
	b.WriteString("<div><p>" + title + "</p></div>")
	b.WriteString("<div><p>Friday, April 11, 2025</p><p>10:53 PM</p></div>")
	for _, blk := range blocks {
		b.WriteString("<div>" + blk + "</div>")
	}
	b.WriteString("</div></div></body></html>")
	return b.String()
}

// mapResolver answers from a fixed table.
type mapResolver struct {
	mu     sync.Mutex
	hashes map[string]string
	calls  int
}

func (m *mapResolver) Resolve(_ context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if h, ok := m.hashes[name]; ok {
		return h, nil
	}
	return "", lookup.ErrStatus
}

// writeTree creates files under root from a path → content map.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
}
