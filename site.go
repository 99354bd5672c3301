package note2site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-note2site/internal/fileutil"
	"github.com/alnah/go-note2site/internal/yamlutil"
)

// homeTitle is the title of the generated index page.
const homeTitle = "Home"

// siteConfig is the generated _config.yml.
type siteConfig struct {
	Title string `yaml:"title"`
}

// frontMatter returns the YAML front matter block of a page. The title is
// written as a JSON string, which YAML reads as a double-quoted scalar.
func frontMatter(layout, title string) string {
	return "---\nlayout: " + layout + "\ntitle: " + quote(title) + "\n---\n"
}

// quote JSON-encodes s without HTML escaping.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// EncodeManifest serializes m as JSON (two-space indent) or YAML, chosen by
// the extension of name.
func EncodeManifest(m Manifest, name string) ([]byte, error) {
	if m == nil {
		m = Manifest{}
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml":
		return yamlutil.Marshal(m)
	case ".json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return nil, fmt.Errorf("encoding manifest: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidManifest, name)
	}
}

func (b *Builder) writeManifest(m Manifest) (string, error) {
	data, err := EncodeManifest(m, b.cfg.Manifest)
	if err != nil {
		return "", err
	}
	p := filepath.Join(b.cfg.Output, dataDir, b.cfg.Manifest)
	if err := fileutil.WriteFile(p, data); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrWriteOutput, p, err)
	}
	return p, nil
}

// writeScaffolding writes the layout, the home page and _config.yml.
func (b *Builder) writeScaffolding() error {
	dataKey := strings.TrimSuffix(b.cfg.Manifest, filepath.Ext(b.cfg.Manifest))
	home := frontMatter(b.cfg.Layout, homeTitle) + "\n" +
		"{{ site.data." + dataKey + "[0].sectionPages[0].pageBody }}"

	cfg, err := yamlutil.Marshal(siteConfig{Title: b.cfg.Title})
	if err != nil {
		return fmt.Errorf("encoding site config: %w", err)
	}

	files := []struct {
		rel     string
		content []byte
	}{
		{rel: filepath.Join(layoutsDir, b.cfg.Layout+pageExt), content: []byte(b.transformer.bundle.Layout)},
		{rel: "index.html", content: []byte(home)},
		{rel: "_config.yml", content: cfg},
	}

	for _, f := range files {
		p := filepath.Join(b.cfg.Output, f.rel)
		if err := fileutil.WriteFile(p, f.content); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteOutput, p, err)
		}
	}
	return nil
}
