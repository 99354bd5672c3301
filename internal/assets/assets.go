package assets

import "fmt"

// Asset names shared by every loader.
const (
	StyleFonts     = "fonts"
	StyleIndex     = "index"
	TemplateHead   = "head"
	TemplateTail   = "tail"
	TemplateLayout = "layout"
)

// Bundle holds every asset a run needs, loaded once up front.
type Bundle struct {
	FontsCSS string
	IndexCSS string
	Head     string
	Tail     string
	Layout   string
}

// LoadBundle loads all assets through loader.
func LoadBundle(loader AssetLoader) (*Bundle, error) {
	var b Bundle
	var err error

	styles := []struct {
		name string
		dst  *string
	}{
		{StyleFonts, &b.FontsCSS},
		{StyleIndex, &b.IndexCSS},
	}
	for _, s := range styles {
		if *s.dst, err = loader.LoadStyle(s.name); err != nil {
			return nil, fmt.Errorf("loading style %s: %w", s.name, err)
		}
	}

	tmpls := []struct {
		name string
		dst  *string
	}{
		{TemplateHead, &b.Head},
		{TemplateTail, &b.Tail},
		{TemplateLayout, &b.Layout},
	}
	for _, t := range tmpls {
		if *t.dst, err = loader.LoadTemplate(t.name); err != nil {
			return nil, fmt.Errorf("loading template %s: %w", t.name, err)
		}
	}

	return &b, nil
}

// DefaultBundle returns the embedded assets.
func DefaultBundle() *Bundle {
	b, err := LoadBundle(NewEmbeddedLoader())
	if err != nil {
		// Embedded files are compiled in; a failure is a packaging bug.
		panic(fmt.Sprintf("assets: embedded bundle incomplete: %v", err))
	}
	return b
}
