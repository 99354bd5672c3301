package note2site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-note2site/internal/fileutil"
)

// Mode selects how source directories map to sections.
type Mode string

// Aggregation modes.
const (
	// ModeFlat makes each immediate subdirectory of the source root a
	// section holding the pages directly inside it.
	ModeFlat Mode = "flat"
	// ModeNested makes every directory holding pages a section, named by its
	// path relative to the root.
	ModeNested Mode = "nested"
)

// pageExt is the extension of exported page files.
const pageExt = ".html"

// SourceSection is a directory of page files found by Discover.
type SourceSection struct {
	Name  string   // Display name
	Dir   string   // Directory path
	Rel   string   // Slash-separated path relative to the root ("" for the root)
	Files []string // Page file names, lexical order
}

// Discover lists the sections under root. Directories equal to or beneath
// any path in exclude are not visited.
func Discover(root string, mode Mode, exclude ...string) ([]SourceSection, error) {
	if !fileutil.DirExists(root) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, root)
	}

	switch mode {
	case ModeFlat, "":
		return discoverFlat(root, exclude)
	case ModeNested:
		var out []SourceSection
		name := filepath.Base(filepath.Clean(root))
		if err := discoverNested(root, "", name, exclude, &out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q (must be flat or nested)", ErrInvalidMode, mode)
	}
}

func discoverFlat(root string, exclude []string) ([]SourceSection, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	var out []SourceSection
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if excluded(dir, exclude) {
			continue
		}
		files, err := pageFiles(dir)
		if err != nil {
			return nil, err
		}
		out = append(out, SourceSection{Name: e.Name(), Dir: dir, Rel: e.Name(), Files: files})
	}
	return out, nil
}

// discoverNested appends dir's own section before descending, so a
// directory's pages always precede its subdirectories'.
func discoverNested(dir, rel, name string, exclude []string, out *[]SourceSection) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	var files, subdirs []string
	for _, e := range entries {
		switch {
		case e.IsDir():
			subdirs = append(subdirs, e.Name())
		case isPageFile(e):
			files = append(files, e.Name())
		}
	}

	if len(files) > 0 {
		*out = append(*out, SourceSection{Name: name, Dir: dir, Rel: rel, Files: files})
	}

	for _, sub := range subdirs {
		subDir := filepath.Join(dir, sub)
		if excluded(subDir, exclude) {
			continue
		}
		subRel := sub
		if rel != "" {
			subRel = rel + "/" + sub
		}
		if err := discoverNested(subDir, subRel, subRel, exclude, out); err != nil {
			return err
		}
	}
	return nil
}

func pageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if isPageFile(e) {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// isPageFile accepts regular files ending in .html, any case.
func isPageFile(e os.DirEntry) bool {
	return e.Type().IsRegular() && strings.HasSuffix(strings.ToLower(e.Name()), pageExt)
}

// pageTitle strips the page extension from a file name.
func pageTitle(name string) string {
	return name[:len(name)-len(pageExt)]
}

func excluded(dir string, exclude []string) bool {
	for _, x := range exclude {
		if x != "" && fileutil.IsWithin(dir, x) {
			return true
		}
	}
	return false
}
