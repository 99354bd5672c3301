package note2site

import (
	"github.com/alnah/go-note2site/internal/dateutil"
	"github.com/alnah/go-note2site/internal/pipeline"
)

// RawPage is one exported page as read from disk.
type RawPage struct {
	Title string // File name without .html
	Body  string // Raw HTML
	Path  string // Source file, for logging
}

// PageInfo is the manifest's description of a page.
type PageInfo struct {
	Title string `json:"title" yaml:"title"`
}

// Page is a surviving page in the manifest. URL is the site path of its
// written file.
type Page struct {
	PageInfo PageInfo `json:"pageInfo" yaml:"pageInfo"`
	PageBody string   `json:"pageBody" yaml:"pageBody"`
	URL      string   `json:"url" yaml:"url"`
}

// SectionInfo names a section.
type SectionInfo struct {
	DisplayName string `json:"displayName" yaml:"displayName"`
}

// Section groups pages found under one source directory.
type Section struct {
	SectionInfo  SectionInfo `json:"sectionInfo" yaml:"sectionInfo"`
	SectionPages []Page      `json:"sectionPages" yaml:"sectionPages"`
}

// Manifest is the ordered section list written to _data/.
type Manifest []Section

// PageCount returns the number of pages across all sections.
func (m Manifest) PageCount() int {
	n := 0
	for _, s := range m {
		n += len(s.SectionPages)
	}
	return n
}

// StyleUsage is the set of font sizes and colors seen on a page or a corpus.
type StyleUsage = pipeline.StyleUsage

// SkipReason tells why a page was dropped.
type SkipReason string

// Skip reasons.
const (
	SkipTitleKeyword SkipReason = "title-keyword"
	SkipTooShort     SkipReason = "too-short"
)

// Result is the outcome of transforming one page.
type Result struct {
	HTML    string // Serialized document; empty when Skipped
	Skipped bool
	Reason  SkipReason
	Detail  string // Matched keyword or rune count

	Title   string         // <title> after the fallback, may be empty
	Stamp   dateutil.Stamp // Publication stamp
	Usage   *StyleUsage    // This page's sizes and colors
	Flagged bool           // Too many distinct font sizes
	Assets  pipeline.AssetReport
}

// BuildStats summarizes a Build run.
type BuildStats struct {
	Sections       int // Sections in the manifest
	Pages          int // Pages written
	Skipped        int // Pages dropped by a skip check
	Failed         int // Pages that could not be read or transformed
	Flagged        int // Pages with too many font sizes
	AssetsResolved int
	AssetFailures  int
}
