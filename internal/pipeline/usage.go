package pipeline

import (
	"slices"
	"sort"
	"strconv"
	"sync"
)

// StyleUsage records the font sizes (raw point values as written) and colors
// (6-digit lowercase hex, no '#') seen on a page.
type StyleUsage struct {
	fontSizes map[string]struct{}
	colors    map[string]struct{}
}

// NewStyleUsage returns an empty usage set.
func NewStyleUsage() *StyleUsage {
	return &StyleUsage{
		fontSizes: make(map[string]struct{}),
		colors:    make(map[string]struct{}),
	}
}

// AddFontSize records a raw point value such as "10.5".
func (u *StyleUsage) AddFontSize(raw string) {
	u.fontSizes[raw] = struct{}{}
}

// AddColor records a normalized hex color such as "1f1f1f".
func (u *StyleUsage) AddColor(hex string) {
	u.colors[hex] = struct{}{}
}

// FontSizes returns the recorded sizes, largest first. Values that compare
// equal numerically are ordered by their raw text.
func (u *StyleUsage) FontSizes() []string {
	out := make([]string, 0, len(u.fontSizes))
	for s := range u.fontSizes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.ParseFloat(out[i], 64)
		b, _ := strconv.ParseFloat(out[j], 64)
		if a != b {
			return a > b
		}
		return out[i] < out[j]
	})
	return out
}

// Colors returns the recorded colors in lexical order.
func (u *StyleUsage) Colors() []string {
	out := make([]string, 0, len(u.colors))
	for c := range u.colors {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Empty reports whether nothing was recorded.
func (u *StyleUsage) Empty() bool {
	return len(u.fontSizes) == 0 && len(u.colors) == 0
}

// CorpusUsage accumulates page usage across a run. It starts empty, is safe
// for concurrent Merge calls, and is read once at the end of the run.
type CorpusUsage struct {
	mu    sync.Mutex
	usage *StyleUsage
}

// NewCorpusUsage returns an empty accumulator.
func NewCorpusUsage() *CorpusUsage {
	return &CorpusUsage{usage: NewStyleUsage()}
}

// Merge adds every entry of page.
func (c *CorpusUsage) Merge(page *StyleUsage) {
	if page == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for s := range page.fontSizes {
		c.usage.fontSizes[s] = struct{}{}
	}
	for col := range page.colors {
		c.usage.colors[col] = struct{}{}
	}
}

// Snapshot returns a copy of the accumulated usage.
func (c *CorpusUsage) Snapshot() *StyleUsage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := NewStyleUsage()
	for s := range c.usage.fontSizes {
		out.fontSizes[s] = struct{}{}
	}
	for col := range c.usage.colors {
		out.colors[col] = struct{}{}
	}
	return out
}
