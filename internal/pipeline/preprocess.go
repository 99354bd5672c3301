package pipeline

import "regexp"

// DefaultLocale is the language tag English tags are rewritten to.
const DefaultLocale = "zh-TW"

// ClassCollapsedBreak marks the single <br> left after collapsing a run.
const ClassCollapsedBreak = "there-were-several-br"

// Icon markup substituted for arrow glyphs.
const (
	IconArrowRight = `<i class="fa-light fa-arrow-right"></i>`
	IconArrowUp    = `<i class="fa-solid fa-arrow-up"></i>`
	IconArrowDown  = `<i class="fa-solid fa-arrow-down"></i>`
)

var (
	brRun      = regexp.MustCompile(`(?i)(?:<br\s*/?>\s*){2,}`)
	englishTag = regexp.MustCompile(`(?i)\ben-[a-z]{2}\b`)
	langEn     = regexp.MustCompile(`(?i)lang\s*=\s*["']en["']`)

	// U+FE0F belongs to the glyph before it and is consumed with it.
	arrowRight = regexp.MustCompile(`➔|→`)
	arrowUp    = regexp.MustCompile(`⬆\x{FE0F}?|↑|⭡`)
	arrowDown  = regexp.MustCompile(`⬇\x{FE0F}?|↓|⭣`)
)

type substitution struct {
	re   *regexp.Regexp
	repl string
}

// Preprocessor applies textual substitutions to raw page HTML before it is
// parsed. It never parses, so it tolerates malformed markup.
type Preprocessor struct {
	subs []substitution
}

// NewPreprocessor creates a Preprocessor rewriting English language tags to
// locale. An empty locale means DefaultLocale.
func NewPreprocessor(locale string) *Preprocessor {
	if locale == "" {
		locale = DefaultLocale
	}
	return &Preprocessor{subs: []substitution{
		{brRun, `<br class="` + ClassCollapsedBreak + `">`},
		{englishTag, locale},
		{langEn, `lang="` + locale + `"`},
		{arrowRight, IconArrowRight},
		{arrowUp, IconArrowUp},
		{arrowDown, IconArrowDown},
	}}
}

// Process returns raw with every substitution applied in order.
func (p *Preprocessor) Process(raw string) string {
	out := raw
	for _, s := range p.subs {
		out = s.re.ReplaceAllLiteralString(out, s.repl)
	}
	return out
}
