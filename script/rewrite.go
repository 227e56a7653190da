// Package script implements the madang script preprocessor: pragma
// extraction plus the ordered rewrite passes that lower legacy surface
// syntax into the canonical statement form the runtime executes. Every pass
// is a pure text to text function; malformed blocks are preserved verbatim
// rather than dropped, so a partially broken script still runs.
package script

import (
	"regexp"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// Canonical and legacy keywords of the script surface.
const (
	ShowKeyword       = "보여주기"
	StageKeyword      = "마당"
	ChunkKeyword      = "토막"
	SubtitleKeyword   = "자막"
	RevealKeyword     = "보임"
	ShapeKeywordBogae = "보개"
	ShapeKeywordShape = "모양"
)

// Reserved identifiers injected by the rewriters into the runtime's
// variable namespace. Scripts that bind these names themselves defeat the
// lifecycle merge and the display accumulator; the passes detect the
// collision and preserve the original text.
const (
	InitFlagName    = "시작됨"
	AccumulatorName = "보임줄"
)

var (
	tickOpenerRe        = regexp.MustCompile(`^\s*마디마다\s*\{`)
	legacyTickOpenerRe  = regexp.MustCompile(`^\s*\(매마디\)마다\s*\{`)
	legacyStartOpenerRe = regexp.MustCompile(`^\s*\(시작\)할때\s*\{`)
)

// isTickOpener matches the canonical per-tick block opener.
func isTickOpener(line string) bool { return tickOpenerRe.MatchString(line) }

// isAnyTickOpener matches canonical or legacy per-tick openers. The
// canonical form is checked first so it wins ties on the same line.
func isAnyTickOpener(line string) bool {
	return tickOpenerRe.MatchString(line) || legacyTickOpenerRe.MatchString(line)
}

// Pass is one rewrite pass over the script body. Passes run in a fixed
// order; each one is idempotent against its own canonical output.
type Pass struct {
	Name  string
	Apply func(lines []string, diags *Diagnostics) []string
}

// Passes returns the rewrite passes in execution order. The order matters:
// every pass assumes the text shape left by its predecessors, and the final
// show-statement pass must see the display statements the earlier passes
// emit.
func Passes() []Pass {
	return []Pass{
		{Name: "show-particle", Apply: rewriteShowParticle},
		{Name: "madang-subtitle", Apply: rewriteMadang},
		{Name: "lifecycle-merge", Apply: rewriteLifecycle},
		{Name: "shape-block", Apply: rewriteShapes},
		{Name: "boim-reveal", Apply: rewriteBoim},
		{Name: "show-statement", Apply: rewriteShow},
	}
}

// PassNames lists the pass names in execution order.
func PassNames() []string {
	return gfn.Map(Passes(), func(p Pass) string { return p.Name })
}

// Rewrite applies all passes to a script body.
func Rewrite(body string, diags *Diagnostics) string {
	lines := strings.Split(body, "\n")
	for _, p := range Passes() {
		lines = p.Apply(lines, diags)
	}
	return strings.Join(lines, "\n")
}

// Result is the outcome of preprocessing one script.
type Result struct {
	Text        string       `json:"text"`
	Pragmas     []Pragma     `json:"pragmas"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Preprocess runs pragma extraction and the full rewrite pipeline. It never
// fails: all problems surface as diagnostics and the offending text is
// carried through untouched.
func Preprocess(src string) Result {
	var diags Diagnostics
	body, pragmas := ExtractPragmas(src, &diags)
	text := Rewrite(body, &diags)
	return Result{Text: text, Pragmas: pragmas, Diagnostics: diags.Items()}
}
