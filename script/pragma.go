package script

import (
	"fmt"
	"regexp"
	"strings"
)

// PragmaMarker prefixes directive lines in script source.
const PragmaMarker = "#"

// KindOther is the catch-all pragma kind for directives whose keyword is not
// in the known set. The directive itself is never dropped.
const KindOther = "기타"

// Known pragma kinds, stored under their canonical Korean keyword. English
// spellings are accepted as synonyms at extraction time.
const (
	KindGraph   = "그래프"
	KindPoint   = "점"
	KindControl = "조절"
	KindImport  = "가져오기"
	KindExport  = "내보내기"
)

var pragmaKinds = map[string]string{
	"그래프": KindGraph, "graph": KindGraph,
	"점": KindPoint, "point": KindPoint,
	"조절": KindControl, "control": KindControl,
	"가져오기": KindImport, "import": KindImport,
	"내보내기": KindExport, "export": KindExport,
}

// Location is a 0-based line and column position in the source text.
type Location struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Pragma is one directive line, separated from the script body during
// extraction. Immutable once created.
type Pragma struct {
	Kind string            `json:"kind"`
	Raw  string            `json:"raw"`
	Args map[string]string `json:"args"`
	Loc  Location          `json:"location"`
}

var pragmaRe = regexp.MustCompile(`^#\s*([^\s(#]+)\s*(?:\((.*)\))?\s*$`)

// ExtractPragmas separates directive lines from body text. Directive lines
// that fail to parse, or carry an unknown keyword, become catch-all pragmas
// with a WARN diagnostic; extraction itself never fails.
func ExtractPragmas(src string, diags *Diagnostics) (body string, pragmas []Pragma) {
	lines := strings.Split(src, "\n")
	bodyLines := make([]string, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, PragmaMarker) {
			bodyLines = append(bodyLines, line)
			continue
		}
		col := strings.Index(line, PragmaMarker)
		loc := Location{Line: i, Col: col}
		m := pragmaRe.FindStringSubmatch(trimmed)
		if m == nil {
			pragmas = append(pragmas, Pragma{Kind: KindOther, Raw: line, Args: map[string]string{}, Loc: loc})
			diags.Warnf("pragma-parse-failed", locString(loc), "pragma parse failed: %q", trimmed)
			continue
		}
		kind, known := pragmaKinds[strings.ToLower(m[1])]
		if !known {
			kind = KindOther
			diags.Warnf("pragma-unknown-kind", locString(loc), "unknown pragma kind %q", m[1])
		}
		pragmas = append(pragmas, Pragma{
			Kind: kind,
			Raw:  line,
			Args: TokenizeArgs(m[2]).Map(),
			Loc:  loc,
		})
	}
	return strings.Join(bodyLines, "\n"), pragmas
}

func locString(loc Location) string {
	return fmt.Sprintf("line %d, col %d", loc.Line+1, loc.Col+1)
}
