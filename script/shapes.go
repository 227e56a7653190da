package script

import (
	"fmt"
	"regexp"
)

var (
	shapeBlockOpenerRe = regexp.MustCompile(`^\s*(보개|모양)\s*\{`)
	shapeCallRe        = regexp.MustCompile(`^\s*(점|선|원)\s*\((.*)\)\s*\.?\s*$`)
)

// shapeAttr is one attribute of a shape call: positional slot, named
// synonyms (English and Korean), and the documented default.
type shapeAttr struct {
	key   string
	pos   int
	names []string
	def   string
}

var shapeForms = map[string][]shapeAttr{
	"점": {
		{"x", 0, []string{"x", "가로"}, "0"},
		{"y", 1, []string{"y", "세로"}, "0"},
		{"size", 2, []string{"size", "크기"}, "0.05"},
		{"color", 3, []string{"color", "색"}, "#22c55e"},
	},
	"선": {
		{"x1", 0, []string{"x1", "가로1"}, "0"},
		{"y1", 1, []string{"y1", "세로1"}, "0"},
		{"x2", 2, []string{"x2", "가로2"}, "0"},
		{"y2", 3, []string{"y2", "세로2"}, "0"},
		{"stroke", 4, []string{"stroke", "색"}, "#9ca3af"},
		{"width", 5, []string{"width", "굵기"}, "0.02"},
	},
	"원": {
		{"x", 0, []string{"x", "가로"}, "0"},
		{"y", 1, []string{"y", "세로"}, "0"},
		{"r", 2, []string{"r", "반지름"}, "0.08"},
		{"fill", 3, []string{"fill", "채움"}, "#38bdf8"},
		{"stroke", 4, []string{"stroke", "테두리"}, "#0ea5e9"},
		{"width", 5, []string{"width", "굵기"}, "0.02"},
	},
}

// rewriteShapes lowers a 보개/모양 declaration block into one "space2d" tag
// plus one "space2d.shape" record per primitive. Conversion is all or
// nothing: a single inner line that is not a 점/선/원 call preserves the
// entire block verbatim.
func rewriteShapes(lines []string, diags *Diagnostics) []string {
	var out []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !shapeBlockOpenerRe.MatchString(line) {
			out = append(out, line)
			continue
		}
		end := findBlockEnd(lines, i)
		if end == -1 {
			diags.Warnf("shape-unterminated", fmt.Sprintf("line %d", i+1), "unterminated shape block, left as-is")
			out = append(out, line)
			continue
		}
		records, ok := shapeRecords(innerLines(lines, i, end))
		if !ok {
			out = append(out, lines[i:end+1]...)
			i = end
			continue
		}
		out = append(out, records...)
		i = end
	}
	return out
}

// shapeRecords converts every shape call in a block, or reports failure if
// any non-blank, non-comment line is not a recognized shape form.
func shapeRecords(inner []string) ([]string, bool) {
	records := []string{showString("space2d")}
	matched := false
	for _, line := range inner {
		if isBlankOrComment(line) {
			continue
		}
		m := shapeCallRe.FindStringSubmatch(stripComment(line))
		if m == nil {
			return nil, false
		}
		records = append(records, shapeRecord(m[1], TokenizeArgs(m[2]))...)
		matched = true
	}
	if !matched {
		return nil, false
	}
	return records, true
}

// shapeRecord emits one primitive: the record tag, the kind, then each
// attribute in declared order with named-over-positional resolution and
// documented defaults.
func shapeRecord(kind string, args Args) []string {
	records := []string{showString("space2d.shape"), showString("kind=" + kind)}
	for _, attr := range shapeForms[kind] {
		val := Unquote(args.LookupOr(attr.def, attr.pos, attr.names...))
		records = append(records, showString(attr.key+"="+val))
	}
	return records
}
