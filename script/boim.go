package script

import (
	"fmt"
	"regexp"
)

var (
	revealOpenerRe = regexp.MustCompile(`^\s*보임\s*\{`)
	revealEntryRe  = regexp.MustCompile(`^\s*([A-Za-z0-9_가-힣]+)\s*:\s*(.+?)\s*\.\s*$`)
)

// rewriteBoim lowers the legacy 보임 (reveal) block, whose lines are
// strictly `key: expr.`, into plain display statements of each expr. Blank
// and comment lines inside the block are carried through; any other line
// that fails the strict pattern aborts conversion for the whole block.
func rewriteBoim(lines []string, diags *Diagnostics) []string {
	var out []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !revealOpenerRe.MatchString(line) {
			out = append(out, line)
			continue
		}
		end := findBlockEnd(lines, i)
		if end == -1 {
			diags.Warnf("boim-unterminated", fmt.Sprintf("line %d", i+1), "unterminated 보임 block, left as-is")
			out = append(out, line)
			continue
		}
		converted, ok := revealStatements(innerLines(lines, i, end))
		if !ok {
			out = append(out, lines[i:end+1]...)
			i = end
			continue
		}
		out = append(out, converted...)
		i = end
	}
	return out
}

func revealStatements(inner []string) ([]string, bool) {
	var stmts []string
	for _, line := range inner {
		if isBlankOrComment(line) {
			stmts = append(stmts, line)
			continue
		}
		m := revealEntryRe.FindStringSubmatch(stripComment(line))
		if m == nil {
			return nil, false
		}
		stmts = append(stmts, m[2]+" "+ShowKeyword+"."+commentSuffix(line))
	}
	return stmts, true
}
