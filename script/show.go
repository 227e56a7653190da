package script

import (
	"regexp"
	"strings"
)

var showStmtRe = regexp.MustCompile(`^(\s*)(.+?)\s+보여주기\s*\.\s*$`)

// accumulator statements the runtime executes directly
var (
	resetStmt = AccumulatorName + " = []."
)

func appendStmt(expr string) string {
	return AccumulatorName + " = " + AccumulatorName + " + [" + expr + "]."
}

// rewriteShow is the final pass: every remaining display statement becomes
// an append to the reserved output accumulator, and the accumulator is
// reset exactly once per tick. The reset goes right after the first
// per-tick opener found in line order; when the program has no per-tick
// block at all, a fresh one is synthesized at the end wrapping the reset
// plus all rewritten statements.
func rewriteShow(lines []string, diags *Diagnostics) []string {
	out := make([]string, len(lines))
	var moved []string
	rewrittenAt := map[int]bool{}
	for i, line := range lines {
		out[i] = line
		m := showStmtRe.FindStringSubmatch(stripComment(line))
		if m == nil {
			continue
		}
		out[i] = m[1] + appendStmt(m[2]) + commentSuffix(line)
		moved = append(moved, appendStmt(m[2])+commentSuffix(line))
		rewrittenAt[i] = true
	}
	if len(moved) == 0 {
		return lines
	}

	at := indexMatching(out, 0, isAnyTickOpener)
	if at != -1 {
		if hasResetAfter(out, at) {
			return out
		}
		injected := make([]string, 0, len(out)+1)
		injected = append(injected, out[:at+1]...)
		injected = append(injected, resetStmt)
		injected = append(injected, out[at+1:]...)
		return injected
	}

	// No per-tick construct anywhere: move the rewritten statements into a
	// synthesized block at program end.
	var kept []string
	for i, line := range out {
		if rewrittenAt[i] {
			continue
		}
		kept = append(kept, line)
	}
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}
	kept = append(kept, "마디마다 {", resetStmt)
	kept = append(kept, moved...)
	kept = append(kept, "}", "")
	return kept
}

// hasResetAfter reports whether the first statement line after the opener
// is already the accumulator reset, so reruns never double-inject.
func hasResetAfter(lines []string, opener int) bool {
	for i := opener + 1; i < len(lines); i++ {
		if isBlankOrComment(lines[i]) {
			continue
		}
		return strings.TrimSpace(lines[i]) == resetStmt
	}
	return false
}
