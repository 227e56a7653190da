package script

import (
	"fmt"
	"strings"
)

// rewriteLifecycle merges the legacy (시작)할때 / (매마디)마다 block pair
// into one canonical per-tick block: the start body runs once behind the
// reserved 시작됨 flag, followed unconditionally by the tick body. The pass
// only fires when no canonical per-tick block exists yet, which makes it
// idempotent across runs. Malformed blocks, or scripts that already bind
// the reserved flag themselves, abort the merge and keep the text as-is.
func rewriteLifecycle(lines []string, diags *Diagnostics) []string {
	if indexMatching(lines, 0, isTickOpener) != -1 {
		return lines
	}
	tickAt := indexMatching(lines, 0, legacyTickOpenerRe.MatchString)
	if tickAt == -1 {
		return lines
	}
	tickClose := findBlockEnd(lines, tickAt)
	if tickClose == -1 {
		diags.Warnf("lifecycle-unterminated", fmt.Sprintf("line %d", tickAt+1), "unterminated (매마디)마다 block, merge skipped")
		return lines
	}
	tickBody := innerLines(lines, tickAt, tickClose)

	startAt := indexMatching(lines, 0, legacyStartOpenerRe.MatchString)
	startClose := -1
	var startBody []string
	if startAt != -1 {
		startClose = findBlockEnd(lines, startAt)
		if startClose == -1 {
			diags.Warnf("lifecycle-unterminated", fmt.Sprintf("line %d", startAt+1), "unterminated (시작)할때 block, merge skipped")
			return lines
		}
		startBody = innerLines(lines, startAt, startClose)
		for _, body := range [][]string{startBody, tickBody} {
			for _, line := range body {
				if strings.Contains(stripComment(line), InitFlagName) {
					diags.Warnf("lifecycle-reserved-flag", fmt.Sprintf("line %d", tickAt+1), "script already uses reserved flag %s, merge skipped", InitFlagName)
					return lines
				}
			}
		}
	}

	merged := []string{"마디마다 {"}
	if startAt != -1 {
		merged = append(merged, fmt.Sprintf("만약 (%s == 0) {", InitFlagName))
		merged = append(merged, startBody...)
		merged = append(merged, fmt.Sprintf("%s = 1.", InitFlagName), "}")
	}
	merged = append(merged, tickBody...)
	merged = append(merged, "}")

	inStart := func(i int) bool { return startAt != -1 && i >= startAt && i <= startClose }
	var out []string
	for i := 0; i < len(lines); i++ {
		switch {
		case inStart(i):
			// excised; its body lives in the merged block
		case i == tickAt:
			out = append(out, merged...)
			i = tickClose
		default:
			out = append(out, lines[i])
		}
	}
	return out
}
