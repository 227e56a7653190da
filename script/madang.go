package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	stageOpenerRe  = regexp.MustCompile(`^\s*마당\s*\{`)
	chunkOpenerRe  = regexp.MustCompile(`^\s*토막\s*\{`)
	subtitleCallRe = regexp.MustCompile(`^\s*자막\s*\((.*)\)\s*\.?\s*$`)
	positionPairRe = regexp.MustCompile(`^\(\s*(.+?)\s*,\s*(.+?)\s*\)$`)
)

// rewriteMadang converts 마당 (stage) blocks into text-overlay display
// records. Each 토막 (chunk) subtitle call with a non-empty text argument
// becomes a fixed record sequence; when at least one record is produced the
// whole stage block is removed and the records are injected into the first
// per-tick block, or into a synthesized one at the end of the program.
// Stage blocks that yield nothing are preserved verbatim.
func rewriteMadang(lines []string, diags *Diagnostics) []string {
	var out []string
	var emitted []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !stageOpenerRe.MatchString(line) {
			out = append(out, line)
			continue
		}
		end := findBlockEnd(lines, i)
		if end == -1 {
			diags.Warnf("madang-unterminated", fmt.Sprintf("line %d", i+1), "unterminated 마당 block, left as-is")
			out = append(out, line)
			continue
		}
		records := subtitleRecords(innerLines(lines, i, end), diags)
		if len(records) == 0 {
			out = append(out, lines[i:end+1]...)
			i = end
			continue
		}
		emitted = append(emitted, records...)
		i = end
	}
	if len(emitted) == 0 {
		return out
	}
	return injectIntoTick(out, emitted)
}

// subtitleRecords walks the chunk blocks of one stage block and emits the
// canonical display records for every subtitle call carrying text.
func subtitleRecords(inner []string, diags *Diagnostics) []string {
	var records []string
	for i := 0; i < len(inner); i++ {
		if !chunkOpenerRe.MatchString(inner[i]) {
			continue
		}
		end := findBlockEnd(inner, i)
		if end == -1 {
			diags.Warnf("madang-chunk-unterminated", fmt.Sprintf("chunk at offset %d", i), "unterminated 토막 block, skipped")
			continue
		}
		for _, line := range innerLines(inner, i, end) {
			m := subtitleCallRe.FindStringSubmatch(stripComment(line))
			if m == nil {
				continue
			}
			records = append(records, subtitleRecord(TokenizeArgs(m[1]))...)
		}
		i = end
	}
	return records
}

// subtitleRecord emits the record for one subtitle call: the text.overlay
// tag, an optional id, the markdown payload, and optional x/y when the
// position argument parses as an (x, y) pair.
func subtitleRecord(args Args) []string {
	text := Unquote(args.LookupOr("", 0, "글", "text"))
	if strings.TrimSpace(text) == "" {
		return nil
	}
	records := []string{showString("text.overlay")}
	if id := Unquote(args.LookupOr("", 1, "이름", "id")); strings.TrimSpace(id) != "" {
		records = append(records, showString("id="+id))
	}
	records = append(records, showString("markdown="+text))
	if pos, ok := args.Lookup(2, "위치", "pos"); ok {
		if x, y, ok := parsePositionPair(pos); ok {
			records = append(records, showString("x="+x), showString("y="+y))
		}
	}
	return records
}

// parsePositionPair accepts "(x, y)" with numeric components.
func parsePositionPair(s string) (x, y string, ok bool) {
	m := positionPairRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", "", false
	}
	if _, err := strconv.ParseFloat(m[1], 64); err != nil {
		return "", "", false
	}
	if _, err := strconv.ParseFloat(m[2], 64); err != nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// showString renders a canonical display statement for a string literal.
func showString(s string) string {
	return fmt.Sprintf("%q %s.", s, ShowKeyword)
}

// injectIntoTick places emitted statements right after the first per-tick
// opener in line order, or appends a synthesized per-tick block when the
// program has none.
func injectIntoTick(lines []string, stmts []string) []string {
	at := indexMatching(lines, 0, isAnyTickOpener)
	if at == -1 {
		out := append([]string{}, lines...)
		if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
			out = out[:len(out)-1]
		}
		out = append(out, "마디마다 {")
		out = append(out, stmts...)
		out = append(out, "}", "")
		return out
	}
	out := make([]string, 0, len(lines)+len(stmts))
	out = append(out, lines[:at+1]...)
	out = append(out, stmts...)
	out = append(out, lines[at+1:]...)
	return out
}
