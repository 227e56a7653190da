package script

import "strings"

// lineComment marks a trailing comment in script source.
const lineComment = "//"

// braceDelta returns the net {/} count of one line, ignoring braces inside
// quoted strings and trailing comments.
func braceDelta(line string) int {
	delta := 0
	var quote rune
	escaped := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if escaped {
			escaped = false
			continue
		}
		if quote != 0 {
			if r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
		case '/':
			if i+1 < len(runes) && runes[i+1] == '/' {
				return delta
			}
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}

// findBlockEnd walks forward from the opener line and returns the index of
// the line on which the running brace depth first returns to zero. Returns
// -1 when the block never closes; callers must then abandon conversion and
// preserve the original lines.
func findBlockEnd(lines []string, open int) int {
	depth := 0
	opened := false
	for i := open; i < len(lines); i++ {
		d := braceDelta(lines[i])
		if d > 0 {
			opened = true
		}
		depth += d
		if opened && depth <= 0 {
			return i
		}
	}
	return -1
}

// stripComment removes a trailing line comment, respecting quoted strings.
func stripComment(line string) string {
	var quote rune
	escaped := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if escaped {
			escaped = false
			continue
		}
		if quote != 0 {
			if r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
		case '/':
			if i+1 < len(runes) && runes[i+1] == '/' {
				return string(runes[:i])
			}
		}
	}
	return line
}

// trailingComment returns the trailing comment of a line, including the
// comment marker, or "" when there is none.
func trailingComment(line string) string {
	stripped := stripComment(line)
	if len(stripped) == len(line) {
		return ""
	}
	return line[len(stripped):]
}

// commentSuffix renders the trailing comment of a line for reattachment to
// a rewritten statement, separated by one space.
func commentSuffix(line string) string {
	c := trailingComment(line)
	if c == "" {
		return ""
	}
	return " " + c
}

// isBlankOrComment reports whether a line carries no statement.
func isBlankOrComment(line string) bool {
	t := strings.TrimSpace(line)
	return t == "" || strings.HasPrefix(t, lineComment)
}

// innerLines returns the lines strictly inside a block, excluding whatever
// sits on the opener and closer lines themselves.
func innerLines(lines []string, open, end int) []string {
	if end <= open+1 {
		return nil
	}
	return lines[open+1 : end]
}

// indexMatching returns the index of the first line matching pred at or
// after start, or -1.
func indexMatching(lines []string, start int, pred func(string) bool) int {
	for i := start; i < len(lines); i++ {
		if pred(lines[i]) {
			return i
		}
	}
	return -1
}
