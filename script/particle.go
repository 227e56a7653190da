package script

import (
	"regexp"
	"strings"
)

var particleShowRe = regexp.MustCompile(`^(\s*)(.*\S)([을를])\s+보여주기\s*\.(.*)$`)

// rewriteShowParticle lowers the grammatical-particle display form
// (`<expr>을 보여주기.` / `<expr>를 보여주기.`) into the particle-free
// canonical form, keeping trailing comments. The particle is only stripped
// when it grammatically agrees with the preceding syllable, so nouns that
// merely end in 을/를 (마을, 하늘...) are left alone, which also keeps the
// pass idempotent on its own output.
func rewriteShowParticle(lines []string, diags *Diagnostics) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line
		m := particleShowRe.FindStringSubmatch(stripComment(line))
		if m == nil {
			continue
		}
		tail := strings.TrimSpace(m[4])
		if tail != "" {
			continue
		}
		expr := m[2]
		particle := []rune(m[3])[0]
		exprRunes := []rune(expr)
		if !particleAgrees(exprRunes[len(exprRunes)-1], particle) {
			continue
		}
		out[i] = m[1] + expr + " " + ShowKeyword + "." + commentSuffix(line)
	}
	return out
}

// particleAgrees applies the object-particle agreement rule: 을 follows a
// syllable with a final consonant, 를 follows one without. Non-hangul
// endings (latin identifiers, quotes, brackets) accept either particle.
func particleAgrees(prev, particle rune) bool {
	if prev < 0xAC00 || prev > 0xD7A3 {
		return true
	}
	hasFinal := (prev-0xAC00)%28 != 0
	if particle == '을' {
		return hasFinal
	}
	return !hasFinal
}
