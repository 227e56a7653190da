package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoim_ConvertsEntries(t *testing.T) {
	src := "보임 {\n속도: v.\n높이: h * 2.\n}"
	want := "v 보여주기.\nh * 2 보여주기."
	assert.Equal(t, want, applyPass(t, "boim-reveal", src))
}

func TestBoim_BlankAndCommentLinesCarryThrough(t *testing.T) {
	src := strings.Join([]string{
		"보임 {",
		"// 관측값",
		"",
		"속도: v.",
		"}",
	}, "\n")
	want := strings.Join([]string{
		"// 관측값",
		"",
		"v 보여주기.",
	}, "\n")
	assert.Equal(t, want, applyPass(t, "boim-reveal", src))
}

func TestBoim_StrictPatternFailureAbortsBlock(t *testing.T) {
	src := "보임 {\n속도: v.\n그냥 문장.\n}"
	assert.Equal(t, src, applyPass(t, "boim-reveal", src))
}

func TestBoim_KeepsTrailingComment(t *testing.T) {
	src := "보임 {\n속도: v. // 순간 속도\n}"
	assert.Equal(t, "v 보여주기. // 순간 속도", applyPass(t, "boim-reveal", src))
}
