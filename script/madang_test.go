package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMadang_SubtitleBecomesOverlayRecord(t *testing.T) {
	src := strings.Join([]string{
		"마당 {",
		"토막 {",
		`자막("진자 실험입니다", 인사, 위치=(0.1, 0.9))`,
		"}",
		"}",
		"그리기 = 1.",
	}, "\n")
	got := applyPass(t, "madang-subtitle", src)

	// stage block removed, records wrapped in a synthesized per-tick block
	assert.NotContains(t, got, "마당")
	assert.Contains(t, got, "마디마다 {")
	want := strings.Join([]string{
		`"text.overlay" 보여주기.`,
		`"id=인사" 보여주기.`,
		`"markdown=진자 실험입니다" 보여주기.`,
		`"x=0.1" 보여주기.`,
		`"y=0.9" 보여주기.`,
	}, "\n")
	assert.Contains(t, got, want)
	assert.Contains(t, got, "그리기 = 1.")
}

func TestMadang_InjectsAfterExistingTickOpener(t *testing.T) {
	src := strings.Join([]string{
		"마당 {",
		"토막 {",
		`자막("한 줄")`,
		"}",
		"}",
		"마디마다 {",
		"x = x + 1.",
		"}",
	}, "\n")
	got := strings.Split(applyPass(t, "madang-subtitle", src), "\n")
	assert.Equal(t, "마디마다 {", got[0])
	assert.Equal(t, `"text.overlay" 보여주기.`, got[1])
	assert.Equal(t, `"markdown=한 줄" 보여주기.`, got[2])
	assert.Equal(t, "x = x + 1.", got[3])
}

func TestMadang_NoIDAndNoPositionOmitsFields(t *testing.T) {
	src := "마당 {\n토막 {\n자막(\"본문만\")\n}\n}"
	got := applyPass(t, "madang-subtitle", src)
	assert.NotContains(t, got, `"id=`)
	assert.NotContains(t, got, `"x=`)
	assert.Contains(t, got, `"markdown=본문만" 보여주기.`)
}

func TestMadang_NonNumericPositionIgnored(t *testing.T) {
	src := "마당 {\n토막 {\n자막(\"글\", 위치=(왼쪽, 위))\n}\n}"
	got := applyPass(t, "madang-subtitle", src)
	assert.Contains(t, got, `"markdown=글" 보여주기.`)
	assert.NotContains(t, got, `"x=`)
}

func TestMadang_EmptySubtitlePreservesStageBlock(t *testing.T) {
	src := "마당 {\n토막 {\n자막(\"\")\n}\n}"
	assert.Equal(t, src, applyPass(t, "madang-subtitle", src))
}

func TestMadang_StageWithoutChunksPreserved(t *testing.T) {
	src := "마당 {\n배경 = 하늘.\n}"
	assert.Equal(t, src, applyPass(t, "madang-subtitle", src))
}
