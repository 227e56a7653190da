package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applyPass runs a single named rewrite pass over input text.
func applyPass(t *testing.T, name, input string) string {
	t.Helper()
	for _, p := range Passes() {
		if p.Name != name {
			continue
		}
		var diags Diagnostics
		return strings.Join(p.Apply(strings.Split(input, "\n"), &diags), "\n")
	}
	t.Fatalf("no pass named %q", name)
	return ""
}

// assertPassIdempotent checks that re-applying a pass to its own output is
// byte identical.
func assertPassIdempotent(t *testing.T, name, input string) string {
	t.Helper()
	once := applyPass(t, name, input)
	twice := applyPass(t, name, once)
	require.Equal(t, once, twice, "pass %q is not idempotent on its own output", name)
	return once
}

func TestRewrite_EveryPassIdempotentOnMixedScript(t *testing.T) {
	src := strings.Join([]string{
		"각도를 보여주기.",
		"(시작)할때 {",
		"각도 = 0.5.",
		"}",
		"(매마디)마다 {",
		"각도 = 각도 - 0.01.",
		"}",
		"보개 {",
		"점(x=각도, y=0).",
		"}",
		"보임 {",
		"높이: h * 2.",
		"}",
		"마당 {",
		"토막 {",
		"자막(\"진자 실험\")",
		"}",
		"}",
	}, "\n")
	text := src
	for _, p := range Passes() {
		text = assertPassIdempotent(t, p.Name, text)
	}
}

func TestPreprocess_FullPipelineIdempotent(t *testing.T) {
	src := strings.Join([]string{
		"#그래프(이름=\"진자\")",
		"줄길이를 보여주기.",
		"(시작)할때 {",
		"각도 = 0.5.",
		"}",
		"(매마디)마다 {",
		"각도 = 각도 - 0.01.",
		"}",
		"보임 {",
		"각도: 각도.",
		"}",
	}, "\n")
	first := Preprocess(src)
	second := Preprocess(first.Text)
	assert.Equal(t, first.Text, second.Text)
	assert.Empty(t, second.Diagnostics)
}

func TestPreprocess_NeverFailsOnGarbage(t *testing.T) {
	res := Preprocess("{{{{\n#???(((\n보개 {\n고양이\n")
	assert.NotEmpty(t, res.Text)
	assert.NotEmpty(t, res.Diagnostics)
}

func TestPassNames_Order(t *testing.T) {
	assert.Equal(t, []string{
		"show-particle",
		"madang-subtitle",
		"lifecycle-merge",
		"shape-block",
		"boim-reveal",
		"show-statement",
	}, PassNames())
}
