package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShowParticle_StripsAgreeingParticle(t *testing.T) {
	assert.Equal(t, "각도 보여주기.", applyPass(t, "show-particle", "각도를 보여주기."))
	assert.Equal(t, "사람 보여주기.", applyPass(t, "show-particle", "사람을 보여주기."))
	assert.Equal(t, `"안녕" 보여주기.`, applyPass(t, "show-particle", `"안녕"을 보여주기.`))
	assert.Equal(t, "x 보여주기.", applyPass(t, "show-particle", "x를 보여주기."))
}

func TestShowParticle_KeepsTrailingComment(t *testing.T) {
	in := "속도를 보여주기. // 매 틱 출력"
	assert.Equal(t, "속도 보여주기. // 매 틱 출력", applyPass(t, "show-particle", in))
}

func TestShowParticle_DisagreeingParticleIsNotAnObjectMarker(t *testing.T) {
	// 마을 ends in 을 but the syllable before it has no final consonant, so
	// this 을 is part of the noun, not the object particle.
	in := "마을 보여주기."
	assert.Equal(t, in, applyPass(t, "show-particle", in))
}

func TestShowParticle_PreservesIndentation(t *testing.T) {
	assert.Equal(t, "  각도 보여주기.", applyPass(t, "show-particle", "  각도를 보여주기."))
}

func TestShowParticle_LeavesOtherStatementsAlone(t *testing.T) {
	in := "각도 = 각도를 + 1."
	assert.Equal(t, in, applyPass(t, "show-particle", in))
}
