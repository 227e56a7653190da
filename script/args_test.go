package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeArgs_Positional(t *testing.T) {
	args := TokenizeArgs("0, 0, 1, 1")
	require.Equal(t, 4, args.Len())
	v, ok := args.Lookup(2)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, map[string]string{"arg1": "0", "arg2": "0", "arg3": "1", "arg4": "1"}, args.Map())
}

func TestTokenizeArgs_NamedAndMixed(t *testing.T) {
	args := TokenizeArgs(`x=1, 세로=2, "이름표"`)
	v, ok := args.Lookup(-1, "x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	v, ok = args.Lookup(-1, "y", "세로")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	v, ok = args.Lookup(0)
	assert.True(t, ok)
	assert.Equal(t, `"이름표"`, v)
}

func TestTokenizeArgs_QuotedCommaAndNesting(t *testing.T) {
	args := TokenizeArgs(`"안녕, 친구", f(1, 2), [3, 4]`)
	require.Equal(t, 3, args.Len())
	v, _ := args.Lookup(0)
	assert.Equal(t, `"안녕, 친구"`, v)
	v, _ = args.Lookup(1)
	assert.Equal(t, "f(1, 2)", v)
	v, _ = args.Lookup(2)
	assert.Equal(t, "[3, 4]", v)
}

func TestTokenizeArgs_EqualsInsideQuotesIsPositional(t *testing.T) {
	args := TokenizeArgs(`"a=b", pos=(1, 2)`)
	v, ok := args.Lookup(0)
	assert.True(t, ok)
	assert.Equal(t, `"a=b"`, v)
	v, ok = args.Lookup(-1, "pos")
	assert.True(t, ok)
	assert.Equal(t, "(1, 2)", v)
}

func TestTokenizeArgs_EscapedQuote(t *testing.T) {
	args := TokenizeArgs(`"he said \"hi\", twice", 2`)
	require.Equal(t, 2, args.Len())
	v, _ := args.Lookup(0)
	assert.Equal(t, `"he said \"hi\", twice"`, v)
	assert.Equal(t, `he said "hi", twice`, Unquote(v))
}

func TestLookup_NamedWinsOverPositional(t *testing.T) {
	// Both a positional and a named value target the same logical slot:
	// the named one must win.
	args := TokenizeArgs("5, x=1")
	v, ok := args.Lookup(0, "x", "가로")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestLookupOr_Default(t *testing.T) {
	args := TokenizeArgs("")
	assert.Equal(t, "0.05", args.LookupOr("0.05", 2, "size", "크기"))
}
