package runtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullRuntimeJS exposes every required entry point plus the optional
// update_logic_with_mode, mirroring a complete runtime build.
const fullRuntimeJS = `
var calls = [];
var stepCount = 0;
var runtime = {
	update_logic: function(text) { calls.push(["update_logic", text]); },
	update_logic_with_mode: function(text, mode) { calls.push(["mode", mode]); },
	set_rng_seed: function(seed) { calls.push(["seed", seed]); },
	set_input: function(name, v) {},
	set_param: function(n, v) {},
	set_param_fixed64: function(t, raw) {},
	set_param_fixed64_str: function(t, raw) {},
	reset: function(keep) { stepCount = 0; },
	restore_state: function(json) { stepCount = 0; },
	step_one: function() {
		stepCount++;
		return JSON.stringify({
			schema: "madang.v2",
			state: {channels: [{key: "t"}, {key: "y"}], row: [stepCount, 0.5]}
		});
	},
	step_one_with_input: function(input) { return this.step_one(); },
	get_state_hash: function() { return "deadbeef"; },
	get_state_json: function() { return JSON.stringify({row: []}); },
	not_a_function: 42
};
`

// minimalRuntimeJS exposes only stepping, to exercise missing-capability
// paths.
const minimalRuntimeJS = `
var runtime = {
	step_one: function() { return "{}"; }
};
`

func newTestSession(t *testing.T, src string) *Session {
	t.Helper()
	handle, err := LoadJSRuntime(src)
	require.NoError(t, err)
	return NewSession(handle)
}

func TestLoadJSRuntime_NoRuntimeObject(t *testing.T) {
	_, err := LoadJSRuntime(`var x = 1;`)
	assert.ErrorIs(t, err, ErrNoRuntimeObject)
}

func TestLoadJSRuntime_ScriptError(t *testing.T) {
	_, err := LoadJSRuntime(`throw new Error("boom");`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestGojaHandle_HasIgnoresNonFunctions(t *testing.T) {
	handle, err := LoadJSRuntime(fullRuntimeJS)
	require.NoError(t, err)
	assert.True(t, handle.Has("step_one"))
	assert.False(t, handle.Has("not_a_function"))
	assert.False(t, handle.Has("nope"))
}

func TestProbe_Capabilities(t *testing.T) {
	sess := newTestSession(t, fullRuntimeJS)
	caps := sess.Capabilities()
	assert.True(t, caps.UpdateLogic)
	assert.True(t, caps.UpdateLogicWithMode)
	assert.True(t, caps.Reset)
	assert.True(t, caps.Restore)
	assert.False(t, caps.ViewPrefixes)
	assert.False(t, caps.AIInjection)
	assert.False(t, caps.Columns)

	min := newTestSession(t, minimalRuntimeJS)
	assert.False(t, min.Capabilities().UpdateLogic)
	assert.True(t, min.Capabilities().StepOne)
}

func TestSession_StepStampsFrameAndElapsed(t *testing.T) {
	sess := newTestSession(t, fullRuntimeJS)
	clock := time.Unix(1000, 0)
	sess.now = func() time.Time { return clock }

	st, err := sess.Step()
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.FrameID)
	assert.Equal(t, 0.0, st.ElapsedMs)
	// the v2 envelope was unwrapped
	require.Len(t, st.Channels, 2)
	assert.Equal(t, []any{1.0, 0.5}, st.Row)

	clock = clock.Add(16 * time.Millisecond)
	st, err = sess.Step()
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.FrameID)
	assert.InDelta(t, 16.0, st.ElapsedMs, 1e-9)
}

func TestSession_ResetRewindsSequencing(t *testing.T) {
	sess := newTestSession(t, fullRuntimeJS)
	clock := time.Unix(1000, 0)
	sess.now = func() time.Time { return clock }

	_, err := sess.Step()
	require.NoError(t, err)
	clock = clock.Add(5 * time.Millisecond)
	_, err = sess.Step()
	require.NoError(t, err)

	require.NoError(t, sess.Reset(true))
	clock = clock.Add(5 * time.Millisecond)
	st, err := sess.Step()
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.FrameID)
	assert.Equal(t, 0.0, st.ElapsedMs)
}

func TestSession_RestoreRewindsSequencing(t *testing.T) {
	sess := newTestSession(t, fullRuntimeJS)
	_, err := sess.Step()
	require.NoError(t, err)
	require.NoError(t, sess.Restore(`{"row": []}`))
	st, err := sess.Step()
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.FrameID)
}

func TestSession_MissingRequiredCapability(t *testing.T) {
	sess := newTestSession(t, minimalRuntimeJS)

	err := sess.Reset(true)
	assert.ErrorIs(t, err, ErrCapabilityMissing)
	assert.Contains(t, err.Error(), "reset")

	err = sess.Restore("{}")
	assert.ErrorIs(t, err, ErrCapabilityMissing)
	assert.Contains(t, err.Error(), "restore_state")

	err = sess.SetParam("g", "9.8")
	assert.ErrorIs(t, err, ErrCapabilityMissing)
	assert.Contains(t, err.Error(), "set_param")
}

func TestSession_OptionalCapabilityNoOps(t *testing.T) {
	sess := newTestSession(t, minimalRuntimeJS)

	ok, err := sess.UpdateLogicWithMode("text", "fast")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.False(t, sess.AddViewPrefix("graph."))
	assert.False(t, sess.ClearViewPrefixes())
	assert.False(t, sess.InjectAIAction("{}"))
	assert.False(t, sess.ClearAIInjections())

	_, ok = sess.Columns()
	assert.False(t, ok)
}

func TestSession_FixedPointTargetAllowList(t *testing.T) {
	sess := newTestSession(t, fullRuntimeJS)
	assert.NoError(t, sess.SetParamFixed64("graph.axis.x_min", 1<<32))
	err := sess.SetParamFixed64("secret.toggle", 1)
	assert.ErrorIs(t, err, ErrTargetNotAllowed)
	err = sess.SetParamFixed64Str("secret.toggle", "1")
	assert.ErrorIs(t, err, ErrTargetNotAllowed)
}

func TestSession_StateHashAndJSON(t *testing.T) {
	sess := newTestSession(t, fullRuntimeJS)
	hash, err := sess.StateHash()
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", hash)
	raw, err := sess.StateJSON()
	require.NoError(t, err)
	assert.Contains(t, raw, "row")
}
