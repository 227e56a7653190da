package runtime

import (
	"time"

	"github.com/madang-lab/madang/state"
)

// Session owns one runtime handle and its frame sequencing. Step calls are
// strictly sequential within a session; the frame counter and elapsed-time
// stamps reflect real call order. Reset and Restore rewind both counters
// deterministically.
type Session struct {
	handle   Handle
	caps     Capabilities
	frameID  int64
	lastStep time.Time
	stepped  bool

	now func() time.Time
}

// NewSession probes the handle's capabilities and returns a session.
func NewSession(h Handle) *Session {
	return &Session{handle: h, caps: Probe(h), now: time.Now}
}

// Capabilities returns what the underlying runtime build exposes.
func (s *Session) Capabilities() Capabilities { return s.caps }

// UpdateLogic pushes preprocessed script text into the runtime.
func (s *Session) UpdateLogic(text string) error {
	if !s.caps.UpdateLogic {
		return missing(capUpdateLogic)
	}
	_, err := s.handle.Call(capUpdateLogic, text)
	return err
}

// UpdateLogicWithMode is the optional mode-aware variant; returns false
// when the build does not expose it.
func (s *Session) UpdateLogicWithMode(text, mode string) (bool, error) {
	if !s.caps.UpdateLogicWithMode {
		return false, nil
	}
	_, err := s.handle.Call(capUpdateLogicWithMode, text, mode)
	return err == nil, err
}

// SetSeed seeds the runtime RNG.
func (s *Session) SetSeed(seed int64) error {
	if !s.caps.SetRNGSeed {
		return missing(capSetRNGSeed)
	}
	_, err := s.handle.Call(capSetRNGSeed, seed)
	return err
}

// SetInput feeds one input value into the runtime.
func (s *Session) SetInput(name string, value any) error {
	if !s.caps.SetInput {
		return missing(capSetInput)
	}
	_, err := s.handle.Call(capSetInput, name, value)
	return err
}

// Columns returns the runtime's column listing when exposed.
func (s *Session) Columns() (string, bool) {
	if !s.caps.Columns {
		return "", false
	}
	out, err := s.handle.Call(capColumns)
	if err != nil {
		return "", false
	}
	return out, true
}

// SetParam sets a named runtime parameter. Param setters are required
// capabilities: their absence is an explicit error naming the entry point.
func (s *Session) SetParam(name, value string) error {
	if !s.caps.SetParam {
		return missing(capSetParam)
	}
	_, err := s.handle.Call(capSetParam, name, value)
	return err
}

// SetParamFixed64 sets a fixed-point parameter from an int64 raw value.
// The target must be on the fixed-point allow-list.
func (s *Session) SetParamFixed64(target string, raw int64) error {
	if !s.caps.SetParamFixed64 {
		return missing(capSetParamFixed64)
	}
	if !state.IsAllowedPatchTarget(target) {
		return errNotAllowedTarget(target)
	}
	_, err := s.handle.Call(capSetParamFixed64, target, raw)
	return err
}

// SetParamFixed64Str is the string-encoded fixed-point setter.
func (s *Session) SetParamFixed64Str(target, raw string) error {
	if !s.caps.SetParamFixed64Str {
		return missing(capSetParamFixed64Str)
	}
	if !state.IsAllowedPatchTarget(target) {
		return errNotAllowedTarget(target)
	}
	_, err := s.handle.Call(capSetParamFixed64Str, target, raw)
	return err
}

// AddViewPrefix registers a view filter prefix; no-op false when the build
// lacks the capability.
func (s *Session) AddViewPrefix(prefix string) bool {
	if !s.caps.ViewPrefixes {
		return false
	}
	_, err := s.handle.Call(capAddViewPrefix, prefix)
	return err == nil
}

// ClearViewPrefixes removes all view filter prefixes.
func (s *Session) ClearViewPrefixes() bool {
	if !s.caps.ViewPrefixes {
		return false
	}
	_, err := s.handle.Call(capClearViewPrefixes)
	return err == nil
}

// InjectAIAction queues an AI action for the next step; optional.
func (s *Session) InjectAIAction(actionJSON string) bool {
	if !s.caps.AIInjection {
		return false
	}
	_, err := s.handle.Call(capInjectAIAction, actionJSON)
	return err == nil
}

// ClearAIInjections drops queued AI actions; optional.
func (s *Session) ClearAIInjections() bool {
	if !s.caps.AIInjection {
		return false
	}
	_, err := s.handle.Call(capClearAIInjections)
	return err == nil
}

// Reset rewinds the runtime and this session's frame sequencing.
func (s *Session) Reset(keepParams bool) error {
	if !s.caps.Reset {
		return missing(capReset)
	}
	if _, err := s.handle.Call(capReset, keepParams); err != nil {
		return err
	}
	s.rewind()
	return nil
}

// Restore loads a serialized state snapshot and rewinds frame sequencing.
func (s *Session) Restore(stateJSON string) error {
	if !s.caps.Restore {
		return missing(capRestoreState)
	}
	if _, err := s.handle.Call(capRestoreState, stateJSON); err != nil {
		return err
	}
	s.rewind()
	return nil
}

// Step advances the simulation one tick and returns the normalized state,
// stamped with the frame counter and wall-time elapsed since the previous
// step (zero on the first step after construction, Reset or Restore).
func (s *Session) Step() (*state.RuntimeState, error) {
	if !s.caps.StepOne {
		return nil, missing(capStepOne)
	}
	raw, err := s.handle.Call(capStepOne)
	if err != nil {
		return nil, err
	}
	return s.stamp(raw), nil
}

// StepWithInput advances one tick with an input payload.
func (s *Session) StepWithInput(input string) (*state.RuntimeState, error) {
	if !s.caps.StepOneWithInput {
		return nil, missing(capStepOneWithInput)
	}
	raw, err := s.handle.Call(capStepOneWithInput, input)
	if err != nil {
		return nil, err
	}
	return s.stamp(raw), nil
}

// StateHash returns the runtime's current state hash.
func (s *Session) StateHash() (string, error) {
	if !s.caps.StateHash {
		return "", missing(capGetStateHash)
	}
	return s.handle.Call(capGetStateHash)
}

// StateJSON returns the runtime's current raw state without stepping.
func (s *Session) StateJSON() (string, error) {
	if !s.caps.StateJSON {
		return "", missing(capGetStateJSON)
	}
	return s.handle.Call(capGetStateJSON)
}

func (s *Session) rewind() {
	s.frameID = 0
	s.stepped = false
	s.lastStep = time.Time{}
}

func (s *Session) stamp(raw string) *state.RuntimeState {
	st := state.Normalize(raw)
	now := s.now()
	s.frameID++
	st.FrameID = s.frameID
	if s.stepped {
		st.ElapsedMs = float64(now.Sub(s.lastStep)) / float64(time.Millisecond)
	}
	s.stepped = true
	s.lastStep = now
	return st
}
