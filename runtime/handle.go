// Package runtime is the capability-checked façade over the external madang
// runtime. The runtime is a foreign object (in production a wasm export
// surface reachable from JS); this package probes its entry points once at
// construction and exposes them as a typed session that stamps frame
// sequencing and elapsed-time metadata onto every stepped state.
package runtime

import (
	"errors"
	"fmt"
)

// ErrCapabilityMissing wraps every "not available in this build" failure.
var ErrCapabilityMissing = errors.New("not available in this build")

// Handle is the minimal surface of a foreign runtime object: check whether
// an entry point exists, and call it. Call returns the entry point's raw
// JSON text result ("" for void entry points).
type Handle interface {
	Has(name string) bool
	Call(name string, args ...any) (string, error)
}

// Entry point names of the runtime capability surface.
const (
	capUpdateLogic         = "update_logic"
	capUpdateLogicWithMode = "update_logic_with_mode"
	capSetRNGSeed          = "set_rng_seed"
	capSetInput            = "set_input"
	capColumns             = "columns"
	capSetParam            = "set_param"
	capSetParamFixed64     = "set_param_fixed64"
	capSetParamFixed64Str  = "set_param_fixed64_str"
	capAddViewPrefix       = "add_view_prefix"
	capClearViewPrefixes   = "clear_view_prefixes"
	capInjectAIAction      = "inject_ai_action"
	capClearAIInjections   = "clear_ai_injections"
	capReset               = "reset"
	capRestoreState        = "restore_state"
	capStepOne             = "step_one"
	capStepOneWithInput    = "step_one_with_input"
	capGetStateHash        = "get_state_hash"
	capGetStateJSON        = "get_state_json"
)

// Capabilities records which entry points the runtime build exposes.
// Populated once at session construction; never re-probed per call.
type Capabilities struct {
	UpdateLogic         bool
	UpdateLogicWithMode bool
	SetRNGSeed          bool
	SetInput            bool
	Columns             bool
	SetParam            bool
	SetParamFixed64     bool
	SetParamFixed64Str  bool
	ViewPrefixes        bool
	AIInjection         bool
	Reset               bool
	Restore             bool
	StepOne             bool
	StepOneWithInput    bool
	StateHash           bool
	StateJSON           bool
}

// Probe inspects a handle once and records which entry points exist.
func Probe(h Handle) Capabilities {
	return Capabilities{
		UpdateLogic:         h.Has(capUpdateLogic),
		UpdateLogicWithMode: h.Has(capUpdateLogicWithMode),
		SetRNGSeed:          h.Has(capSetRNGSeed),
		SetInput:            h.Has(capSetInput),
		Columns:             h.Has(capColumns),
		SetParam:            h.Has(capSetParam),
		SetParamFixed64:     h.Has(capSetParamFixed64),
		SetParamFixed64Str:  h.Has(capSetParamFixed64Str),
		ViewPrefixes:        h.Has(capAddViewPrefix) && h.Has(capClearViewPrefixes),
		AIInjection:         h.Has(capInjectAIAction) && h.Has(capClearAIInjections),
		Reset:               h.Has(capReset),
		Restore:             h.Has(capRestoreState),
		StepOne:             h.Has(capStepOne),
		StepOneWithInput:    h.Has(capStepOneWithInput),
		StateHash:           h.Has(capGetStateHash),
		StateJSON:           h.Has(capGetStateJSON),
	}
}

func missing(name string) error {
	return fmt.Errorf("%s: %w", name, ErrCapabilityMissing)
}
