// Package state normalizes the loosely-versioned JSON payload the madang
// runtime emits after each step into one canonical in-memory shape, and
// reconciles the flat observation row against the optional manifest.
package state

import (
	"encoding/json"
	"strings"
)

// Envelope schema tags. The runtime historically emitted either a flat
// object or a v2 wrapper with the same fields nested under "state";
// normalization always yields the flat shape tagged NormalizedSchema.
const (
	EnvelopeV2Schema = "madang.v2"
	NormalizedSchema = "madang.normalized.v1"
)

// ChannelDescriptor describes one observation channel.
type ChannelDescriptor struct {
	Key   string `json:"key"`
	Dtype string `json:"dtype,omitempty"`
	Role  string `json:"role,omitempty"`
	Unit  string `json:"unit,omitempty"`
}

// PatchOp is one object-shaped entry of the runtime's patch sequence.
// Non-object noise in the raw sequence never survives normalization.
type PatchOp map[string]any

// Op returns the operation name, or "".
func (p PatchOp) Op() string {
	s, _ := p["op"].(string)
	return s
}

// Value returns the raw value carried by the op. When the value is itself a
// JSON string, it is decoded one more level; decode failure returns the
// string as-is.
func (p PatchOp) Value() any {
	v, ok := p["value"]
	if !ok {
		return nil
	}
	if s, ok := v.(string); ok {
		t := strings.TrimSpace(s)
		if strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
			var decoded any
			if err := json.Unmarshal([]byte(t), &decoded); err == nil {
				return decoded
			}
		}
	}
	return v
}

// Resources splits runtime resources into plain values and component-owned
// entries.
type Resources struct {
	Value     map[string]any `json:"value"`
	Component map[string]any `json:"component"`
}

// RuntimeState is the canonical post-normalization state shape. Every field
// is a non-nil empty container when absent from the source payload, so
// downstream code never branches on missing containers.
type RuntimeState struct {
	Schema              string              `json:"schema"`
	Channels            []ChannelDescriptor `json:"channels"`
	Row                 []any               `json:"row"`
	Patch               []PatchOp           `json:"patch"`
	Resources           Resources           `json:"resources"`
	Streams             map[string]any      `json:"streams"`
	ViewMeta            map[string]any      `json:"view_meta"`
	ObservationManifest map[string]any      `json:"observation_manifest"`

	// Stamped by the VM session, not part of the runtime envelope.
	FrameID   int64   `json:"frame_id,omitempty"`
	ElapsedMs float64 `json:"elapsed_ms,omitempty"`
}

// Empty returns a default-shaped state with all containers allocated.
func Empty() *RuntimeState {
	return &RuntimeState{
		Schema:              NormalizedSchema,
		Channels:            []ChannelDescriptor{},
		Row:                 []any{},
		Patch:               []PatchOp{},
		Resources:           Resources{Value: map[string]any{}, Component: map[string]any{}},
		Streams:             map[string]any{},
		ViewMeta:            map[string]any{},
		ObservationManifest: map[string]any{},
	}
}

// Normalize accepts either a raw JSON string or an already-decoded value
// and returns the canonical state. A string is parsed only when it looks
// like an object or array literal; parse failure, or any other malformed
// input, yields the default empty state rather than an error.
func Normalize(raw any) *RuntimeState {
	obj := decode(raw)
	if obj == nil {
		return Empty()
	}
	if schema, _ := obj["schema"].(string); schema == EnvelopeV2Schema {
		if inner, ok := obj["state"].(map[string]any); ok {
			obj = inner
		}
	}
	st := Empty()
	st.Channels = normalizeChannels(obj["channels"])
	if row, ok := obj["row"].([]any); ok {
		st.Row = row
	}
	st.Patch = normalizePatch(obj["patch"])
	if res, ok := obj["resources"].(map[string]any); ok {
		if v, ok := res["value"].(map[string]any); ok {
			st.Resources.Value = v
		}
		if c, ok := res["component"].(map[string]any); ok {
			st.Resources.Component = c
		}
	}
	if m, ok := obj["streams"].(map[string]any); ok {
		st.Streams = m
	}
	if m, ok := obj["view_meta"].(map[string]any); ok {
		st.ViewMeta = m
	}
	if m, ok := obj["observation_manifest"].(map[string]any); ok {
		st.ObservationManifest = m
	}
	return st
}

func decode(raw any) map[string]any {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		t := strings.TrimSpace(v)
		if !strings.HasPrefix(t, "{") && !strings.HasPrefix(t, "[") {
			return nil
		}
		var decoded any
		if err := json.Unmarshal([]byte(t), &decoded); err != nil {
			return nil
		}
		obj, _ := decoded.(map[string]any)
		return obj
	case []byte:
		return decode(string(v))
	case map[string]any:
		return v
	case *RuntimeState:
		// already canonical; re-encode through the same path for safety
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return decode(string(b))
	default:
		return nil
	}
}

func normalizeChannels(raw any) []ChannelDescriptor {
	list, ok := raw.([]any)
	if !ok {
		return []ChannelDescriptor{}
	}
	out := make([]ChannelDescriptor, 0, len(list))
	for _, entry := range list {
		switch v := entry.(type) {
		case string:
			out = append(out, ChannelDescriptor{Key: v})
		case map[string]any:
			cd := ChannelDescriptor{}
			cd.Key, _ = v["key"].(string)
			cd.Dtype, _ = v["dtype"].(string)
			cd.Role, _ = v["role"].(string)
			cd.Unit, _ = v["unit"].(string)
			out = append(out, cd)
		}
	}
	return out
}

// normalizePatch keeps only object-shaped entries; everything else is
// protocol noise and is dropped without a diagnostic.
func normalizePatch(raw any) []PatchOp {
	list, ok := raw.([]any)
	if !ok {
		return []PatchOp{}
	}
	out := make([]PatchOp, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			out = append(out, PatchOp(m))
		}
	}
	return out
}
