package viz

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	gfn "github.com/panyam/goutils/fn"

	"github.com/madang-lab/madang/state"
)

// Options tune resolution. PreferPatch flips the resource/patch search
// order for callers replaying history, where the most recent patch write
// should win over a stale resource value.
type Options struct {
	PreferPatch bool
}

// Resolve selects the best candidate for one view kind. Precedence:
// view_meta outright, then resources and patch in Options order (patch
// always scanned most-recent-first), then, for graphs only, a synthesized
// one-point fallback from the observation channels.
func Resolve(st *state.RuntimeState, kind Kind, opts Options) (*Resolved, bool) {
	if obj, ok := fromViewMeta(st, kind); ok {
		return finish(kind, obj, SourceViewMeta), true
	}
	lookups := []func(*state.RuntimeState, Kind) (map[string]any, bool){fromResources, fromPatch}
	sources := []Source{SourceResource, SourcePatch}
	if opts.PreferPatch {
		lookups[0], lookups[1] = lookups[1], lookups[0]
		sources[0], sources[1] = sources[1], sources[0]
	}
	for i, lookup := range lookups {
		if obj, ok := lookup(st, kind); ok {
			return finish(kind, obj, sources[i]), true
		}
	}
	if kind == KindGraph {
		if obj, ok := synthesizeGraph(st); ok {
			return finish(kind, obj, SourceObservation), true
		}
	}
	return nil, false
}

// ResolveAll resolves every view kind that has a candidate.
func ResolveAll(st *state.RuntimeState, opts Options) map[Kind]*Resolved {
	out := map[Kind]*Resolved{}
	for _, kind := range Kinds() {
		if r, ok := Resolve(st, kind, opts); ok {
			out[kind] = r
		}
	}
	return out
}

func finish(kind Kind, obj map[string]any, src Source) *Resolved {
	if kind == KindText {
		obj = normalizeText(obj)
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		raw = []byte("{}")
	}
	return &Resolved{Kind: kind, Object: obj, Raw: string(raw), Source: src}
}

// fromViewMeta is the highest-trust source: an explicit, well-shaped entry
// under the kind's own key wins outright, then any shaped value in the map.
func fromViewMeta(st *state.RuntimeState, kind Kind) (map[string]any, bool) {
	if obj, ok := coerce(kind, st.ViewMeta[kind.String()]); ok {
		return obj, true
	}
	for _, key := range sortedKeys(st.ViewMeta) {
		if key == "frame_id" || key == "elapsed_ms" {
			continue
		}
		if obj, ok := coerce(kind, st.ViewMeta[key]); ok {
			return obj, true
		}
	}
	return nil, false
}

// fromResources scans resources.value, hinted key names first, then the
// first value of the right shape. Keys are visited in sorted order so the
// result is deterministic.
func fromResources(st *state.RuntimeState, kind Kind) (map[string]any, bool) {
	keys := sortedKeys(st.Resources.Value)
	for _, key := range keys {
		if !keyHasHint(kind, key) {
			continue
		}
		if obj, ok := coerce(kind, st.Resources.Value[key]); ok {
			return obj, true
		}
	}
	for _, key := range keys {
		if obj, ok := coerce(kind, st.Resources.Value[key]); ok {
			return obj, true
		}
	}
	return nil, false
}

// fromPatch scans the patch sequence from the end so the most recent write
// wins.
func fromPatch(st *state.RuntimeState, kind Kind) (map[string]any, bool) {
	for i := len(st.Patch) - 1; i >= 0; i-- {
		if obj, ok := coerce(kind, st.Patch[i].Value()); ok {
			return obj, true
		}
	}
	return nil, false
}

func keyHasHint(kind Kind, key string) bool {
	lower := strings.ToLower(key)
	for _, hint := range hintSubstrings[kind] {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// normalizeText folds a lines array into joined markdown.
func normalizeText(obj map[string]any) map[string]any {
	if lines, ok := obj["lines"].([]any); ok {
		parts := gfn.Map(lines, func(l any) string { return fmt.Sprint(l) })
		return map[string]any{"markdown": strings.Join(parts, "\n")}
	}
	if _, ok := obj["markdown"]; !ok {
		if s, ok := obj["text"].(string); ok {
			return map[string]any{"markdown": s}
		}
	}
	return obj
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
