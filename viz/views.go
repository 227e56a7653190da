// Package viz resolves the structured views (graph, 2-D scene, table,
// text) a host can render out of a normalized runtime state. Candidates are
// shape-sniffed with one predicate per kind and selected through an
// explicit precedence list, so the rules stay independently testable.
package viz

// Kind is the tagged discriminator for the four structured view shapes.
type Kind int

const (
	KindGraph Kind = iota
	KindScene2D
	KindTable
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindGraph:
		return "graph"
	case KindScene2D:
		return "space2d"
	case KindTable:
		return "table"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Kinds lists all view kinds in resolution order.
func Kinds() []Kind {
	return []Kind{KindGraph, KindScene2D, KindTable, KindText}
}

// Source tags where a resolved view came from.
type Source string

const (
	SourceViewMeta    Source = "view_meta"
	SourceResource    Source = "resource"
	SourcePatch       Source = "patch"
	SourceObservation Source = "observation-fallback"
)

// Resolved is the winning candidate for one view kind: the object itself,
// its serialized raw form, and its provenance. It is a read view over the
// normalized state and is replaced wholesale on the next resolution.
type Resolved struct {
	Kind   Kind           `json:"kind"`
	Object map[string]any `json:"object"`
	Raw    string         `json:"raw"`
	Source Source         `json:"source"`
}

// hintSubstrings favours resource keys whose name suggests the kind before
// falling back to the first value of the right shape.
var hintSubstrings = map[Kind][]string{
	KindGraph:   {"graph"},
	KindScene2D: {"space2d", "2d"},
	KindTable:   {"table"},
	KindText:    {"text", "설명"},
}

// isShaped reports whether v is a well-shaped candidate object for kind.
func isShaped(kind Kind, v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	switch kind {
	case KindGraph:
		_, ok := obj["series"].([]any)
		return ok
	case KindScene2D:
		for _, key := range []string{"points", "shapes", "drawlist"} {
			if _, ok := obj[key]; ok {
				return true
			}
		}
		return false
	case KindTable:
		_, cols := obj["columns"].([]any)
		_, rows := obj["rows"].([]any)
		return cols && rows
	case KindText:
		for _, key := range []string{"markdown", "text", "lines"} {
			if _, ok := obj[key]; ok {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// coerce turns loose candidate values into a candidate object. Only text
// accepts non-object values: a bare string becomes markdown, and an object
// exposing a lines array is normalized into joined markdown elsewhere.
func coerce(kind Kind, v any) (map[string]any, bool) {
	if kind == KindText {
		if s, ok := v.(string); ok && s != "" {
			return map[string]any{"markdown": s}, true
		}
	}
	if isShaped(kind, v) {
		return v.(map[string]any), true
	}
	return nil, false
}
