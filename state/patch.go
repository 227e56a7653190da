package state

import "sort"

// allowedPatchTargets is the closed set of dotted target names that may be
// bound to a numeric patch tag: axis, view and sample bounds for the graph
// and 2-D scene views. Layers applying patches must reject anything else.
var allowedPatchTargets = map[string]struct{}{
	"graph.axis.x_min":   {},
	"graph.axis.x_max":   {},
	"graph.axis.y_min":   {},
	"graph.axis.y_max":   {},
	"graph.samples.max":  {},
	"space2d.view.x_min": {},
	"space2d.view.x_max": {},
	"space2d.view.y_min": {},
	"space2d.view.y_max": {},
}

// IsAllowedPatchTarget reports whether a dotted target name is in the
// fixed-point patch allow-list.
func IsAllowedPatchTarget(name string) bool {
	_, ok := allowedPatchTargets[name]
	return ok
}

// AllowedPatchTargets returns the allow-list as a sorted slice, for display.
func AllowedPatchTargets() []string {
	out := make([]string, 0, len(allowedPatchTargets))
	for k := range allowedPatchTargets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
