package viz

import (
	"encoding/json"
	"strings"

	"github.com/madang-lab/madang/state"
)

// timeChannelNames are the recognized keys of a time-like observation
// channel, matched case- and whitespace-insensitively.
var timeChannelNames = map[string]struct{}{
	"t": {}, "time": {}, "시간": {}, "tick": {}, "프레임수": {},
}

func isTimeChannel(key string) bool {
	_, ok := timeChannelNames[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// synthesizeGraph builds a degenerate one-point graph from the observation
// channels when no explicit graph candidate exists anywhere in the state:
// x from the time-like channel, y from the first other numeric channel,
// axis bounds one unit around the point. Returns false when there is no
// numeric y candidate.
func synthesizeGraph(st *state.RuntimeState) (map[string]any, bool) {
	channels, row := state.Observations(st)
	var x float64
	haveX := false
	for i, ch := range channels {
		if !isTimeChannel(ch.Key) || i >= len(row) {
			continue
		}
		if v, ok := toFloat(row[i]); ok {
			x, haveX = v, true
			break
		}
	}
	if !haveX {
		return nil, false
	}
	for i, ch := range channels {
		if isTimeChannel(ch.Key) || i >= len(row) {
			continue
		}
		y, ok := toFloat(row[i])
		if !ok {
			continue
		}
		return map[string]any{
			"series": []any{
				map[string]any{
					"name":   ch.Key,
					"points": []any{map[string]any{"x": x, "y": y}},
				},
			},
			"axis": map[string]any{
				"x_min": x - 1, "x_max": x + 1,
				"y_min": y - 1, "y_max": y + 1,
			},
		}, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
