package state

import "strings"

// Observations reconciles the flat channel/row pair against the optional
// observation manifest. Without a manifest the flat channels and row are
// returned as-is. When observation_manifest.nodes is present it wins for
// both ordering and metadata: each node becomes the canonical descriptor
// (names trimmed, empty names dropped) and the row is re-projected into
// manifest order by key lookup; keys missing from the flat row yield nil.
func Observations(st *RuntimeState) ([]ChannelDescriptor, []any) {
	flat := ObservationMap(st)
	nodes, ok := st.ObservationManifest["nodes"].([]any)
	if !ok || len(nodes) == 0 {
		row := make([]any, len(st.Channels))
		for i, ch := range st.Channels {
			row[i] = flat[ch.Key]
		}
		return st.Channels, row
	}
	var channels []ChannelDescriptor
	var row []any
	for _, entry := range nodes {
		node, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := node["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cd := ChannelDescriptor{Key: name}
		cd.Dtype, _ = node["dtype"].(string)
		cd.Role, _ = node["role"].(string)
		cd.Unit, _ = node["unit"].(string)
		channels = append(channels, cd)
		row = append(row, flat[name])
	}
	return channels, row
}

// ObservationMap zips the flat channels against the row by position.
func ObservationMap(st *RuntimeState) map[string]any {
	m := make(map[string]any, len(st.Channels))
	for i, ch := range st.Channels {
		if ch.Key == "" {
			continue
		}
		if i < len(st.Row) {
			m[ch.Key] = st.Row[i]
		}
	}
	return m
}
