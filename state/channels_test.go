package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservations_FlatOnly(t *testing.T) {
	st := Normalize(`{"channels": [{"key": "t"}, {"key": "theta"}], "row": [1.5, 0.2]}`)
	channels, row := Observations(st)
	require.Len(t, channels, 2)
	assert.Equal(t, "t", channels[0].Key)
	assert.Equal(t, []any{1.5, 0.2}, row)
}

func TestObservations_ManifestOrderWins(t *testing.T) {
	st := Normalize(`{
		"channels": [{"key": "a"}, {"key": "b"}],
		"row": [1, 2],
		"observation_manifest": {"nodes": [
			{"name": "b", "dtype": "f64"},
			{"name": "  "},
			{"name": "c", "role": "aux"}
		]}
	}`)
	channels, row := Observations(st)
	// empty-named node dropped, manifest order kept, metadata carried
	require.Len(t, channels, 2)
	assert.Equal(t, ChannelDescriptor{Key: "b", Dtype: "f64"}, channels[0])
	assert.Equal(t, ChannelDescriptor{Key: "c", Role: "aux"}, channels[1])
	// b re-projected from the flat row, c missing yields nil not an error
	assert.Equal(t, 2.0, row[0])
	assert.Nil(t, row[1])
}

func TestObservations_ManifestNameTrimmed(t *testing.T) {
	st := Normalize(`{
		"channels": [{"key": "t"}],
		"row": [3],
		"observation_manifest": {"nodes": [{"name": " t "}]}
	}`)
	channels, row := Observations(st)
	require.Len(t, channels, 1)
	assert.Equal(t, "t", channels[0].Key)
	assert.Equal(t, 3.0, row[0])
}

func TestObservationMap_ShortRow(t *testing.T) {
	st := Normalize(`{"channels": [{"key": "a"}, {"key": "b"}], "row": [1]}`)
	m := ObservationMap(st)
	assert.Equal(t, 1.0, m["a"])
	_, ok := m["b"]
	assert.False(t, ok)
}
