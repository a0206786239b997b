package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	ds, err := New(
		Column{Name: "DEPT", Values: []float64{100, 101, 102, 103}},
		[]Column{
			{Name: "GR", Values: []float64{40, math.NaN(), 60, 50}},
			{Name: "EMPTY", Values: []float64{math.NaN(), math.NaN(), math.NaN(), math.NaN()}},
		},
	)
	require.NoError(t, err)

	summaries, err := Describe(ds)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "DEPT", summaries[0].Name)
	assert.Equal(t, 4, summaries[0].Count)

	gr := summaries[1]
	assert.Equal(t, 3, gr.Count)
	assert.Equal(t, 1, gr.Missing)
	assert.Equal(t, 40.0, gr.Min)
	assert.Equal(t, 60.0, gr.Max)
	assert.InDelta(t, 50.0, gr.Mean, 1e-9)
	assert.Equal(t, 50.0, gr.Median)

	empty := summaries[2]
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, 4, empty.Missing)
	assert.Zero(t, empty.Max)
}
