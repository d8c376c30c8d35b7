package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMA(t *testing.T) {
	input := []float64{1, 2, 3, 4, 5}
	values := EMA(input, 3)
	require.Len(t, values, len(input))

	assert.True(t, math.IsNaN(values[0]))
	assert.True(t, math.IsNaN(values[1]))
	// seeded with the simple average of the first window
	assert.InDelta(t, 2.0, values[2], 1e-9)
	assert.InDelta(t, 3.0, values[3], 1e-9)
	assert.InDelta(t, 4.0, values[4], 1e-9)
}

func TestBB(t *testing.T) {
	input := []float64{2, 4, 6, 8}
	upper, middle, lower := BB(input, 2, 2)
	require.Len(t, upper, 4)
	require.Len(t, middle, 4)
	require.Len(t, lower, 4)

	assert.True(t, math.IsNaN(middle[0]))
	assert.InDelta(t, 3.0, middle[1], 1e-9)
	// population deviation of {2, 4} is 1
	assert.InDelta(t, 5.0, upper[1], 1e-9)
	assert.InDelta(t, 1.0, lower[1], 1e-9)
	assert.InDelta(t, 7.0, middle[3], 1e-9)
}

func TestEnough(t *testing.T) {
	assert.True(t, Enough(20, 20))
	assert.False(t, Enough(19, 20))
	assert.Equal(t, 0, Lookback(1))
	assert.Equal(t, 19, Lookback(20))
}
