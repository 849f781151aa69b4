package param

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeValidate(t *testing.T) {
	tests := []struct {
		name  string
		r     Range
		valid bool
	}{
		{"Linear", NewRange(-60, 0), true},
		{"Skewed stepped", Range{Min: 0.1, Max: 150, Step: 0.05, Skew: 0.5}, true},
		{"Empty", Range{Min: 1, Max: 1, Skew: 1}, false},
		{"Inverted", Range{Min: 1, Max: 0, Skew: 1}, false},
		{"NaN bound", Range{Min: math.NaN(), Max: 1, Skew: 1}, false},
		{"Negative step", Range{Min: 0, Max: 1, Step: -1, Skew: 1}, false},
		{"Step wider than range", Range{Min: 0, Max: 1, Step: 2, Skew: 1}, false},
		{"Zero skew", Range{Min: 0, Max: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidRange)
			}
		})
	}
}

func TestRangeClampAndSnap(t *testing.T) {
	threshold := Range{Min: -60, Max: 0, Step: 1, Skew: 1}
	assert.Equal(t, -60.0, threshold.Clamp(-100))
	assert.Equal(t, 0.0, threshold.Clamp(6))
	assert.Equal(t, -60.0, threshold.Clamp(math.NaN()))
	assert.Equal(t, -10.0, threshold.Snap(-10.4))
	assert.Equal(t, -11.0, threshold.Snap(-10.6))

	ratio := Range{Min: 1, Max: 25, Step: 0.1, Skew: 0.7}
	assert.Equal(t, 1.0, ratio.Snap(0))
	assert.Equal(t, 1.0, ratio.Snap(-3))
	assert.InDelta(t, 25.0, ratio.Snap(1000), 1e-12)
	assert.InDelta(t, 4.3, ratio.Snap(4.34), 1e-12)

	for _, v := range []float64{-1, 0, 1.05, 3.3333, 21.5, 24.99, 25, math.Inf(1)} {
		once := ratio.Snap(v)
		assert.Equal(t, once, ratio.Snap(once), "snap must be idempotent for %v", v)
		assert.True(t, ratio.Contains(once))
	}
}

func TestRangeSkew(t *testing.T) {
	attack := Range{Min: 0.1, Max: 150, Step: 0.05, Skew: 0.5}

	assert.Equal(t, 0.0, attack.Normalize(0.1))
	assert.Equal(t, 1.0, attack.Normalize(150))
	assert.Equal(t, 0.1, attack.Denormalize(0))
	assert.InDelta(t, 150.0, attack.Denormalize(1), 1e-9)
	assert.Equal(t, 0.1, attack.Denormalize(-2))
	assert.InDelta(t, 150.0, attack.Denormalize(7), 1e-9)

	// The lower half of the values takes more than half of the travel.
	mid := (attack.Min + attack.Max) / 2
	assert.Greater(t, attack.Normalize(mid), 0.5)
	assert.Less(t, attack.Denormalize(0.5), mid)

	// Round trip lands back on the step grid.
	for _, v := range []float64{0.1, 2, 5, 37.5, 149.95} {
		assert.InDelta(t, v, attack.Denormalize(attack.Normalize(v)), 1e-9)
	}

	// Monotone.
	prev := -1.0
	for i := 0; i <= 100; i++ {
		v := attack.Denormalize(float64(i) / 100)
		require.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestRangeLinearNormalize(t *testing.T) {
	r := NewRange(-30, 30)
	assert.Equal(t, 0.5, r.Normalize(0))
	assert.Equal(t, 0.0, r.Denormalize(0.5))
	assert.Equal(t, 0.25, r.Normalize(-15))
}
