package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampDB(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"In range", -12.5, -12.5},
		{"Floor", -100, -100},
		{"Below floor", -180, SilenceDB},
		{"Negative infinity", math.Inf(-1), SilenceDB},
		{"NaN", math.NaN(), SilenceDB},
		{"Above ceiling", 31, MeterCeilingDB},
		{"Positive infinity", math.Inf(1), MeterCeilingDB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampDB(tt.in))
		})
	}
}

func TestSanitize(t *testing.T) {
	sub := math.Float32frombits(0x00000001)
	buf := []float32{0.5, float32(math.NaN()), float32(math.Inf(1)), sub, -0.25, float32(math.Inf(-1)), 1e-30}

	fixed := Sanitize(buf)

	assert.Equal(t, 4, fixed)
	assert.Equal(t, []float32{0.5, 0, 0, 0, -0.25, 0, 1e-30}, buf)
}

func TestFlushDenormal(t *testing.T) {
	assert.Equal(t, 0.0, FlushDenormal(1e-31))
	assert.Equal(t, 0.0, FlushDenormal(-1e-35))
	assert.Equal(t, 1e-20, FlushDenormal(1e-20))
}

func TestPeak(t *testing.T) {
	assert.Equal(t, float32(0.75), Peak([]float32{0.1, -0.75, 0.5}))
	assert.Equal(t, float32(0), Peak(nil))
}
