package analysis

import (
	"math"
	"testing"

	"github.com/justyntemme/onecomp/pkg/dsp"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

func TestRMSMatchesReference(t *testing.T) {
	const n = 1024
	buf := make([]float32, n)
	ref := make([]float64, n)
	for i := range buf {
		v := 0.5 * math.Sin(2*math.Pi*float64(i)/64)
		buf[i] = float32(v)
		ref[i] = float64(buf[i])
	}

	want := math.Sqrt(floats.Dot(ref, ref) / n)
	assert.InDelta(t, want, RMS(buf), 1e-5)
	assert.InDelta(t, 0.5/math.Sqrt2, RMS(buf), 1e-4)
}

func TestRMSEmptyAndSilent(t *testing.T) {
	assert.Equal(t, 0.0, RMS(nil))
	assert.Equal(t, 0.0, RMS(make([]float32, 256)))
}

func TestLevelDB(t *testing.T) {
	tests := []struct {
		name  string
		level float64
		want  float64
	}{
		{"Silence", 0, dsp.SilenceDB},
		{"NaN", math.NaN(), dsp.SilenceDB},
		{"Full scale", 1, 0},
		{"Half", 0.5, -6.0206},
		{"Below floor", 1e-7, dsp.SilenceDB},
		{"Above ceiling", 100, dsp.MeterCeilingDB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LevelDB(tt.level), 1e-3)
		})
	}
}

func TestRMSNoAllocations(t *testing.T) {
	buf := make([]float32, 1024)
	allocs := testing.AllocsPerRun(100, func() {
		_ = LevelDB(RMS(buf))
	})
	assert.Zero(t, allocs)
}

func TestPeakMeterHoldAndDecay(t *testing.T) {
	pm := NewPeakMeter(48000)
	pm.SetHoldTime(0.01)
	pm.SetDecayRate(60)

	block := make([]float32, 480)
	block[10] = 0.5
	pm.Process(block)
	assert.InDelta(t, -6.02, pm.PeakDB(), 0.01)
	assert.InDelta(t, -6.02, pm.HoldDB(), 0.01)

	silent := make([]float32, 4800)
	pm.Process(silent) // 100 ms at 60 dB/s
	assert.InDelta(t, -12.02, pm.PeakDB(), 0.05)
	assert.InDelta(t, pm.PeakDB(), pm.HoldDB(), 1e-9)

	pm.Reset()
	assert.Equal(t, dsp.SilenceDB, pm.PeakDB())
}
