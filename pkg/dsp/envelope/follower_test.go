package envelope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowerCoefficients(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		attack     float64
		release    float64
	}{
		{"48k defaults", 48000, 0.002, 0.120},
		{"44.1k fast", 44100, 0.0001, 0.0015},
		{"96k slow", 96000, 0.150, 2.0},
		{"tiny tau", 8000, 1e-9, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFollower(tt.sampleRate)
			f.SetTimeConstants(tt.attack, tt.release)

			a := f.AttackCoef()
			r := f.ReleaseCoef()
			assert.Greater(t, a, 0.0)
			assert.LessOrEqual(t, a, 1.0)
			assert.Greater(t, r, 0.0)
			assert.LessOrEqual(t, r, 1.0)

			if tt.attack >= MinAttack {
				want := 1 - math.Exp(-1/(tt.attack*tt.sampleRate))
				assert.InDelta(t, want, a, 1e-12)
			}
		})
	}
}

func TestFollowerAttackReachesTarget(t *testing.T) {
	const fs = 48000.0
	f := NewFollower(fs)
	f.SetTimeConstants(0.005, 0.100)

	// One time constant of a unit step lands at 1 - 1/e.
	n := int(0.005 * fs)
	var e float64
	for i := 0; i < n; i++ {
		e = f.Next(1)
	}
	assert.InDelta(t, 1-1/math.E, e, 0.01)

	for i := 0; i < 20*n; i++ {
		e = f.Next(1)
	}
	assert.InDelta(t, 1.0, e, 1e-6)
}

func TestFollowerReleaseDecays(t *testing.T) {
	const fs = 48000.0
	f := NewFollower(fs)
	f.SetTimeConstants(0.0001, 0.050)

	for i := 0; i < 4800; i++ {
		f.Next(1)
	}
	start := f.Envelope()

	n := int(0.050 * fs)
	for i := 0; i < n; i++ {
		f.Next(0)
	}
	assert.InDelta(t, start/math.E, f.Envelope(), 0.01)
}

func TestFollowerIsMonotoneResponsive(t *testing.T) {
	f := NewFollower(48000)
	f.SetTimeConstants(0.010, 0.200)

	prev := 0.0
	for i := 0; i < 1000; i++ {
		e := f.Next(0.5)
		require.GreaterOrEqual(t, e, prev)
		require.LessOrEqual(t, e, 0.5)
		prev = e
	}
	for i := 0; i < 1000; i++ {
		e := f.Next(0.1)
		require.LessOrEqual(t, e, prev)
		require.GreaterOrEqual(t, e, 0.1)
		prev = e
	}
}

func TestFollowerSkipsUnchangedRecompute(t *testing.T) {
	f := NewFollower(48000)
	f.SetTimeConstants(0.005, 0.1)
	a, r := f.AttackCoef(), f.ReleaseCoef()

	f.SetTimeConstants(0.005, 0.1)
	assert.Equal(t, a, f.AttackCoef())
	assert.Equal(t, r, f.ReleaseCoef())

	f.SetRelease(0.2)
	assert.Equal(t, a, f.AttackCoef())
	assert.Less(t, f.ReleaseCoef(), r)

	f.SetSampleRate(96000)
	assert.Less(t, f.AttackCoef(), a)
}

func TestFollowerFlushesDenormals(t *testing.T) {
	f := NewFollower(48000)
	f.SetTimeConstants(0.0001, 0.0015)
	f.Next(1e-20)

	// Long silence must land exactly on zero, never in the subnormal range.
	for i := 0; i < 48000; i++ {
		f.Next(0)
	}
	assert.Equal(t, 0.0, f.Envelope())
}

func TestFollowerImpulseAndReset(t *testing.T) {
	f := NewFollower(48000)
	f.SetTimeConstants(0.0001, 0.010)

	out := make([]float64, 512)
	for i := range out {
		level := 0.0
		if i == 100 {
			level = 1
		}
		out[i] = f.Next(level)
	}
	// alpha for 0.1 ms at 48 kHz is about 0.188
	assert.InDelta(t, 1-math.Exp(-1/4.8), out[100], 1e-9)
	assert.Less(t, out[511], out[101])

	f.Reset()
	assert.Equal(t, 0.0, f.Envelope())
}
