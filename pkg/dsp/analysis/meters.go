package analysis

import (
	"math"

	"github.com/justyntemme/onecomp/pkg/dsp"
	"github.com/tphakala/simd/f32"
)

// RMS calculates the root mean square of a buffer - no allocations
func RMS(buffer []float32) float64 {
	if len(buffer) == 0 {
		return 0
	}
	sum := f32.DotProductUnsafe(buffer, buffer)
	return math.Sqrt(float64(sum) / float64(len(buffer)))
}

// LevelDB converts a linear level to meter dB. Silence reads as
// dsp.SilenceDB and the result never leaves the meter range.
func LevelDB(level float64) float64 {
	if !(level > 0) {
		return dsp.SilenceDB
	}
	return dsp.ClampDB(20.0 * math.Log10(level))
}

// PeakMeter measures peak signal levels with hold and decay. It is not safe
// for concurrent use.
type PeakMeter struct {
	peak       float64
	hold       float64
	holdTime   float64
	decayRate  float64
	sampleRate float64
	holdCount  int
}

// NewPeakMeter creates a new peak meter
func NewPeakMeter(sampleRate float64) *PeakMeter {
	return &PeakMeter{
		sampleRate: sampleRate,
		holdTime:   3.0,  // 3 seconds default
		decayRate:  20.0, // 20 dB/second
	}
}

// SetHoldTime sets the peak hold time in seconds
func (pm *PeakMeter) SetHoldTime(seconds float64) {
	pm.holdTime = seconds
}

// SetDecayRate sets the peak decay rate in dB/second
func (pm *PeakMeter) SetDecayRate(dbPerSecond float64) {
	pm.decayRate = dbPerSecond
}

// Process updates the peak meter with new samples
func (pm *PeakMeter) Process(samples []float32) {
	blockPeak := float64(dsp.Peak(samples))

	decayPerSample := pm.decayRate / pm.sampleRate / 20.0 * math.Ln10
	pm.peak *= math.Exp(-decayPerSample * float64(len(samples)))
	if blockPeak > pm.peak {
		pm.peak = blockPeak
	}

	if blockPeak > pm.hold {
		pm.hold = blockPeak
		pm.holdCount = int(pm.holdTime * pm.sampleRate)
	} else {
		pm.holdCount -= len(samples)
		if pm.holdCount <= 0 {
			pm.hold = pm.peak
			pm.holdCount = 0
		}
	}
}

// PeakDB returns the current peak level in meter dB
func (pm *PeakMeter) PeakDB() float64 {
	return LevelDB(pm.peak)
}

// HoldDB returns the held peak level in meter dB
func (pm *PeakMeter) HoldDB() float64 {
	return LevelDB(pm.hold)
}

// Reset clears the peak and hold values
func (pm *PeakMeter) Reset() {
	pm.peak = 0
	pm.hold = 0
	pm.holdCount = 0
}
