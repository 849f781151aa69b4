// Package gain provides amplitude and gain-related DSP operations.
package gain

import (
	"math"

	"github.com/tphakala/simd/f32"
)

// Constants for dB conversion
const (
	// MinDB is the minimum dB value (effectively -infinity)
	MinDB = -200.0
)

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// ApplyBuffer applies gain to an entire buffer in-place.
// Unity gain is a no-op. No allocations.
func ApplyBuffer(buffer []float32, gain float32) {
	if gain == 1 || len(buffer) == 0 {
		return
	}
	f32.Scale(buffer, buffer, gain)
}
