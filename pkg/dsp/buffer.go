package dsp

import "math"

// Buffer utilities for common audio operations

// Clear zeroes a buffer - no allocations
func Clear(buffer []float32) {
	for i := range buffer {
		buffer[i] = 0
	}
}

// Sanitize replaces NaN and infinite samples with silence and flushes
// subnormal samples to zero. Returns the number of samples it rewrote.
// No allocations.
func Sanitize(buffer []float32) int {
	fixed := 0
	for i, s := range buffer {
		bits := math.Float32bits(s)
		exp := bits & 0x7f800000
		switch {
		case exp == 0x7f800000: // NaN or Inf
			buffer[i] = 0
			fixed++
		case exp == 0 && bits&0x007fffff != 0: // subnormal
			buffer[i] = 0
			fixed++
		}
	}
	return fixed
}

// FlushDenormal snaps tiny state values to zero so recursive filters
// never decay into the subnormal range.
func FlushDenormal(v float64) float64 {
	if v < SmallFloat64 && v > -SmallFloat64 {
		return 0
	}
	return v
}

// Peak finds the maximum absolute value in a buffer
func Peak(buffer []float32) float32 {
	peak := float32(0)
	for _, sample := range buffer {
		if sample < 0 {
			sample = -sample
		}
		if sample > peak {
			peak = sample
		}
	}
	return peak
}
