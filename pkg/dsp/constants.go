// Package dsp provides digital signal processing utilities and algorithms.
package dsp

// Common audio constants used throughout the DSP packages and the processor.
const (
	// Meter range. Levels below the floor are reported as silence.
	SilenceDB      = -100.0
	MeterCeilingDB = 24.0

	UnityGain = 1.0 // Unity gain (0 dB)

	// Envelope values below this are flushed to zero.
	SmallFloat64 = 1e-30

	// Smallest positive normal float32. Anything below is subnormal.
	MinNormalFloat32 = 1.1754943508222875e-38

	// Channel counts
	Mono   = 1
	Stereo = 2

	// Common sample rates
	SampleRate44k1 = 44100.0
	SampleRate48k  = 48000.0
	SampleRate96k  = 96000.0

	// Buffer sizes
	MinBufferSize     = 1
	DefaultBufferSize = 512
	MaxBufferSize     = 8192
)

// ClampDB limits a dB reading to the meter range.
func ClampDB(db float64) float64 {
	if db != db || db < SilenceDB { // NaN reads as silence
		return SilenceDB
	}
	if db > MeterCeilingDB {
		return MeterCeilingDB
	}
	return db
}
