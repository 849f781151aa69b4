// Package analysis provides the level measurements behind the compressor's
// meters.
//
// RMS and LevelDB are the block-level primitives used on the audio thread:
// both are allocation-free and RMS runs on the SIMD dot product.
// PeakMeter keeps a decaying peak with hold; the render command uses it
// for its output report.
//
// Example usage:
//
//	rms := analysis.RMS(block[0])
//	db := analysis.LevelDB(rms) // -100 for silence, clamped at +24
package analysis
