// Package meter carries level readings from the audio thread to the editor.
package meter

import (
	"math"
	"sync/atomic"

	"github.com/justyntemme/onecomp/pkg/dsp"
)

// Sample is one set of meter readings in dB.
type Sample struct {
	Input         float64
	GainReduction float64
	Output        float64
}

// Bus holds the latest input, gain reduction and output readings. Publish
// is called once per block by the audio thread and never blocks or
// allocates; readers may see values up to one block stale.
type Bus struct {
	input  atomic.Uint32
	gr     atomic.Uint32
	output atomic.Uint32
}

// NewBus returns a bus reading silence with no reduction.
func NewBus() *Bus {
	b := &Bus{}
	b.Reset()
	return b
}

// MaxReductionDB bounds the gain reduction reading. It is the widest
// difference two clamped levels can have.
const MaxReductionDB = dsp.MeterCeilingDB - dsp.SilenceDB

// Publish stores a new set of readings. Levels are clamped to the meter
// range and the reduction to +/-MaxReductionDB, with NaN reading as 0.
func (b *Bus) Publish(inputDB, grDB, outputDB float64) {
	b.input.Store(encode(inputDB))
	b.gr.Store(math.Float32bits(float32(clampReduction(grDB))))
	b.output.Store(encode(outputDB))
}

// Reset returns the meters to silence.
func (b *Bus) Reset() {
	b.Publish(dsp.SilenceDB, 0, dsp.SilenceDB)
}

// InputLevel returns the input RMS in dB.
func (b *Bus) InputLevel() float64 { return decode(b.input.Load()) }

// GainReduction returns the gain reduction as a positive dB magnitude.
func (b *Bus) GainReduction() float64 { return decode(b.gr.Load()) }

// OutputLevel returns the output RMS in dB.
func (b *Bus) OutputLevel() float64 { return decode(b.output.Load()) }

// Sample reads all three meters.
func (b *Bus) Sample() Sample {
	return Sample{
		Input:         b.InputLevel(),
		GainReduction: b.GainReduction(),
		Output:        b.OutputLevel(),
	}
}

func encode(db float64) uint32 {
	return math.Float32bits(float32(dsp.ClampDB(db)))
}

func clampReduction(db float64) float64 {
	switch {
	case db != db:
		return 0
	case db > MaxReductionDB:
		return MaxReductionDB
	case db < -MaxReductionDB:
		return -MaxReductionDB
	}
	return db
}

func decode(bits uint32) float64 {
	return float64(math.Float32frombits(bits))
}
