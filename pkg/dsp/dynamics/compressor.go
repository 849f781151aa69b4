// Package dynamics provides the single-band feed-forward compressor: a
// linked peak detector driving a static gain computer.
package dynamics

import (
	"github.com/justyntemme/onecomp/pkg/dsp/envelope"
	"github.com/justyntemme/onecomp/pkg/dsp/gain"
)

// Compressor implements a feed-forward compressor. The detector is linked:
// every frame feeds the largest rectified sample across channels into one
// envelope follower, and the resulting gain is applied to all channels.
type Compressor struct {
	sampleRate float64

	detector *envelope.Follower
	computer *GainComputer

	// State
	lastGain float64 // For metering
}

// NewCompressor creates a new compressor
func NewCompressor(sampleRate float64) *Compressor {
	return &Compressor{
		sampleRate: sampleRate,
		detector:   envelope.NewFollower(sampleRate),
		computer:   NewGainComputer(),
		lastGain:   1,
	}
}

// SetSampleRate updates the detector's sample rate.
func (c *Compressor) SetSampleRate(sampleRate float64) {
	c.sampleRate = sampleRate
	c.detector.SetSampleRate(sampleRate)
}

// SetThreshold sets the compression threshold in dB
func (c *Compressor) SetThreshold(dB float64) {
	c.computer.SetThreshold(dB)
}

// SetRatio sets the compression ratio
func (c *Compressor) SetRatio(ratio float64) {
	c.computer.SetRatio(ratio)
}

// SetAttack sets the attack time in seconds
func (c *Compressor) SetAttack(seconds float64) {
	c.detector.SetAttack(seconds)
}

// SetRelease sets the release time in seconds
func (c *Compressor) SetRelease(seconds float64) {
	c.detector.SetRelease(seconds)
}

// SetTimeConstants sets attack and release in seconds. Coefficients are
// only recomputed when a value changed.
func (c *Compressor) SetTimeConstants(attack, release float64) {
	c.detector.SetTimeConstants(attack, release)
}

// SetKnee sets the knee type and width
func (c *Compressor) SetKnee(kneeType KneeType, widthDB float64) {
	c.computer.SetKnee(kneeType, widthDB)
}

// Computer exposes the gain computer.
func (c *Compressor) Computer() *GainComputer {
	return c.computer
}

// Detector exposes the envelope follower.
func (c *Compressor) Detector() *envelope.Follower {
	return c.detector
}

// GainReduction returns the reduction of the last processed sample in dB
// (positive magnitude).
func (c *Compressor) GainReduction() float64 {
	if c.lastGain >= 1 {
		return 0
	}
	return -gain.LinearToDb(c.lastGain)
}

// ComputeGains runs the linked detector over the first n frames of channels
// and writes one target gain per frame into gains. No allocations.
func (c *Compressor) ComputeGains(channels [][]float32, n int, gains []float32) {
	g := c.lastGain
	for i := 0; i < n; i++ {
		var level float32
		for _, ch := range channels {
			s := ch[i]
			if s < 0 {
				s = -s
			}
			if s > level {
				level = s
			}
		}
		g = c.computer.Gain(c.detector.Next(float64(level)))
		gains[i] = float32(g)
	}
	c.lastGain = g
}

// ApplyGains multiplies every channel by the per-frame gains. No allocations.
func ApplyGains(channels [][]float32, n int, gains []float32) {
	for _, ch := range channels {
		ch = ch[:n]
		for i := range ch {
			ch[i] *= gains[i]
		}
	}
}

// Reset resets the compressor state
func (c *Compressor) Reset() {
	c.detector.Reset()
	c.lastGain = 1
}
