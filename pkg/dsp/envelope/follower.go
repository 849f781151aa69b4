// Package envelope provides envelope detectors for dynamics processing
package envelope

import (
	"math"

	"github.com/justyntemme/onecomp/pkg/dsp"
)

// Follower is a branching one-pole peak follower. Rising input is tracked
// with the attack coefficient, falling input with the release coefficient:
//
//	e += alpha * (|x| - e),  alpha = 1 - exp(-1 / (tau * fs))
//
// The envelope is linear amplitude. A Follower is owned by the audio thread.
type Follower struct {
	sampleRate float64

	// Time constants in seconds
	attack  float64
	release float64

	// Coefficients (pre-calculated)
	attackCoef  float64
	releaseCoef float64

	// State
	envelope float64
}

// Minimum time constants, keeping alpha inside (0, 1].
const (
	MinAttack  = 0.00001
	MinRelease = 0.00001
)

// NewFollower creates a new envelope follower
func NewFollower(sampleRate float64) *Follower {
	f := &Follower{
		sampleRate: sampleRate,
		attack:     0.002,
		release:    0.120,
	}
	f.updateCoefficients()
	return f
}

// SetSampleRate changes the sample rate and recomputes coefficients.
func (f *Follower) SetSampleRate(sampleRate float64) {
	if sampleRate <= 0 || sampleRate == f.sampleRate {
		return
	}
	f.sampleRate = sampleRate
	f.updateCoefficients()
}

// SetAttack sets the attack time in seconds
func (f *Follower) SetAttack(seconds float64) {
	f.SetTimeConstants(seconds, f.release)
}

// SetRelease sets the release time in seconds
func (f *Follower) SetRelease(seconds float64) {
	f.SetTimeConstants(f.attack, seconds)
}

// SetTimeConstants sets attack and release together. Coefficients are only
// recomputed when a value actually changed, so this is cheap to call once
// per block with the current parameter snapshot.
func (f *Follower) SetTimeConstants(attack, release float64) {
	attack = math.Max(MinAttack, attack)
	release = math.Max(MinRelease, release)
	if attack == f.attack && release == f.release {
		return
	}
	if attack != f.attack {
		f.attack = attack
		f.attackCoef = coefficient(attack, f.sampleRate)
	}
	if release != f.release {
		f.release = release
		f.releaseCoef = coefficient(release, f.sampleRate)
	}
}

// updateCoefficients recalculates both coefficients
func (f *Follower) updateCoefficients() {
	f.attackCoef = coefficient(f.attack, f.sampleRate)
	f.releaseCoef = coefficient(f.release, f.sampleRate)
}

// coefficient returns 1 - exp(-1/(tau*fs)), always in (0, 1].
func coefficient(tau, sampleRate float64) float64 {
	if tau <= 0 || sampleRate <= 0 {
		return 1
	}
	c := 1.0 - math.Exp(-1.0/(tau*sampleRate))
	if c <= 0 {
		// tau*fs so large that exp rounds to 1
		return math.SmallestNonzeroFloat64
	}
	return c
}

// Next feeds one rectified level (|x| >= 0) and returns the new envelope.
func (f *Follower) Next(level float64) float64 {
	e := f.envelope
	if level > e {
		e += f.attackCoef * (level - e)
	} else {
		e += f.releaseCoef * (level - e)
	}
	e = dsp.FlushDenormal(e)
	f.envelope = e
	return e
}

// Envelope returns the current envelope value
func (f *Follower) Envelope() float64 {
	return f.envelope
}

// AttackCoef returns the cached attack coefficient.
func (f *Follower) AttackCoef() float64 {
	return f.attackCoef
}

// ReleaseCoef returns the cached release coefficient.
func (f *Follower) ReleaseCoef() float64 {
	return f.releaseCoef
}

// Reset returns the envelope to zero
func (f *Follower) Reset() {
	f.envelope = 0
}
