package dynamics

import (
	"math"

	"github.com/justyntemme/onecomp/pkg/dsp/gain"
)

// KneeType defines the compressor knee characteristic
type KneeType int

const (
	// KneeHard provides hard knee compression
	KneeHard KneeType = iota
	// KneeSoft provides soft knee compression
	KneeSoft
)

// GainComputer maps a detector level to a target gain using threshold,
// ratio and knee. The static law is
//
//	L <= T: no reduction
//	L >  T: reduction = (L - T) * (1 - 1/R) dB
//
// Gain works on linear levels and stays in the log2 domain, so the hot path
// never calls math.Log or math.Pow.
type GainComputer struct {
	threshold float64  // Threshold in dB
	ratio     float64  // Compression ratio (e.g., 4.0 for 4:1)
	kneeWidth float64  // Knee width in dB (0 for hard knee)
	kneeType  KneeType // Knee type

	// Cached values
	slope         float64 // 1 - 1/ratio
	thresholdLog2 float64 // threshold as log2 amplitude
	kneeLowLin    float64 // linear level where reduction starts
}

// NewGainComputer creates a hard-knee computer at -10 dB, 1:1.
func NewGainComputer() *GainComputer {
	g := &GainComputer{
		threshold: -10.0,
		ratio:     1.0,
		kneeType:  KneeHard,
	}
	g.update()
	return g
}

// SetThreshold sets the compression threshold in dB
func (g *GainComputer) SetThreshold(dB float64) {
	if math.IsNaN(dB) || dB == g.threshold {
		return
	}
	g.threshold = dB
	g.update()
}

// SetRatio sets the compression ratio (1.0 = no compression). Values below
// one and NaN are treated as 1:1.
func (g *GainComputer) SetRatio(ratio float64) {
	if !(ratio >= 1.0) {
		ratio = 1.0
	}
	if ratio == g.ratio {
		return
	}
	g.ratio = ratio
	g.update()
}

// SetKnee sets the knee type and width
func (g *GainComputer) SetKnee(kneeType KneeType, widthDB float64) {
	g.kneeType = kneeType
	g.kneeWidth = math.Max(0.0, widthDB)
	g.update()
}

// Threshold returns the threshold in dB.
func (g *GainComputer) Threshold() float64 { return g.threshold }

// Ratio returns the compression ratio.
func (g *GainComputer) Ratio() float64 { return g.ratio }

func (g *GainComputer) update() {
	g.slope = 1.0 - 1.0/g.ratio
	g.thresholdLog2 = g.threshold * gain.Log2PerDB

	low := g.threshold
	if g.softKnee() {
		low -= g.kneeWidth / 2
	}
	g.kneeLowLin = gain.DbToLinear(low)
}

func (g *GainComputer) softKnee() bool {
	return g.kneeType == KneeSoft && g.kneeWidth > 0
}

// ReductionDB returns the gain reduction in dB (>= 0) for a level in dB.
func (g *GainComputer) ReductionDB(levelDB float64) float64 {
	over := levelDB - g.threshold
	if g.softKnee() {
		half := g.kneeWidth / 2
		switch {
		case over <= -half:
			return 0
		case over < half:
			x := over + half
			return g.slope * x * x / (2 * g.kneeWidth)
		}
		return over * g.slope
	}
	if over <= 0 {
		return 0
	}
	return over * g.slope
}

// Gain returns the linear target gain for a linear detector level.
func (g *GainComputer) Gain(level float64) float64 {
	if level <= g.kneeLowLin || g.slope == 0 {
		return 1
	}
	overLog2 := gain.Log2(level) - g.thresholdLog2
	if g.softKnee() {
		red := g.ReductionDB(g.threshold + overLog2*gain.DBPerLog2)
		return gain.Exp2(-red * gain.Log2PerDB)
	}
	if overLog2 <= 0 {
		return 1
	}
	return gain.Exp2(-overLog2 * g.slope)
}
