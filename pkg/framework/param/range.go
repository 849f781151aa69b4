package param

import (
	"fmt"
	"math"
)

// Range describes the legal values of a parameter. Step of zero means
// continuous. Skew shapes the normalized mapping: values below one give
// the low end of the range more of the control's travel.
type Range struct {
	Min  float64
	Max  float64
	Step float64
	Skew float64
}

// NewRange returns a continuous, linear range.
func NewRange(min, max float64) Range {
	return Range{Min: min, Max: max, Skew: 1}
}

// Validate reports whether the range can be used by a parameter.
func (r Range) Validate() error {
	switch {
	case math.IsNaN(r.Min) || math.IsNaN(r.Max) || !(r.Max > r.Min):
		return fmt.Errorf("%w: min %g max %g", ErrInvalidRange, r.Min, r.Max)
	case !(r.Step >= 0) || r.Step > r.Max-r.Min:
		return fmt.Errorf("%w: step %g", ErrInvalidRange, r.Step)
	case !(r.Skew > 0) || math.IsInf(r.Skew, 0):
		return fmt.Errorf("%w: skew %g", ErrInvalidRange, r.Skew)
	}
	return nil
}

// Clamp limits v to [Min, Max]. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if !(v > r.Min) {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Snap clamps v and rounds it to the nearest step. The result is always a
// fixed point: Snap(Snap(v)) == Snap(v).
func (r Range) Snap(v float64) float64 {
	v = r.Clamp(v)
	if r.Step > 0 {
		v = r.Clamp(r.Min + r.Step*math.Round((v-r.Min)/r.Step))
	}
	return v
}

// Normalize maps a plain value onto [0, 1].
func (r Range) Normalize(v float64) float64 {
	p := (r.Clamp(v) - r.Min) / (r.Max - r.Min)
	if r.Skew != 1 && p > 0 {
		p = math.Pow(p, r.Skew)
	}
	return p
}

// Denormalize maps [0, 1] back onto a legal plain value.
func (r Range) Denormalize(p float64) float64 {
	if !(p > 0) {
		p = 0
	} else if p > 1 {
		p = 1
	}
	if r.Skew != 1 && p > 0 {
		p = math.Exp(math.Log(p) / r.Skew)
	}
	return r.Snap(r.Min + (r.Max-r.Min)*p)
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}
