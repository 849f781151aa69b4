package param

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
)

// Parameter is a named, ranged value shared between the host, the editor
// and the audio thread. Reads are a single atomic load and never block.
// Writes clamp and snap to the range before storing.
type Parameter struct {
	ID           string
	Label        string
	Unit         string
	DefaultValue float64
	Flags        uint32

	// Fixed by the builder.
	rng Range

	// Plain value as float64 bits
	value atomic.Uint64

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)

	mu        sync.Mutex
	listeners atomic.Pointer[[]listener]
	nextID    uint64
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
	IsReadOnly  uint32 = 1 << 1
	IsHidden    uint32 = 1 << 4
)

// Range returns the parameter's range. It cannot change after Build.
func (p *Parameter) Range() Range {
	return p.rng
}

// Value returns the current plain value.
func (p *Parameter) Value() float64 {
	return math.Float64frombits(p.value.Load())
}

// Set stores v after clamping and snapping it to the range and returns the
// stored value. Listeners run on the calling goroutine when the value
// changes.
func (p *Parameter) Set(v float64) float64 {
	v = p.rng.Snap(v)
	old := p.value.Swap(math.Float64bits(v))
	if old != math.Float64bits(v) {
		p.notify(v)
	}
	return v
}

// Normalized returns the current value mapped onto [0, 1].
func (p *Parameter) Normalized() float64 {
	return p.rng.Normalize(p.Value())
}

// SetNormalized sets the value from a normalized position.
func (p *Parameter) SetNormalized(n float64) float64 {
	return p.Set(p.rng.Denormalize(n))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.Set(p.DefaultValue)
}

// SetFormatter sets custom value formatting
func (p *Parameter) SetFormatter(format func(float64) string, parse func(string) (float64, error)) {
	p.formatFunc = format
	p.parseFunc = parse
}

// Text returns the current value formatted for display.
func (p *Parameter) Text() string {
	return p.FormatValue(p.Value())
}

// FormatValue returns a plain value formatted for display
func (p *Parameter) FormatValue(plain float64) string {
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	if p.rng.Step >= 1 {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// ParseValue parses display text into a legal plain value.
func (p *Parameter) ParseValue(str string) (float64, error) {
	var (
		plain float64
		err   error
	)
	if p.parseFunc != nil {
		plain, err = p.parseFunc(str)
	} else {
		plain, err = strconv.ParseFloat(str, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("param %s: %w", p.ID, err)
	}
	return p.rng.Snap(plain), nil
}

// SetText parses str and stores the result.
func (p *Parameter) SetText(str string) error {
	v, err := p.ParseValue(str)
	if err != nil {
		return err
	}
	p.Set(v)
	return nil
}
