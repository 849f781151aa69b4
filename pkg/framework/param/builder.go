package param

import "math"

// Builder provides a fluent API for creating parameters
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder
func New(id, label string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:    id,
			Label: label,
			rng:   NewRange(0, 1),
			Flags: CanAutomate,
		},
	}
}

// Range sets the min and max values
func (b *Builder) Range(min, max float64) *Builder {
	b.param.rng.Min = min
	b.param.rng.Max = max
	return b
}

// Step sets the snapping interval. Zero means continuous.
func (b *Builder) Step(step float64) *Builder {
	b.param.rng.Step = step
	return b
}

// Skew sets the normalized mapping exponent.
func (b *Builder) Skew(skew float64) *Builder {
	b.param.rng.Skew = skew
	return b
}

// Default sets the default value (in plain range, not normalized)
func (b *Builder) Default(value float64) *Builder {
	b.param.DefaultValue = value
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Flags sets parameter flags
func (b *Builder) Flags(flags uint32) *Builder {
	b.param.Flags = flags
	return b
}

// ReadOnly marks the parameter as read-only
func (b *Builder) ReadOnly() *Builder {
	b.param.Flags |= IsReadOnly
	b.param.Flags &^= CanAutomate
	return b
}

// Hidden marks the parameter as hidden
func (b *Builder) Hidden() *Builder {
	b.param.Flags |= IsHidden
	return b
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter. The default is snapped into the
// range and becomes the initial value.
func (b *Builder) Build() *Parameter {
	p := b.param
	p.DefaultValue = p.rng.Snap(p.DefaultValue)
	p.value.Store(math.Float64bits(p.DefaultValue))
	return p
}
