package param

import "sync/atomic"

// Listener is called with the parameter id and its new plain value.
type Listener func(id string, value float64)

type listener struct {
	id uint64
	fn Listener
}

// ControlSpec is what an editor control needs to draw itself.
type ControlSpec struct {
	ID      string
	Label   string
	Unit    string
	Range   Range
	Default float64
}

// Binding ties an editor control to a parameter. Closing it stops change
// notifications; the control must not be used afterwards.
type Binding struct {
	param  *Parameter
	id     uint64
	closed atomic.Bool
}

// Subscribe registers fn for value changes. fn may be nil for a binding
// that only reads and writes.
func (p *Parameter) Subscribe(fn Listener) *Binding {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	b := &Binding{param: p, id: p.nextID}
	if fn == nil {
		return b
	}

	var cur []listener
	if l := p.listeners.Load(); l != nil {
		cur = *l
	}
	next := make([]listener, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, listener{id: b.id, fn: fn})
	p.listeners.Store(&next)
	return b
}

func (p *Parameter) unsubscribe(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	l := p.listeners.Load()
	if l == nil {
		return
	}
	next := make([]listener, 0, len(*l))
	for _, e := range *l {
		if e.id != id {
			next = append(next, e)
		}
	}
	p.listeners.Store(&next)
}

func (p *Parameter) notify(v float64) {
	l := p.listeners.Load()
	if l == nil {
		return
	}
	for _, e := range *l {
		e.fn(p.ID, v)
	}
}

// Close unsubscribes the binding. It is safe to call more than once.
func (b *Binding) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	b.param.unsubscribe(b.id)
	return nil
}

// Parameter returns the bound parameter.
func (b *Binding) Parameter() *Parameter { return b.param }

// Spec describes the bound parameter.
func (b *Binding) Spec() ControlSpec {
	p := b.param
	return ControlSpec{
		ID:      p.ID,
		Label:   p.Label,
		Unit:    p.Unit,
		Range:   p.rng,
		Default: p.DefaultValue,
	}
}

// Value returns the current plain value.
func (b *Binding) Value() float64 { return b.param.Value() }

// Set writes a plain value and returns what was stored.
func (b *Binding) Set(v float64) float64 { return b.param.Set(v) }

// Normalized returns the control position in [0, 1].
func (b *Binding) Normalized() float64 { return b.param.Normalized() }

// SetNormalized moves the control to a normalized position.
func (b *Binding) SetNormalized(n float64) float64 { return b.param.SetNormalized(n) }

// Text returns the formatted value.
func (b *Binding) Text() string { return b.param.Text() }
