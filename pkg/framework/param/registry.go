package param

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	// ErrDuplicateID is returned when registering an id twice.
	ErrDuplicateID = errors.New("param: duplicate parameter id")
	// ErrUnknownID is returned for ids that were never registered.
	ErrUnknownID = errors.New("param: unknown parameter id")
	// ErrInvalidRange is returned for ranges a parameter cannot use.
	ErrInvalidRange = errors.New("param: invalid range")
)

type table struct {
	byID  map[string]*Parameter
	order []*Parameter
}

// Registry manages plugin parameters. Lookups read an immutable table
// through an atomic pointer and never block; registration copies the table.
type Registry struct {
	mu    sync.Mutex
	table atomic.Pointer[table]
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	r := &Registry{}
	r.table.Store(&table{byID: map[string]*Parameter{}})
	return r
}

// Register adds parameters in order. Nothing is added if any of them has
// an invalid range or an id that is already taken.
func (r *Registry) Register(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.table.Load()
	next := &table{
		byID:  make(map[string]*Parameter, len(cur.byID)+len(params)),
		order: make([]*Parameter, len(cur.order), len(cur.order)+len(params)),
	}
	for id, p := range cur.byID {
		next.byID[id] = p
	}
	copy(next.order, cur.order)

	for _, p := range params {
		if err := p.rng.Validate(); err != nil {
			return fmt.Errorf("param %s: %w", p.ID, err)
		}
		if _, exists := next.byID[p.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		next.byID[p.ID] = p
		next.order = append(next.order, p)
	}

	r.table.Store(next)
	return nil
}

// Get retrieves a parameter by id, or nil.
func (r *Registry) Get(id string) *Parameter {
	return r.table.Load().byID[id]
}

// Lookup retrieves a parameter by id.
func (r *Registry) Lookup(id string) (*Parameter, error) {
	if p := r.Get(id); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownID, id)
}

// Value returns the plain value of a parameter.
func (r *Registry) Value(id string) (float64, error) {
	p, err := r.Lookup(id)
	if err != nil {
		return 0, err
	}
	return p.Value(), nil
}

// Set writes a plain value and returns what was stored.
func (r *Registry) Set(id string, v float64) (float64, error) {
	p, err := r.Lookup(id)
	if err != nil {
		return 0, err
	}
	return p.Set(v), nil
}

// SetNormalized writes a normalized value and returns the stored plain
// value.
func (r *Registry) SetNormalized(id string, n float64) (float64, error) {
	p, err := r.Lookup(id)
	if err != nil {
		return 0, err
	}
	return p.SetNormalized(n), nil
}

// Bind subscribes fn to a parameter's changes.
func (r *Registry) Bind(id string, fn Listener) (*Binding, error) {
	p, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	return p.Subscribe(fn), nil
}

// GetByIndex retrieves a parameter by registration index
func (r *Registry) GetByIndex(index int) *Parameter {
	order := r.table.Load().order
	if index < 0 || index >= len(order) {
		return nil
	}
	return order[index]
}

// Count returns the number of parameters
func (r *Registry) Count() int {
	return len(r.table.Load().order)
}

// All returns all parameters in registration order
func (r *Registry) All() []*Parameter {
	order := r.table.Load().order
	result := make([]*Parameter, len(order))
	copy(result, order)
	return result
}

// ResetAll restores every parameter to its default.
func (r *Registry) ResetAll() {
	for _, p := range r.table.Load().order {
		p.Reset()
	}
}
