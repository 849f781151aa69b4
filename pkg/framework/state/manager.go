// Package state persists parameter values as a small XML document:
//
//	<savedParams>
//	  <PARAM id="threshold" value="-20"/>
//	  ...
//	</savedParams>
//
// Unknown ids and unknown elements are ignored on load. Parameters missing
// from the document keep their current value.
package state

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/justyntemme/onecomp/pkg/framework/param"
)

const (
	// RootTag is the document element of a snapshot.
	RootTag = "savedParams"
	// ParamTag is the element holding a single parameter.
	ParamTag = "PARAM"
)

// ErrMalformed is returned when a snapshot cannot be decoded. The registry
// is left untouched.
var ErrMalformed = errors.New("state: malformed snapshot")

type document struct {
	XMLName xml.Name `xml:"savedParams"`
	Params  []entry  `xml:"PARAM"`
}

type entry struct {
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

// Manager handles plugin state saving and loading
type Manager struct {
	registry *param.Registry
}

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{registry: registry}
}

// Save writes the plugin state to a writer
func (m *Manager) Save(w io.Writer) error {
	params := m.registry.All()
	doc := document{Params: make([]entry, 0, len(params))}
	for _, p := range params {
		doc.Params = append(doc.Params, entry{
			ID:    p.ID,
			Value: strconv.FormatFloat(p.Value(), 'g', -1, 64),
		})
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("state: encode: %w", err)
	}
	return enc.Flush()
}

// Snapshot returns the serialized state.
func (m *Manager) Snapshot() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load reads the plugin state from a reader. The whole document is decoded
// and checked before any parameter is written.
func (m *Manager) Load(r io.Reader) error {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	type update struct {
		p *param.Parameter
		v float64
	}
	updates := make([]update, 0, len(doc.Params))
	for _, e := range doc.Params {
		if e.ID == "" {
			return fmt.Errorf("%w: %s without id", ErrMalformed, ParamTag)
		}
		v, err := strconv.ParseFloat(e.Value, 64)
		if err != nil || math.IsNaN(v) {
			return fmt.Errorf("%w: %s value %q", ErrMalformed, e.ID, e.Value)
		}
		// Ignore unknown parameters for forward compatibility
		if p := m.registry.Get(e.ID); p != nil {
			updates = append(updates, update{p: p, v: v})
		}
	}

	for _, u := range updates {
		u.p.Set(u.v)
	}
	return nil
}

// Restore loads a snapshot produced by Snapshot.
func (m *Manager) Restore(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: empty", ErrMalformed)
	}
	return m.Load(bytes.NewReader(data))
}
