package onecomp

import (
	"github.com/justyntemme/onecomp/pkg/framework/meter"
	"github.com/justyntemme/onecomp/pkg/framework/param"
	"github.com/justyntemme/onecomp/pkg/framework/plugin"
)

// PluginInfo returns the OneComp metadata.
func PluginInfo() plugin.Info {
	return plugin.Info{
		ID:       "com.justyntemme.onecomp",
		Name:     "OneComp",
		Version:  "1.0.0",
		Vendor:   "justyntemme",
		Category: "Fx|Dynamics",
		Programs: []string{"Default"},
	}
}

// GetInputLevel returns the input RMS of the last block in dB after the
// input trim. Silence reads as -100.
func (p *Processor) GetInputLevel() float64 {
	return p.meters.InputLevel()
}

// GetGainReduction returns the reduction of the last block as a positive
// dB magnitude: input level minus the level before makeup gain. It does
// not depend on the makeup gain.
func (p *Processor) GetGainReduction() float64 {
	return p.meters.GainReduction()
}

// GetOutputLevel returns the output RMS of the last block in dB, after
// makeup gain.
func (p *Processor) GetOutputLevel() float64 {
	return p.meters.OutputLevel()
}

// Meters returns all three readings at once.
func (p *Processor) Meters() meter.Sample {
	return p.meters.Sample()
}

// Bind attaches a control to a parameter. fn, if not nil, runs on the
// writer's goroutine after every change; closing the binding detaches it.
func (p *Processor) Bind(id string, fn param.Listener) (*param.Binding, error) {
	return p.Parameters().Bind(id, fn)
}

// Get returns the current value of a parameter.
func (p *Processor) Get(id string) (float64, error) {
	return p.Parameters().Value(id)
}

// Set clamps v into the parameter's range, stores it and returns the
// stored value. The audio thread picks it up at the next block.
func (p *Processor) Set(id string, v float64) (float64, error) {
	return p.Parameters().Set(id, v)
}

// Snapshot serializes every parameter value.
func (p *Processor) Snapshot() ([]byte, error) {
	return p.State().Snapshot()
}

// Restore applies a snapshot. Malformed data returns an error wrapping
// state.ErrMalformed and changes nothing.
func (p *Processor) Restore(data []byte) error {
	return p.State().Restore(data)
}
