// Package plugin provides the host-facing processor lifecycle shared by
// effects: prepare, release, bus negotiation and state persistence.
package plugin

import (
	"errors"
	"fmt"
	"math"

	"github.com/justyntemme/onecomp/pkg/framework/bus"
	"github.com/justyntemme/onecomp/pkg/framework/debug"
	"github.com/justyntemme/onecomp/pkg/framework/param"
	"github.com/justyntemme/onecomp/pkg/framework/process"
	"github.com/justyntemme/onecomp/pkg/framework/state"
)

var (
	// ErrInvalidSpec is returned by Prepare for a sample rate or block size
	// the processor cannot run with.
	ErrInvalidSpec = errors.New("plugin: invalid processing spec")
	// ErrNotPrepared is returned by calls that need a prepared processor.
	ErrNotPrepared = errors.New("plugin: processor not prepared")
)

// Processor is the interface a host drives.
type Processor interface {
	Info() Info
	Parameters() *param.Registry
	Prepare(sampleRate float64, maxBlockSize, channels int) error
	Release()
	IsBusesLayoutSupported(layout bus.Layout) bool
	ProcessBlock(ctx *process.Context)
	GetLatencySamples() int32
	GetTailSamples() int32
}

// BaseProcessor provides common functionality for audio processors
type BaseProcessor struct {
	info   Info
	params *param.Registry
	state  *state.Manager
	buses  *bus.Configuration
	logger *debug.Logger

	sampleRate   float64
	maxBlockSize int
	prepared     bool

	// Optional callbacks for customization
	onPrepare func(sampleRate float64, maxBlockSize int, layout bus.Layout) error
	onRelease func()
}

// NewBaseProcessor creates a new base processor with the given bus configuration
func NewBaseProcessor(info Info, buses *bus.Configuration) *BaseProcessor {
	if buses == nil {
		buses = bus.NewStereoConfiguration()
	}
	params := param.NewRegistry()
	return &BaseProcessor{
		info:   info,
		params: params,
		state:  state.NewManager(params),
		buses:  buses,
		logger: debug.Default(),
	}
}

// SetLogger replaces the lifecycle logger.
func (b *BaseProcessor) SetLogger(l *debug.Logger) {
	if l == nil {
		l = debug.NewNop()
	}
	b.logger = l
}

// Logger returns the lifecycle logger.
func (b *BaseProcessor) Logger() *debug.Logger { return b.logger }

// Info returns the plugin metadata.
func (b *BaseProcessor) Info() Info { return b.info }

// Parameters returns the parameter registry for adding parameters
func (b *BaseProcessor) Parameters() *param.Registry { return b.params }

// State returns the state manager bound to the registry.
func (b *BaseProcessor) State() *state.Manager { return b.state }

// Buses returns the bus configuration.
func (b *BaseProcessor) Buses() *bus.Configuration { return b.buses }

// Prepare validates the processing spec, switches the buses to the
// channel count and runs the prepare callback.
func (b *BaseProcessor) Prepare(sampleRate float64, maxBlockSize, channels int) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidSpec, sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("%w: max block size %d", ErrInvalidSpec, maxBlockSize)
	}

	layout := bus.Layout{Inputs: int32(channels), Outputs: int32(channels)}
	if err := b.SetBusesLayout(layout); err != nil {
		return err
	}

	if b.onPrepare != nil {
		if err := b.onPrepare(sampleRate, maxBlockSize, layout); err != nil {
			return err
		}
	}

	b.sampleRate = sampleRate
	b.maxBlockSize = maxBlockSize
	b.prepared = true
	b.logger.Debug("prepared %s at %.0f Hz, %d samples, %s", b.info.Name, sampleRate, maxBlockSize, layout)
	return nil
}

// Release drops transient state. Parameters are kept.
func (b *BaseProcessor) Release() {
	if !b.prepared {
		return
	}
	if b.onRelease != nil {
		b.onRelease()
	}
	b.prepared = false
	b.logger.Debug("released %s", b.info.Name)
}

// IsBusesLayoutSupported accepts mono to mono and stereo to stereo.
func (b *BaseProcessor) IsBusesLayoutSupported(layout bus.Layout) bool {
	return layout.Supported()
}

// SetBusesLayout switches the main buses. Unsupported layouts are rejected
// and leave the configuration unchanged.
func (b *BaseProcessor) SetBusesLayout(layout bus.Layout) error {
	if err := b.buses.SetLayout(layout); err != nil {
		b.logger.Warn("rejected bus layout %s", layout)
		return err
	}
	return nil
}

// GetLatencySamples implements the Processor interface - default no latency
func (b *BaseProcessor) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples returns the tail length at the prepared sample rate
func (b *BaseProcessor) GetTailSamples() int32 {
	return int32(math.Ceil(b.info.TailSeconds * b.sampleRate))
}

// GetStateInformation returns the serialized parameter state.
func (b *BaseProcessor) GetStateInformation() ([]byte, error) {
	return b.state.Snapshot()
}

// SetStateInformation restores serialized parameter state. Malformed data
// is logged and ignored; the current values are kept.
func (b *BaseProcessor) SetStateInformation(data []byte) {
	if err := b.state.Restore(data); err != nil {
		b.logger.Warn("ignoring state: %v", err)
	}
}

// SampleRate returns the current sample rate
func (b *BaseProcessor) SampleRate() float64 { return b.sampleRate }

// MaxBlockSize returns the prepared maximum block size.
func (b *BaseProcessor) MaxBlockSize() int { return b.maxBlockSize }

// Prepared reports whether Prepare succeeded since the last Release.
func (b *BaseProcessor) Prepared() bool { return b.prepared }

// OnPrepare sets a callback run by Prepare after validation
func (b *BaseProcessor) OnPrepare(fn func(sampleRate float64, maxBlockSize int, layout bus.Layout) error) {
	b.onPrepare = fn
}

// OnRelease sets a callback run by Release
func (b *BaseProcessor) OnRelease(fn func()) {
	b.onRelease = fn
}
