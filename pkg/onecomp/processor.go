package onecomp

import (
	"fmt"

	"github.com/justyntemme/onecomp/pkg/dsp"
	"github.com/justyntemme/onecomp/pkg/dsp/analysis"
	"github.com/justyntemme/onecomp/pkg/dsp/dynamics"
	"github.com/justyntemme/onecomp/pkg/dsp/gain"
	"github.com/justyntemme/onecomp/pkg/framework/bus"
	"github.com/justyntemme/onecomp/pkg/framework/meter"
	"github.com/justyntemme/onecomp/pkg/framework/plugin"
	"github.com/justyntemme/onecomp/pkg/framework/process"
)

// Lifecycle errors, re-exported for callers that only import this package.
var (
	ErrInvalidSpec = plugin.ErrInvalidSpec
	ErrNotPrepared = plugin.ErrNotPrepared
)

// Processor is the OneComp compressor. Prepare, Release and the state
// calls belong to the host thread; ProcessBlock belongs to the audio
// thread. Parameters and meters may be used from any goroutine.
type Processor struct {
	*plugin.BaseProcessor

	params     parameters
	compressor *dynamics.Compressor
	meters     *meter.Bus

	// Sized by Prepare, owned by the audio thread.
	ctx      *process.Context
	views    [][]float32
	channels int
}

var _ plugin.Processor = (*Processor)(nil)

// New creates a processor with every parameter at its default. It is not
// ready to process until Prepare succeeds.
func New() (*Processor, error) {
	base := plugin.NewBaseProcessor(PluginInfo(), bus.NewEffectStereo())
	if err := base.Parameters().Register(newParameters()...); err != nil {
		return nil, fmt.Errorf("onecomp: %w", err)
	}
	params, err := lookupParameters(base.Parameters())
	if err != nil {
		return nil, err
	}

	p := &Processor{
		BaseProcessor: base,
		params:        params,
		compressor:    dynamics.NewCompressor(dsp.SampleRate48k),
		meters:        meter.NewBus(),
	}
	base.OnPrepare(p.prepare)
	base.OnRelease(p.release)
	return p, nil
}

func (p *Processor) prepare(sampleRate float64, maxBlockSize int, layout bus.Layout) error {
	p.ctx = process.NewContext(maxBlockSize)
	p.ctx.SampleRate = sampleRate
	p.channels = int(layout.Inputs)
	p.views = make([][]float32, 0, p.channels)

	s := p.params.load()
	p.compressor.SetSampleRate(sampleRate)
	p.compressor.Reset()
	p.configure(s)
	p.meters.Reset()
	return nil
}

func (p *Processor) release() {
	p.ctx = nil
	p.views = nil
	p.channels = 0
	p.compressor.Reset()
	p.meters.Reset()
}

func (p *Processor) configure(s settings) {
	p.compressor.SetThreshold(s.thresholdDB)
	p.compressor.SetRatio(s.ratio)
	p.compressor.SetTimeConstants(s.attackMs/1000, s.releaseMs/1000)
}

// Context returns the context sized by the last Prepare, or nil.
func (p *Processor) Context() *process.Context {
	return p.ctx
}

// Process runs one block over buffer in place. Every channel carries
// input, so buffer must have exactly the prepared channel count. It is a
// convenience for offline callers.
func (p *Processor) Process(buffer [][]float32) error {
	if !p.Prepared() {
		return ErrNotPrepared
	}
	if len(buffer) != p.channels {
		return fmt.Errorf("%w: %d channels, prepared for %d", bus.ErrUnsupportedLayout, len(buffer), p.channels)
	}
	p.ctx.Bind(buffer, len(buffer))
	p.ProcessBlock(p.ctx)
	return nil
}

// ProcessBlock compresses one block in place and publishes the meters.
// The order is input trim, input meter, linked detector and gain computer,
// pre-makeup meter, makeup gain, output meter. Input channels beyond the
// prepared layout are treated as output-only and cleared. It does not
// allocate, lock or log.
func (p *Processor) ProcessBlock(ctx *process.Context) {
	n := ctx.NumSamples()
	if n == 0 || !p.Prepared() {
		return
	}

	s := p.params.load()
	if ctx.NumInputs > p.channels {
		ctx.NumInputs = p.channels
	}
	ctx.ClearUnusedOutputs()

	inputs := ctx.Inputs()
	if len(inputs) == 0 {
		p.meters.Reset()
		return
	}

	trim := float32(gain.DbToLinear(s.inputDB))
	ctx.ProcessChannels(func(_ int, ch []float32) {
		dsp.Sanitize(ch)
		gain.ApplyBuffer(ch, trim)
	})
	inputDB := analysis.LevelDB(analysis.RMS(ctx.Channel(0)))

	p.configure(s)
	p.compress(inputs, n)
	preDB := analysis.LevelDB(analysis.RMS(ctx.Channel(0)))

	makeup := float32(gain.DbToLinear(s.gainDB))
	ctx.ProcessChannels(func(_ int, ch []float32) {
		gain.ApplyBuffer(ch, makeup)
	})
	outputDB := analysis.LevelDB(analysis.RMS(ctx.Channel(0)))

	p.meters.Publish(inputDB, inputDB-preDB, outputDB)

	if ctx.Events != nil {
		ctx.Events.Clear()
	}
}

// compress runs the detector in slices of the prepared block size so a
// block longer than promised is still fully processed.
func (p *Processor) compress(inputs [][]float32, n int) {
	gains := p.ctx.GainBuffer()
	for off := 0; off < n; off += len(gains) {
		m := min(len(gains), n-off)
		views := p.views[:0]
		for _, ch := range inputs {
			views = append(views, ch[off:off+m])
		}
		p.views = views
		p.compressor.ComputeGains(views, m, gains)
		dynamics.ApplyGains(views, m, gains)
	}
}

// Reset clears the detector and the meters without touching parameters.
func (p *Processor) Reset() {
	p.compressor.Reset()
	p.meters.Reset()
}

// Compressor exposes the DSP core for inspection.
func (p *Processor) Compressor() *dynamics.Compressor {
	return p.compressor
}
