// Command onecomp-render runs a WAV file through the OneComp compressor
// offline and prints a meter report.
//
// Usage:
//
//	onecomp-render --threshold=-20 --ratio=4 in.wav out.wav
//	onecomp-render --preset=vocal.xml --gain=3 in.wav out.wav
//	onecomp-render --config=render.toml in.wav out.wav
//
// Parameter flags override values restored from --preset. A --config file
// supplies flag values by name (threshold = -20, save_preset = "x.xml").
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-audio/audio"

	"github.com/justyntemme/onecomp/pkg/dsp"
	"github.com/justyntemme/onecomp/pkg/dsp/analysis"
	"github.com/justyntemme/onecomp/pkg/framework/debug"
	"github.com/justyntemme/onecomp/pkg/onecomp"
)

var version = "1.0.0"

// CLI defines the command-line interface
type CLI struct {
	Config  kong.ConfigFlag  `short:"c" help:"TOML file with flag values"`
	Version kong.VersionFlag `help:"Show version information"`

	InputGain *float64 `name:"input" help:"Input trim in dB (-30..30)"`
	Threshold *float64 `help:"Threshold in dB (-60..0)"`
	Ratio     *float64 `help:"Compression ratio (1..25)"`
	Attack    *float64 `help:"Attack in ms (0.1..150)"`
	Release   *float64 `help:"Release in ms (1.5..2000)"`
	Gain      *float64 `help:"Makeup gain in dB (-30..30)"`

	Block      int    `default:"512" help:"Block size in samples"`
	Preset     string `type:"existingfile" help:"savedParams XML to restore before rendering"`
	SavePreset string `type:"path" help:"Write the final parameter state to this file"`
	LogLevel   string `default:"warn" enum:"debug,info,warn,error,off" help:"Log level (debug, info, warn, error, off)"`
	Verbose    bool   `short:"v" help:"Shorthand for --log-level=debug"`
	LogFile    string `type:"path" help:"Append logs to this file instead of stderr"`

	In  string `arg:"" type:"existingfile" help:"Input WAV file"`
	Out string `arg:"" type:"path" help:"Output WAV file"`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("onecomp-render"),
		kong.Description("Render a WAV file through the OneComp compressor"),
		kong.UsageOnError(),
		kong.Configuration(tomlLoader),
		kong.Vars{"version": version},
	)

	logger, closer, err := newLogger(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	if err := run(cli, logger, os.Stdout); err != nil {
		logger.Error("render failed: %v", err)
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		if closer != nil {
			closer.Close()
		}
		os.Exit(1)
	}
}

func newLogger(cli *CLI) (*debug.Logger, io.Closer, error) {
	level := debug.LogLevelDebug
	if !cli.Verbose {
		var err error
		if level, err = debug.ParseLevel(cli.LogLevel); err != nil {
			return nil, nil, err
		}
	}

	var (
		logger *debug.Logger
		closer io.Closer
	)
	if cli.LogFile != "" {
		l, c, err := debug.NewFileLogger(cli.LogFile, "onecomp-render", debug.DefaultFlags)
		if err != nil {
			return nil, nil, err
		}
		logger, closer = l, c
	} else {
		logger = debug.New(os.Stderr, "onecomp-render", debug.DefaultFlags)
	}

	logger.SetLevel(level)
	return logger, closer, nil
}

// applyFlags writes every parameter flag that was given.
func applyFlags(p *onecomp.Processor, cli *CLI) error {
	for _, f := range []struct {
		id    string
		value *float64
	}{
		{onecomp.ParamInput, cli.InputGain},
		{onecomp.ParamThreshold, cli.Threshold},
		{onecomp.ParamRatio, cli.Ratio},
		{onecomp.ParamAttack, cli.Attack},
		{onecomp.ParamRelease, cli.Release},
		{onecomp.ParamGain, cli.Gain},
	} {
		if f.value == nil {
			continue
		}
		if _, err := p.Set(f.id, *f.value); err != nil {
			return err
		}
	}
	return nil
}

func run(cli *CLI, logger *debug.Logger, stdout io.Writer) error {
	if cli.Block < dsp.MinBufferSize || cli.Block > dsp.MaxBufferSize {
		return fmt.Errorf("block size %d out of range %d..%d", cli.Block, dsp.MinBufferSize, dsp.MaxBufferSize)
	}

	p, err := onecomp.New()
	if err != nil {
		return err
	}
	p.SetLogger(logger)

	if cli.Preset != "" {
		data, err := os.ReadFile(cli.Preset)
		if err != nil {
			return fmt.Errorf("failed to read preset: %w", err)
		}
		if err := p.Restore(data); err != nil {
			return fmt.Errorf("preset %s: %w", cli.Preset, err)
		}
		logger.Debug("restored preset %s", cli.Preset)
	}
	if err := applyFlags(p, cli); err != nil {
		return err
	}

	input, err := openWAVInput(cli.In)
	if err != nil {
		return err
	}
	defer input.Close()

	maxVal, err := maxValue(input.bitDepth)
	if err != nil {
		return err
	}
	if err := p.Prepare(float64(input.sampleRate), cli.Block, input.channels); err != nil {
		return fmt.Errorf("%d channels at %d Hz: %w", input.channels, input.sampleRate, err)
	}
	defer p.Release()
	logger.Info("rendering %s: %d Hz, %d channels, %d-bit", cli.In, input.sampleRate, input.channels, input.bitDepth)

	output, err := createWAVOutput(cli.Out, input.sampleRate, input.bitDepth, input.channels)
	if err != nil {
		return err
	}

	stats, profiler, elapsed, err := render(p, input, output, cli.Block, maxVal, logger)
	if closeErr := output.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to finalize output: %w", closeErr)
	}
	if err != nil {
		return err
	}
	logger.Debug("profile:\n%s", profiler.AudioReport())
	logger.Debug("detector reduction at end of file: %.2f dB", p.Compressor().GainReduction())

	if cli.SavePreset != "" {
		data, err := p.Snapshot()
		if err != nil {
			return err
		}
		if err := os.WriteFile(cli.SavePreset, data, 0o644); err != nil {
			return fmt.Errorf("failed to write preset: %w", err)
		}
		logger.Debug("saved preset %s", cli.SavePreset)
	}

	r := &report{
		inputPath:  cli.In,
		outputPath: cli.Out,
		sampleRate: input.sampleRate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
		blockSize:  cli.Block,
		params:     p.Parameters().All(),
		stats:      stats,
		elapsed:    elapsed,
		cpuLoad:    profiler.CPULoad(),
	}
	_, err = fmt.Fprintln(stdout, r.render())
	return err
}

// render streams the input through the processor one block at a time.
func render(p *onecomp.Processor, input *wavInput, output *wavOutput, blockSize int, maxVal float64, logger *debug.Logger) (*renderStats, *debug.BlockProfiler, time.Duration, error) {
	channels := input.channels
	block := make([][]float32, channels)
	for ch := range block {
		block[ch] = make([]float32, blockSize)
	}
	inBuf := &audio.IntBuffer{
		Data:           make([]int, blockSize*channels),
		Format:         input.format,
		SourceBitDepth: input.bitDepth,
	}
	outBuf := &audio.IntBuffer{
		Data:           make([]int, blockSize*channels),
		Format:         input.format,
		SourceBitDepth: input.bitDepth,
	}

	analyzer := debug.NewAudioAnalyzer()
	profiler := debug.NewBlockProfiler(float64(input.sampleRate), blockSize)
	peaks := analysis.NewPeakMeter(float64(input.sampleRate))
	peaks.SetHoldTime(peakHoldSeconds)
	peaks.SetDecayRate(peakDecayDBPerSecond)
	stats := &renderStats{peakDB: dsp.SilenceDB}
	scale := 1.0 / maxVal
	var last []float32
	start := time.Now()

	for {
		inBuf.Data = inBuf.Data[:cap(inBuf.Data)]
		n, err := input.decoder.PCMBuffer(inBuf)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, 0, fmt.Errorf("failed to read audio data: %w", err)
		}
		frames := n / channels
		if frames == 0 {
			break
		}

		deinterleave(inBuf.Data[:frames*channels], block, scale)
		view := block
		if frames < blockSize {
			view = make([][]float32, channels)
			for ch := range block {
				view[ch] = block[ch][:frames]
			}
		}

		var perr error
		profiler.Block(func() { perr = p.Process(view) })
		if perr != nil {
			return nil, nil, 0, perr
		}

		result := analyzer.Analyze(view[0])
		peaks.Process(view[0])
		stats.addBlock(p.Meters(), result, frames)
		stats.addPeak(peaks)
		if !result.Finite() {
			for _, issue := range analyzer.Check(view[0], "output") {
				logger.Warn("block %d: %s", stats.blocks, issue)
			}
		}
		stats.clipped += interleave(view, frames, outBuf.Data, maxVal)

		outBuf.Data = outBuf.Data[:frames*channels]
		if err := output.Write(outBuf); err != nil {
			return nil, nil, 0, fmt.Errorf("failed to write audio data: %w", err)
		}
		outBuf.Data = outBuf.Data[:cap(outBuf.Data)]
		last = view[0]
	}
	if last != nil {
		debug.LogBufferStats(logger, last, "last output block")
	}

	return stats, profiler, time.Since(start), nil
}
