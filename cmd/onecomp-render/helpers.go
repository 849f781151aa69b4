package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/floats"

	"github.com/justyntemme/onecomp/pkg/dsp/analysis"
	"github.com/justyntemme/onecomp/pkg/framework/debug"
	"github.com/justyntemme/onecomp/pkg/framework/meter"
)

const (
	// PCM sample widths the renderer reads and writes
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	wavFormatPCM = 1

	// Output peak meter ballistics for the report
	peakHoldSeconds      = 2.0
	peakDecayDBPerSecond = 12.0
)

// tomlLoader reads flag values from a TOML document. Keys are flag names
// with dashes replaced by underscores; nested tables are ignored.
func tomlLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if _, err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[strings.ReplaceAll(flag.Name, "-", "_")]
		if !ok {
			return nil, nil
		}
		if _, table := v.(map[string]any); table {
			return nil, nil
		}
		return fmt.Sprint(v), nil
	}), nil
}

// maxValue returns the full-scale integer for a PCM bit depth.
func maxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	}
	return 0, fmt.Errorf("unsupported bit depth %d (want 16, 24 or 32)", bitDepth)
}

// deinterleave converts interleaved PCM into per-channel float32 blocks
// and returns the frame count.
func deinterleave(data []int, channels [][]float32, scale float64) int {
	numChannels := len(channels)
	frames := len(data) / numChannels
	for i := 0; i < frames; i++ {
		base := i * numChannels
		for ch := range channels {
			channels[ch][i] = float32(float64(data[base+ch]) * scale)
		}
	}
	return frames
}

// interleave converts the first frames of channels back to PCM, clipping at
// full scale. It returns the number of clipped samples.
func interleave(channels [][]float32, frames int, dst []int, maxVal float64) int {
	numChannels := len(channels)
	clipped := 0
	for i := 0; i < frames; i++ {
		for ch := range channels {
			v := float64(channels[ch][i]) * maxVal
			switch {
			case v > maxVal:
				v = maxVal
				clipped++
			case v < -maxVal-1:
				v = -maxVal - 1
				clipped++
			}
			if v >= 0 {
				dst[i*numChannels+ch] = int(v + 0.5)
			} else {
				dst[i*numChannels+ch] = int(v - 0.5)
			}
		}
	}
	return clipped
}

// wavInput is an open, validated WAV source.
type wavInput struct {
	file       *os.File
	decoder    *wav.Decoder
	sampleRate int
	channels   int
	bitDepth   int
	format     *audio.Format
}

func openWAVInput(path string) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	return &wavInput{
		file:       f,
		decoder:    decoder,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(decoder.BitDepth),
		format:     format,
	}, nil
}

func (w *wavInput) Close() error {
	return w.file.Close()
}

// wavOutput wraps the output file and its encoder.
type wavOutput struct {
	file    *os.File
	encoder *wav.Encoder
}

func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutput, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &wavOutput{
		file:    f,
		encoder: wav.NewEncoder(f, sampleRate, bitDepth, channels, wavFormatPCM),
	}, nil
}

func (w *wavOutput) Write(buf *audio.IntBuffer) error {
	return w.encoder.Write(buf)
}

func (w *wavOutput) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// renderStats accumulates per-block meter readings and output analysis.
type renderStats struct {
	frames     int64
	blocks     int
	input      []float64
	reduction  []float64
	output     []float64
	peak       float32
	peakDB     float64
	holdDB     float64
	clipped    int
	nonFinite  int
	subnormals int
}

func (s *renderStats) addBlock(m meter.Sample, result debug.AnalysisResult, frames int) {
	s.frames += int64(frames)
	s.blocks++
	s.input = append(s.input, m.Input)
	s.reduction = append(s.reduction, m.GainReduction)
	s.output = append(s.output, m.Output)
	if result.Peak > s.peak {
		s.peak = result.Peak
	}
	s.nonFinite += result.NaNCount + result.InfCount
	s.subnormals += result.Subnormals
}

// addPeak records the decaying output peak after a block.
func (s *renderStats) addPeak(pm *analysis.PeakMeter) {
	s.peakDB = max(s.peakDB, pm.PeakDB())
	s.holdDB = pm.HoldDB()
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values) / float64(len(values))
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Max(values)
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Min(values)
}
