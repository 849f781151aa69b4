package debug

import (
	"fmt"
	"math"
)

// AudioAnalyzer inspects rendered buffers for values a processor must never
// emit.
type AudioAnalyzer struct {
	ClippingThreshold float32
	DCThreshold       float32
	SilenceThreshold  float32
}

// NewAudioAnalyzer creates a new audio analyzer with default settings.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		ClippingThreshold: 0.99,
		DCThreshold:       0.01,
		SilenceThreshold:  0.0001,
	}
}

// AnalysisResult contains the results of audio buffer analysis.
type AnalysisResult struct {
	Peak           float32
	RMS            float32
	DC             float32
	ClippedSamples int
	NaNCount       int
	InfCount       int
	Subnormals     int
	Silent         bool
}

// Clipping reports whether any sample reached the clipping threshold.
func (r AnalysisResult) Clipping() bool { return r.ClippedSamples > 0 }

// Finite reports whether every sample was a finite number.
func (r AnalysisResult) Finite() bool { return r.NaNCount == 0 && r.InfCount == 0 }

// Analyze performs analysis on an audio buffer. Non-finite samples are
// counted and left out of the statistics.
func (a *AudioAnalyzer) Analyze(buffer []float32) AnalysisResult {
	result := AnalysisResult{}
	if len(buffer) == 0 {
		return result
	}

	var sum, sumSquares float64
	valid := 0
	for _, sample := range buffer {
		v := float64(sample)
		switch {
		case math.IsNaN(v):
			result.NaNCount++
			continue
		case math.IsInf(v, 0):
			result.InfCount++
			continue
		}

		abs := float32(math.Abs(v))
		if abs != 0 && abs < math.SmallestNonzeroFloat32*(1<<23) {
			result.Subnormals++
		}
		if abs > result.Peak {
			result.Peak = abs
		}
		if abs >= a.ClippingThreshold {
			result.ClippedSamples++
		}

		sum += v
		sumSquares += v * v
		valid++
	}

	if valid > 0 {
		result.RMS = float32(math.Sqrt(sumSquares / float64(valid)))
		result.DC = float32(sum / float64(valid))
	}
	result.Silent = result.RMS < a.SilenceThreshold
	return result
}

// Check returns a description of every problem found in the buffer.
func (a *AudioAnalyzer) Check(buffer []float32, name string) []string {
	var issues []string
	result := a.Analyze(buffer)

	if result.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d NaN values", name, result.NaNCount))
	}
	if result.InfCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d infinite values", name, result.InfCount))
	}
	if result.Subnormals > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d subnormal values", name, result.Subnormals))
	}
	if result.Peak > 1.0 {
		issues = append(issues, fmt.Sprintf("%s: peak exceeds 1.0 (%.3f)", name, result.Peak))
	} else if result.Clipping() {
		issues = append(issues, fmt.Sprintf("%s: clipping detected (%d samples)", name, result.ClippedSamples))
	}
	if math.Abs(float64(result.DC)) > float64(a.DCThreshold) {
		issues = append(issues, fmt.Sprintf("%s: DC offset detected (%.3f)", name, result.DC))
	}
	return issues
}

var defaultAnalyzer = NewAudioAnalyzer()

// LogBufferStats logs statistics about an audio buffer to l.
func LogBufferStats(l *Logger, buffer []float32, name string) {
	result := defaultAnalyzer.Analyze(buffer)

	l.Debug("buffer %q: %d samples, peak %.3f, rms %.3f, dc %.6f",
		name, len(buffer), result.Peak, result.RMS, result.DC)
	for _, issue := range defaultAnalyzer.Check(buffer, name) {
		l.Warn("%s", issue)
	}
}
