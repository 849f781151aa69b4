package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler collects timing statistics for named sections. It locks on every
// record and is meant for offline rendering and tests, not the host's audio
// thread.
type Profiler struct {
	mu           sync.RWMutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name      string
	Count     uint64
	Total     time.Duration
	Min       time.Duration
	Max       time.Duration
	Last      time.Duration
	samples   []time.Duration
	nextIndex int
}

// NewProfiler creates a new profiler keeping the last maxSamples timings
// per section for percentiles.
func NewProfiler(maxSamples int) *Profiler {
	if maxSamples <= 0 {
		maxSamples = 1000
	}
	p := &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   maxSamples,
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.enabled.Load()
}

// Start begins timing a named section.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Time measures the execution time of a function.
func (p *Profiler) Time(name string, fn func()) {
	stop := p.Start(name)
	defer stop()
	fn()
}

// Record stores a timing measurement.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	if !p.enabled.Load() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		m = &Measurement{
			Name:    name,
			Min:     elapsed,
			Max:     elapsed,
			samples: make([]time.Duration, 0, p.maxSamples),
		}
		p.measurements[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Last = elapsed
	if elapsed < m.Min {
		m.Min = elapsed
	}
	if elapsed > m.Max {
		m.Max = elapsed
	}

	if len(m.samples) < p.maxSamples {
		m.samples = append(m.samples, elapsed)
	} else {
		m.samples[m.nextIndex] = elapsed
		m.nextIndex = (m.nextIndex + 1) % p.maxSamples
	}
}

// GetMeasurement returns a copy of the measurement for a named section.
func (p *Profiler) GetMeasurement(name string) (Measurement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, exists := p.measurements[name]
	if !exists {
		return Measurement{}, false
	}
	return m.clone(), true
}

// Measurements returns copies of all measurements sorted by name.
func (p *Profiler) Measurements() []Measurement {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]Measurement, 0, len(p.measurements))
	for _, m := range p.measurements {
		result = append(result, m.clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report generates a performance report.
func (p *Profiler) Report() string {
	measurements := p.Measurements()
	if len(measurements) == 0 {
		return "No measurements recorded"
	}

	var sb strings.Builder
	sb.WriteString("Performance Report:\n")
	sb.WriteString("==================\n\n")
	for _, m := range measurements {
		fmt.Fprintf(&sb, "%s:\n", m.Name)
		fmt.Fprintf(&sb, "  Count:   %d\n", m.Count)
		fmt.Fprintf(&sb, "  Total:   %v\n", m.Total)
		fmt.Fprintf(&sb, "  Average: %v\n", m.Average())
		fmt.Fprintf(&sb, "  Min:     %v\n", m.Min)
		fmt.Fprintf(&sb, "  Max:     %v\n", m.Max)
		fmt.Fprintf(&sb, "  p99:     %v\n", m.Percentile(99))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Measurement) clone() Measurement {
	c := *m
	c.samples = append([]time.Duration(nil), m.samples...)
	return c
}

// Average returns the average time for this measurement.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// Percentile returns the p-th percentile (0-100) of the retained samples.
func (m Measurement) Percentile(p float64) time.Duration {
	if len(m.samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), m.samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	return sorted[int(float64(len(sorted)-1)*p/100.0)]
}

// BlockSection is the section name BlockProfiler records under.
const BlockSection = "ProcessBlock"

// BlockProfiler times block processing against the real-time budget of a
// block.
type BlockProfiler struct {
	*Profiler
	sampleRate float64
	blockSize  int
}

// NewBlockProfiler creates a profiler for blocks of blockSize samples.
func NewBlockProfiler(sampleRate float64, blockSize int) *BlockProfiler {
	return &BlockProfiler{
		Profiler:   NewProfiler(1000),
		sampleRate: sampleRate,
		blockSize:  blockSize,
	}
}

// Budget returns the wall time one block represents.
func (a *BlockProfiler) Budget() time.Duration {
	if a.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(a.blockSize) / a.sampleRate * float64(time.Second))
}

// Block times fn as one processed block.
func (a *BlockProfiler) Block(fn func()) {
	a.Time(BlockSection, fn)
}

// CPULoad returns the average block time as a percentage of the budget.
func (a *BlockProfiler) CPULoad() float64 {
	m, exists := a.GetMeasurement(BlockSection)
	budget := a.Budget()
	if !exists || m.Count == 0 || budget == 0 {
		return 0
	}
	return float64(m.Average()) / float64(budget) * 100.0
}

// AudioReport generates an audio-specific performance report.
func (a *BlockProfiler) AudioReport() string {
	var sb strings.Builder
	sb.WriteString(a.Report())
	sb.WriteString("\nAudio Processing Stats:\n")
	fmt.Fprintf(&sb, "  Sample Rate:  %.0f Hz\n", a.sampleRate)
	fmt.Fprintf(&sb, "  Block Size:   %d samples\n", a.blockSize)
	fmt.Fprintf(&sb, "  CPU Load:     %.2f%%\n", a.CPULoad())
	return sb.String()
}
