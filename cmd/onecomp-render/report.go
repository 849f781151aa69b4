package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/onecomp/pkg/framework/param"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#A40000")
	accentColor  = lipgloss.Color("#FFA500")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)
)

// report is everything the summary box shows.
type report struct {
	inputPath  string
	outputPath string
	sampleRate int
	channels   int
	bitDepth   int
	blockSize  int
	params     []*param.Parameter
	stats      *renderStats
	elapsed    time.Duration
	cpuLoad    float64
}

func (r *report) render() string {
	var sb strings.Builder
	row := func(key, value string) {
		sb.WriteString(keyStyle.Render(key))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteString("\n")
	}

	sb.WriteString(titleStyle.Render("OneComp render"))
	sb.WriteString("\n")
	row("Input", filepath.Base(r.inputPath))
	row("Output", filepath.Base(r.outputPath))
	row("Format", fmt.Sprintf("%d Hz, %d ch, %d-bit", r.sampleRate, r.channels, r.bitDepth))
	row("Block", fmt.Sprintf("%d samples", r.blockSize))

	sb.WriteString(sectionStyle.Render("Settings"))
	sb.WriteString("\n")
	for _, p := range r.params {
		row(p.Label, p.Text())
	}

	s := r.stats
	sb.WriteString(sectionStyle.Render("Meters"))
	sb.WriteString("\n")
	row("Input RMS", fmt.Sprintf("%.1f dB avg, %.1f dB max", mean(s.input), maxOf(s.input)))
	row("Output RMS", fmt.Sprintf("%.1f dB avg, %.1f dB max", mean(s.output), maxOf(s.output)))
	row("Gain reduction", fmt.Sprintf("%.1f dB avg, %.1f dB max, %.1f dB min", mean(s.reduction), maxOf(s.reduction), minOf(s.reduction)))
	row("Output peak", fmt.Sprintf("%.3f (%.1f dB)", s.peak, s.peakDB))
	row("Peak hold", fmt.Sprintf("%.1f dB at end", s.holdDB))

	sb.WriteString(sectionStyle.Render("Render"))
	sb.WriteString("\n")
	seconds := 0.0
	if r.sampleRate > 0 {
		seconds = float64(s.frames) / float64(r.sampleRate)
	}
	row("Duration", fmt.Sprintf("%.2fs in %d blocks", seconds, s.blocks))
	speed := 0.0
	if r.elapsed > 0 {
		speed = seconds / r.elapsed.Seconds()
	}
	row("Speed", fmt.Sprintf("%.1fx realtime (%.2f%% block budget)", speed, r.cpuLoad))
	if s.clipped > 0 {
		row("Clipped", errorStyle.Render(fmt.Sprintf("%d samples", s.clipped)))
	}
	if s.nonFinite > 0 || s.subnormals > 0 {
		row("Bad samples", errorStyle.Render(fmt.Sprintf("%d non-finite, %d subnormal", s.nonFinite, s.subnormals)))
	}

	return boxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
