// Package process provides the per-block audio context handed to a
// processor by the host.
package process

import (
	"github.com/justyntemme/onecomp/pkg/dsp"
	"github.com/justyntemme/onecomp/pkg/midi"
)

// Context carries one block of audio, processed in place. Buffer holds one
// slice per channel; the first NumInputs channels carry input and the rest
// are output-only. All scratch storage is allocated by NewContext.
type Context struct {
	Buffer     [][]float32
	NumInputs  int
	SampleRate float64
	Events     *midi.Buffer

	gainBuffer []float32
}

// NewContext creates a new process context with pre-allocated buffers
func NewContext(maxBlockSize int) *Context {
	return &Context{
		Events:     midi.NewBuffer(midi.DefaultCapacity),
		gainBuffer: make([]float32, maxBlockSize),
	}
}

// Bind points the context at a host buffer for the next block.
func (c *Context) Bind(buffer [][]float32, numInputs int) {
	c.Buffer = buffer
	c.NumInputs = numInputs
}

// MaxBlockSize returns the capacity of the scratch buffers.
func (c *Context) MaxBlockSize() int {
	return len(c.gainBuffer)
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	if len(c.Buffer) == 0 {
		return 0
	}
	n := len(c.Buffer[0])
	for _, ch := range c.Buffer[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}
	return n
}

// NumInputChannels returns the number of channels carrying input
func (c *Context) NumInputChannels() int {
	if c.NumInputs < len(c.Buffer) {
		return c.NumInputs
	}
	return len(c.Buffer)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Buffer)
}

// GainBuffer returns the per-sample gain scratch, MaxBlockSize long.
// Blocks longer than that must be processed in slices.
func (c *Context) GainBuffer() []float32 {
	return c.gainBuffer
}

// Fits reports whether the bound block fits the scratch buffer.
func (c *Context) Fits() bool {
	return c.NumSamples() <= len(c.gainBuffer)
}

// ClearUnusedOutputs zeros output channels that have no matching input.
func (c *Context) ClearUnusedOutputs() {
	for ch := c.NumInputChannels(); ch < len(c.Buffer); ch++ {
		dsp.Clear(c.Buffer[ch])
	}
}

// Clear zeros every channel
func (c *Context) Clear() {
	for _, ch := range c.Buffer {
		dsp.Clear(ch)
	}
}
