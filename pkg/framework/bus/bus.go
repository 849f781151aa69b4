// Package bus describes audio bus configurations and decides which channel
// layouts the processor accepts.
package bus

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLayout is returned for any layout other than mono to mono
// or stereo to stereo.
var ErrUnsupportedLayout = errors.New("bus: unsupported channel layout")

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

// Type represents the bus type
type Type int32

const (
	// TypeMain represents main bus
	TypeMain Type = 0
	// TypeAux represents auxiliary bus
	TypeAux Type = 1
)

// Info contains bus configuration
type Info struct {
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
	IsActive     bool
}

// Layout is the channel count of the main input and output buses.
type Layout struct {
	Inputs  int32
	Outputs int32
}

// Mono and Stereo are the two accepted layouts.
var (
	Mono   = Layout{Inputs: 1, Outputs: 1}
	Stereo = Layout{Inputs: 2, Outputs: 2}
)

// Validate returns ErrUnsupportedLayout unless the layout is mono or
// stereo with matching input and output.
func (l Layout) Validate() error {
	if l != Mono && l != Stereo {
		return fmt.Errorf("%w: %s", ErrUnsupportedLayout, l)
	}
	return nil
}

// Supported reports whether the layout is accepted.
func (l Layout) Supported() bool {
	return l.Validate() == nil
}

func (l Layout) String() string {
	return fmt.Sprintf("%s -> %s", channelName(l.Inputs), channelName(l.Outputs))
}

func channelName(n int32) string {
	switch n {
	case 0:
		return "disabled"
	case 1:
		return "mono"
	case 2:
		return "stereo"
	}
	return fmt.Sprintf("%d channels", n)
}

// Configuration manages audio buses
type Configuration struct {
	audioBuses []Info
}

// NewStereoConfiguration creates a standard stereo I/O configuration
func NewStereoConfiguration() *Configuration {
	return NewEffectStereo()
}

// NewMonoConfiguration creates a mono I/O configuration
func NewMonoConfiguration() *Configuration {
	return NewEffectMono()
}

// GetBusCount returns the number of buses for a given direction
func (c *Configuration) GetBusCount(direction Direction) int32 {
	count := int32(0)
	for _, bus := range c.audioBuses {
		if bus.Direction == direction {
			count++
		}
	}
	return count
}

// GetBusInfo returns information about a specific bus
func (c *Configuration) GetBusInfo(direction Direction, index int32) *Info {
	busIndex := int32(0)
	for i := range c.audioBuses {
		if c.audioBuses[i].Direction == direction {
			if busIndex == index {
				return &c.audioBuses[i]
			}
			busIndex++
		}
	}
	return nil
}

func (c *Configuration) main(direction Direction) *Info {
	for i := range c.audioBuses {
		b := &c.audioBuses[i]
		if b.Direction == direction && b.BusType == TypeMain {
			return b
		}
	}
	return nil
}

// Layout returns the channel counts of the active main buses.
func (c *Configuration) Layout() Layout {
	var l Layout
	if in := c.main(DirectionInput); in != nil && in.IsActive {
		l.Inputs = in.ChannelCount
	}
	if out := c.main(DirectionOutput); out != nil && out.IsActive {
		l.Outputs = out.ChannelCount
	}
	return l
}

// SetLayout changes the main bus channel counts. An unsupported layout
// leaves the configuration unchanged.
func (c *Configuration) SetLayout(l Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	in, out := c.main(DirectionInput), c.main(DirectionOutput)
	if in == nil || out == nil {
		return fmt.Errorf("%w: configuration has no main buses", ErrUnsupportedLayout)
	}
	in.ChannelCount, in.IsActive = l.Inputs, true
	out.ChannelCount, out.IsActive = l.Outputs, true
	return nil
}
