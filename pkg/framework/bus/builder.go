package bus

import (
	"errors"
	"fmt"
)

// MaxChannels is the largest channel count a bus may declare.
const MaxChannels = 32

// Builder provides a fluent API for building bus configurations
type Builder struct {
	config *Configuration
	errors []error
}

// NewBuilder creates a new bus configuration builder
func NewBuilder() *Builder {
	return &Builder{
		config: &Configuration{},
	}
}

// WithAudioInput adds an audio input bus
func (b *Builder) WithAudioInput(name string, channels int32) *Builder {
	return b.add(DirectionInput, TypeMain, name, channels)
}

// WithAudioOutput adds an audio output bus
func (b *Builder) WithAudioOutput(name string, channels int32) *Builder {
	return b.add(DirectionOutput, TypeMain, name, channels)
}

// WithAuxInput adds an auxiliary audio input bus
func (b *Builder) WithAuxInput(name string, channels int32) *Builder {
	return b.add(DirectionInput, TypeAux, name, channels)
}

// WithStereoInput adds a stereo input bus
func (b *Builder) WithStereoInput(name string) *Builder {
	return b.WithAudioInput(name, 2)
}

// WithStereoOutput adds a stereo output bus
func (b *Builder) WithStereoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 2)
}

// WithMonoInput adds a mono input bus
func (b *Builder) WithMonoInput(name string) *Builder {
	return b.WithAudioInput(name, 1)
}

// WithMonoOutput adds a mono output bus
func (b *Builder) WithMonoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 1)
}

func (b *Builder) add(direction Direction, busType Type, name string, channels int32) *Builder {
	if busType == TypeMain && b.config.main(direction) != nil {
		b.errors = append(b.errors, fmt.Errorf("duplicate main bus %q", name))
		return b
	}
	b.config.audioBuses = append(b.config.audioBuses, Info{
		Direction:    direction,
		ChannelCount: channels,
		Name:         name,
		BusType:      busType,
		IsActive:     true,
	})
	return b
}

// SetBusActive activates or deactivates a bus
func (b *Builder) SetBusActive(direction Direction, index int32, active bool) *Builder {
	if info := b.config.GetBusInfo(direction, index); info != nil {
		info.IsActive = active
		return b
	}
	b.errors = append(b.errors, fmt.Errorf("bus not found: direction=%d, index=%d", direction, index))
	return b
}

// Validate checks if the configuration is valid
func (b *Builder) Validate() error {
	if len(b.errors) > 0 {
		return fmt.Errorf("builder errors: %w", errors.Join(b.errors...))
	}

	if b.config.main(DirectionOutput) == nil {
		return fmt.Errorf("configuration must have a main output bus")
	}

	for _, bus := range b.config.audioBuses {
		if bus.ChannelCount <= 0 {
			return fmt.Errorf("invalid channel count %d for bus %s", bus.ChannelCount, bus.Name)
		}
		if bus.ChannelCount > MaxChannels {
			return fmt.Errorf("channel count %d exceeds maximum of %d for bus %s", bus.ChannelCount, MaxChannels, bus.Name)
		}
	}

	return nil
}

// Build returns the built configuration or an error
func (b *Builder) Build() (*Configuration, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.config, nil
}

// MustBuild returns the built configuration or panics on error
func (b *Builder) MustBuild() *Configuration {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
