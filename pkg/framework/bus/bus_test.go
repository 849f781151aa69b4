package bus

import (
	"errors"
	"testing"
)

func TestNewStereoConfiguration(t *testing.T) {
	config := NewStereoConfiguration()

	if got := config.GetBusCount(DirectionInput); got != 1 {
		t.Errorf("Expected 1 audio input bus, got %d", got)
	}
	if got := config.GetBusCount(DirectionOutput); got != 1 {
		t.Errorf("Expected 1 audio output bus, got %d", got)
	}

	inBus := config.GetBusInfo(DirectionInput, 0)
	if inBus == nil {
		t.Fatal("Expected input bus to exist")
	}
	if inBus.ChannelCount != 2 {
		t.Errorf("Expected 2 input channels, got %d", inBus.ChannelCount)
	}
	if inBus.Name != "Stereo In" {
		t.Errorf("Expected input name 'Stereo In', got %s", inBus.Name)
	}

	if config.GetBusInfo(DirectionOutput, 1) != nil {
		t.Error("Expected no second output bus")
	}
	if config.Layout() != Stereo {
		t.Errorf("Expected stereo layout, got %s", config.Layout())
	}
}

func TestNewMonoConfiguration(t *testing.T) {
	config := NewMonoConfiguration()

	if config.Layout() != Mono {
		t.Errorf("Expected mono layout, got %s", config.Layout())
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		layout Layout
		ok     bool
	}{
		{Mono, true},
		{Stereo, true},
		{Layout{1, 2}, false},
		{Layout{2, 1}, false},
		{Layout{0, 2}, false},
		{Layout{2, 0}, false},
		{Layout{6, 6}, false},
		{Layout{}, false},
	}

	for _, tt := range tests {
		err := tt.layout.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.layout, err)
		}
		if !tt.ok && !errors.Is(err, ErrUnsupportedLayout) {
			t.Errorf("%s: expected ErrUnsupportedLayout, got %v", tt.layout, err)
		}
		if tt.layout.Supported() != tt.ok {
			t.Errorf("%s: Supported() = %v", tt.layout, !tt.ok)
		}
	}
}

func TestLayoutString(t *testing.T) {
	if got := Stereo.String(); got != "stereo -> stereo" {
		t.Errorf("got %q", got)
	}
	if got := (Layout{0, 6}).String(); got != "disabled -> 6 channels" {
		t.Errorf("got %q", got)
	}
}

func TestSetLayout(t *testing.T) {
	config := NewEffectStereo()

	if err := config.SetLayout(Mono); err != nil {
		t.Fatalf("SetLayout(mono): %v", err)
	}
	if config.Layout() != Mono {
		t.Errorf("Expected mono, got %s", config.Layout())
	}

	if err := config.SetLayout(Layout{1, 2}); !errors.Is(err, ErrUnsupportedLayout) {
		t.Errorf("Expected ErrUnsupportedLayout, got %v", err)
	}
	if config.Layout() != Mono {
		t.Errorf("Rejected layout must not change the configuration, got %s", config.Layout())
	}
}

func TestInactiveBusReadsAsDisabled(t *testing.T) {
	config := NewBuilder().
		WithStereoInput("In").
		WithStereoOutput("Out").
		SetBusActive(DirectionInput, 0, false).
		MustBuild()

	if got := config.Layout(); got != (Layout{0, 2}) {
		t.Errorf("Expected disabled input, got %s", got)
	}
	if config.Layout().Supported() {
		t.Error("Disabled input must not be supported")
	}
}

func TestBuilderValidation(t *testing.T) {
	if _, err := NewBuilder().WithStereoInput("In").Build(); err == nil {
		t.Error("Expected error without a main output")
	}
	if _, err := NewBuilder().WithAudioOutput("Out", 0).Build(); err == nil {
		t.Error("Expected error for zero channels")
	}
	if _, err := NewBuilder().WithAudioOutput("Out", MaxChannels+1).Build(); err == nil {
		t.Error("Expected error for too many channels")
	}
	if _, err := NewBuilder().WithStereoOutput("A").WithStereoOutput("B").Build(); err == nil {
		t.Error("Expected error for two main outputs")
	}
	if _, err := NewBuilder().WithStereoOutput("Out").SetBusActive(DirectionInput, 3, true).Build(); err == nil {
		t.Error("Expected error for missing bus")
	}

	config, err := NewBuilder().
		WithStereoInput("In").
		WithAuxInput("Sidechain", 2).
		WithStereoOutput("Out").
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := config.GetBusCount(DirectionInput); got != 2 {
		t.Errorf("Expected 2 input buses, got %d", got)
	}
	if config.Layout() != Stereo {
		t.Errorf("Aux bus must not affect the main layout, got %s", config.Layout())
	}
}

func TestForLayout(t *testing.T) {
	config, err := ForLayout(Mono)
	if err != nil || config.Layout() != Mono {
		t.Errorf("ForLayout(mono) = %v, %v", config, err)
	}
	if _, err := ForLayout(Layout{2, 1}); !errors.Is(err, ErrUnsupportedLayout) {
		t.Errorf("Expected ErrUnsupportedLayout, got %v", err)
	}
}
