package plugin

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/justyntemme/onecomp/pkg/framework/bus"
	"github.com/justyntemme/onecomp/pkg/framework/debug"
	"github.com/justyntemme/onecomp/pkg/framework/param"
)

func newTestProcessor(t *testing.T) (*BaseProcessor, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	b := NewBaseProcessor(Info{ID: "com.example.test", Name: "Test", TailSeconds: 0.5}, nil)
	b.SetLogger(debug.New(&logs, "", debug.FlagLevel))
	if err := b.Parameters().Register(param.GainParameter("gain", "Gain", -30, 30, 0).Build()); err != nil {
		t.Fatal(err)
	}
	return b, &logs
}

func TestPrepareAndRelease(t *testing.T) {
	b, _ := newTestProcessor(t)

	var gotRate float64
	var gotLayout bus.Layout
	released := 0
	b.OnPrepare(func(sampleRate float64, maxBlockSize int, layout bus.Layout) error {
		gotRate, gotLayout = sampleRate, layout
		return nil
	})
	b.OnRelease(func() { released++ })

	if err := b.Prepare(48000, 256, 1); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if !b.Prepared() || b.SampleRate() != 48000 || b.MaxBlockSize() != 256 {
		t.Error("Prepare did not record the spec")
	}
	if gotRate != 48000 || gotLayout != bus.Mono || b.Buses().Layout() != bus.Mono {
		t.Errorf("Callback saw %v %s", gotRate, gotLayout)
	}
	if b.GetTailSamples() != 24000 || b.GetLatencySamples() != 0 {
		t.Errorf("Unexpected tail/latency %d/%d", b.GetTailSamples(), b.GetLatencySamples())
	}

	b.Parameters().Set("gain", 6)
	b.Release()
	b.Release()
	if b.Prepared() || released != 1 {
		t.Errorf("Release ran %d times", released)
	}
	if v, _ := b.Parameters().Value("gain"); v != 6 {
		t.Error("Release must keep parameter values")
	}
}

func TestPrepareRejectsInvalidSpec(t *testing.T) {
	b, logs := newTestProcessor(t)

	tests := []struct {
		name     string
		rate     float64
		block    int
		channels int
		want     error
	}{
		{"Zero rate", 0, 256, 2, ErrInvalidSpec},
		{"Zero block", 48000, 0, 2, ErrInvalidSpec},
		{"Surround", 48000, 256, 6, bus.ErrUnsupportedLayout},
		{"No channels", 48000, 256, 0, bus.ErrUnsupportedLayout},
	}
	for _, tt := range tests {
		if err := b.Prepare(tt.rate, tt.block, tt.channels); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
		if b.Prepared() {
			t.Errorf("%s: processor must stay unprepared", tt.name)
		}
	}
	if !strings.Contains(logs.String(), "rejected bus layout") {
		t.Errorf("Layout rejection not logged: %s", logs.String())
	}

	failing := errors.New("boom")
	b.OnPrepare(func(float64, int, bus.Layout) error { return failing })
	if err := b.Prepare(48000, 256, 2); !errors.Is(err, failing) || b.Prepared() {
		t.Errorf("Callback error must abort Prepare, got %v", err)
	}
}

func TestBusesLayout(t *testing.T) {
	b, _ := newTestProcessor(t)

	if !b.IsBusesLayoutSupported(bus.Stereo) || b.IsBusesLayoutSupported(bus.Layout{Inputs: 1, Outputs: 2}) {
		t.Error("Layout support is wrong")
	}
	if err := b.SetBusesLayout(bus.Layout{Inputs: 2, Outputs: 1}); !errors.Is(err, bus.ErrUnsupportedLayout) {
		t.Errorf("Expected ErrUnsupportedLayout, got %v", err)
	}
	if b.Buses().Layout() != bus.Stereo {
		t.Error("Rejected layout changed the buses")
	}
}

func TestStateInformation(t *testing.T) {
	b, logs := newTestProcessor(t)
	b.Parameters().Set("gain", -4.5)

	data, err := b.GetStateInformation()
	if err != nil {
		t.Fatalf("GetStateInformation: %v", err)
	}

	b.Parameters().Set("gain", 0)
	b.SetStateInformation(data)
	if v, _ := b.Parameters().Value("gain"); v != -4.5 {
		t.Errorf("Expected -4.5 after restore, got %v", v)
	}

	b.SetStateInformation([]byte("<notParams/>"))
	if v, _ := b.Parameters().Value("gain"); v != -4.5 {
		t.Error("Malformed state must be ignored")
	}
	if !strings.Contains(logs.String(), "ignoring state") {
		t.Errorf("Malformed state not logged: %s", logs.String())
	}
}
