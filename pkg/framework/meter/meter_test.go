package meter

import (
	"math"
	"sync"
	"testing"

	"github.com/justyntemme/onecomp/pkg/dsp"
	"github.com/stretchr/testify/assert"
)

func TestBusInitialState(t *testing.T) {
	b := NewBus()
	assert.Equal(t, Sample{Input: dsp.SilenceDB, GainReduction: 0, Output: dsp.SilenceDB}, b.Sample())
}

func TestBusPublish(t *testing.T) {
	b := NewBus()
	b.Publish(-6.5, 10.25, -16.75)

	assert.Equal(t, -6.5, b.InputLevel())
	assert.Equal(t, 10.25, b.GainReduction())
	assert.Equal(t, -16.75, b.OutputLevel())

	b.Reset()
	assert.Equal(t, dsp.SilenceDB, b.InputLevel())
	assert.Equal(t, 0.0, b.GainReduction())
}

func TestBusClampsReadings(t *testing.T) {
	b := NewBus()
	b.Publish(math.Inf(-1), math.NaN(), 60)

	assert.Equal(t, dsp.SilenceDB, b.InputLevel())
	assert.Equal(t, 0.0, b.GainReduction())
	assert.Equal(t, dsp.MeterCeilingDB, b.OutputLevel())

	b.Publish(0, 500, 0)
	assert.Equal(t, MaxReductionDB, b.GainReduction())
	b.Publish(0, -500, 0)
	assert.Equal(t, -MaxReductionDB, b.GainReduction())
}

func TestBusPublishNoAllocations(t *testing.T) {
	b := NewBus()
	allocs := testing.AllocsPerRun(100, func() {
		b.Publish(-12, 3, -15)
	})
	assert.Zero(t, allocs)
}

func TestBusConcurrentReaders(t *testing.T) {
	b := NewBus()
	done := make(chan struct{})

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				s := b.Sample()
				assert.True(t, s.Input >= dsp.SilenceDB && s.Input <= dsp.MeterCeilingDB)
				assert.True(t, s.Output >= dsp.SilenceDB && s.Output <= dsp.MeterCeilingDB)
			}
		}()
	}

	for i := 0; i < 10000; i++ {
		level := -float64(i % 100)
		b.Publish(level, float64(i%20), level-3)
	}
	close(done)
	wg.Wait()
}
