package midi

import "sort"

// DefaultCapacity is the event capacity used by NewBuffer when none is given.
const DefaultCapacity = 512

// Buffer holds the events for one block, ordered by sample offset. Its
// capacity is fixed at construction so Clear and InRange never allocate.
// A Buffer is owned by one goroutine at a time.
type Buffer struct {
	events  []Event
	dropped int
}

// NewBuffer creates a buffer holding up to capacity events.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{events: make([]Event, 0, capacity)}
}

// Add inserts an event in offset order. Events beyond the capacity are
// counted and dropped.
func (b *Buffer) Add(event Event) bool {
	if len(b.events) == cap(b.events) {
		b.dropped++
		return false
	}
	i := sort.Search(len(b.events), func(i int) bool {
		return b.events[i].SampleOffset() > event.SampleOffset()
	})
	b.events = append(b.events, nil)
	copy(b.events[i+1:], b.events[i:])
	b.events[i] = event
	return true
}

// Events returns all buffered events. The slice is reused after Clear.
func (b *Buffer) Events() []Event {
	return b.events
}

// InRange returns the events with startSample <= offset < endSample.
func (b *Buffer) InRange(startSample, endSample int32) []Event {
	lo := sort.Search(len(b.events), func(i int) bool {
		return b.events[i].SampleOffset() >= startSample
	})
	hi := sort.Search(len(b.events), func(i int) bool {
		return b.events[i].SampleOffset() >= endSample
	})
	if hi < lo {
		hi = lo
	}
	return b.events[lo:hi]
}

// Len returns the number of buffered events.
func (b *Buffer) Len() int { return len(b.events) }

// Dropped returns how many events did not fit since the last Clear.
func (b *Buffer) Dropped() int { return b.dropped }

// Clear empties the buffer, keeping its storage.
func (b *Buffer) Clear() {
	clear(b.events)
	b.events = b.events[:0]
	b.dropped = 0
}
