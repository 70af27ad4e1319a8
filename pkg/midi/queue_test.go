package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noteOn(offset int32, note uint8) NoteOnEvent {
	return NoteOnEvent{BaseEvent: BaseEvent{Offset: offset}, NoteNumber: note, Velocity: 100}
}

func TestEventQueueSorting(t *testing.T) {
	q := NewEventQueue()
	assert.True(t, q.IsEmpty())

	q.Add(noteOn(300, 62))
	q.Add(noteOn(100, 60))
	q.AddMultiple([]Event{noteOn(200, 61)})

	events := q.GetAllEvents()
	require.Len(t, events, 3)
	for i, want := range []int32{100, 200, 300} {
		assert.Equal(t, want, events[i].SampleOffset())
	}
}

func TestGetEventsInRange(t *testing.T) {
	q := NewEventQueue()
	for i, off := range []int32{0, 50, 100, 150, 200} {
		q.Add(noteOn(off, uint8(60+i)))
	}

	tests := []struct {
		start, end int32
		expected   int
	}{
		{0, 100, 2},
		{50, 150, 2},
		{100, 200, 2},
		{0, 250, 5},
		{250, 300, 0},
		{-50, 0, 0},
	}

	for _, tt := range tests {
		assert.Len(t, q.GetEventsInRange(tt.start, tt.end), tt.expected, "range [%d, %d)", tt.start, tt.end)
	}
}

func TestRemoveProcessedEvents(t *testing.T) {
	q := NewEventQueue()
	q.Add(noteOn(10, 60))
	q.Add(noteOn(512, 61))
	q.Add(noteOn(700, 62))

	q.RemoveProcessedEvents(512)

	events := q.GetAllEvents()
	require.Len(t, events, 2)
	assert.Equal(t, int32(512), events[0].SampleOffset())
}

func TestOffsetEvents(t *testing.T) {
	q := NewEventQueue()
	q.Add(noteOn(600, 60))
	q.Add(NoteOffEvent{BaseEvent: BaseEvent{Offset: 900}, NoteNumber: 60})

	q.OffsetEvents(-512)

	events := q.GetAllEvents()
	assert.Equal(t, int32(88), events[0].SampleOffset())
	assert.Equal(t, int32(388), events[1].SampleOffset())
	assert.IsType(t, NoteOffEvent{}, events[1])
}

func TestClear(t *testing.T) {
	q := NewEventQueue()
	q.Add(noteOn(1, 60))
	q.Clear()
	assert.Equal(t, 0, q.Size())
}
