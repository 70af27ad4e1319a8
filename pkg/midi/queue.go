package midi

import (
	"sort"
	"sync"
)

// EventQueue holds events ordered by sample offset. Hosts fill it on the
// control side and drain it block by block.
type EventQueue struct {
	events []Event
	mu     sync.Mutex
	sorted bool
}

func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: make([]Event, 0, 128),
		sorted: true,
	}
}

func (q *EventQueue) Add(event Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, event)
	q.sorted = false
}

func (q *EventQueue) AddMultiple(events []Event) {
	if len(events) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, events...)
	q.sorted = false
}

// GetEventsInRange returns events with startSample <= offset < endSample.
func (q *EventQueue) GetEventsInRange(startSample, endSample int32) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.sorted {
		q.sortEvents()
	}

	startIdx := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].SampleOffset() >= startSample
	})

	endIdx := startIdx
	for endIdx < len(q.events) && q.events[endIdx].SampleOffset() < endSample {
		endIdx++
	}

	if startIdx == endIdx {
		return nil
	}

	result := make([]Event, endIdx-startIdx)
	copy(result, q.events[startIdx:endIdx])
	return result
}

func (q *EventQueue) GetAllEvents() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.sorted {
		q.sortEvents()
	}

	result := make([]Event, len(q.events))
	copy(result, q.events)
	return result
}

func (q *EventQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = q.events[:0]
	q.sorted = true
}

// RemoveProcessedEvents drops every event with offset < upToSample.
func (q *EventQueue) RemoveProcessedEvents(upToSample int32) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.sorted {
		q.sortEvents()
	}

	keepIdx := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].SampleOffset() >= upToSample
	})

	if keepIdx > 0 {
		n := copy(q.events, q.events[keepIdx:])
		q.events = q.events[:n]
	}
}

// OffsetEvents shifts every event by offset samples.
func (q *EventQueue) OffsetEvents(offset int32) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.events {
		q.events[i] = e.WithOffset(e.SampleOffset() + offset)
	}
}

func (q *EventQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

func (q *EventQueue) IsEmpty() bool {
	return q.Size() == 0
}

func (q *EventQueue) sortEvents() {
	sort.SliceStable(q.events, func(i, j int) bool {
		return q.events[i].SampleOffset() < q.events[j].SampleOffset()
	})
	q.sorted = true
}
