package timeline

import "container/heap"

// EventQueue is a queue of events ordered by time. Events scheduled for the
// same time come out in the order they were pushed.
type EventQueue struct {
	events eventHeap
	seq    uint64
}

// NewEventQueue creates and returns a newly created EventQueue
func NewEventQueue() *EventQueue {
	q := new(EventQueue)
	q.events = make(eventHeap, 0)
	heap.Init(&q.events)
	return q
}

// Push adds an event to the event queue
func (q *EventQueue) Push(evt Event) {
	heap.Push(&q.events, queuedEvent{evt: evt, seq: q.seq})
	q.seq++
}

// Pop returns the next earliest event
func (q *EventQueue) Pop() Event {
	return heap.Pop(&q.events).(queuedEvent).evt
}

// Peek returns the event in front of the queue without removing it
func (q *EventQueue) Peek() Event {
	return q.events[0].evt
}

// Len returns the number of event in the queue
func (q *EventQueue) Len() int {
	return q.events.Len()
}

type queuedEvent struct {
	evt Event
	seq uint64
}

type eventHeap []queuedEvent

func (h eventHeap) Len() int {
	return len(h)
}

// Less returns true if the i-th event happens before the j-th event.
func (h eventHeap) Less(i, j int) bool {
	if h[i].evt.Time() == h[j].evt.Time() {
		return h[i].seq < h[j].seq
	}
	return h[i].evt.Time() < h[j].evt.Time()
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(queuedEvent))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
