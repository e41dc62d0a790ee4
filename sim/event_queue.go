package sim

import "container/heap"

type queuedEvent struct {
	event Event
	seq   uint64
}

// EventQueue is a priority queue with deterministic ordering.
// Ordering: timestamp → insertion sequence. Kind and category never take part in the
// comparison, so simultaneous events pop in the order they were pushed.
type EventQueue struct {
	items   []queuedEvent
	nextSeq uint64
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{items: make([]queuedEvent, 0)}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *EventQueue) Len() int { return len(q.items) }

// Less implements heap.Interface
func (q *EventQueue) Less(i, j int) bool {
	ti, tj := q.items[i].event.Timestamp(), q.items[j].event.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return q.items[i].seq < q.items[j].seq
}

// Swap implements heap.Interface
func (q *EventQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

// Push implements heap.Interface. Use Schedule instead.
func (q *EventQueue) Push(x any) {
	q.items = append(q.items, x.(queuedEvent))
}

// Pop implements heap.Interface. Use PopMin instead.
func (q *EventQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[0 : n-1]
	return item
}

// Schedule adds an event, stamping it with the next insertion sequence number.
func (q *EventQueue) Schedule(ev Event) {
	heap.Push(q, queuedEvent{event: ev, seq: q.nextSeq})
	q.nextSeq++
}

// PopMin removes and returns the earliest event, or nil when the queue is empty.
func (q *EventQueue) PopMin() Event {
	if q.Len() == 0 {
		return nil
	}
	return heap.Pop(q).(queuedEvent).event
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() Event {
	if q.Len() == 0 {
		return nil
	}
	return q.items[0].event
}
