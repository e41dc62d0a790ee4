package sim

import (
	"testing"
)

// TestEventQueue_TimestampOrdering tests that events are popped in timestamp order
func TestEventQueue_TimestampOrdering(t *testing.T) {
	q := NewEventQueue()

	// Add events with different timestamps in random order
	q.Schedule(NewArrivalEvent(1.5, 1, "A"))
	q.Schedule(NewDepartureEvent(0.5, 2, "B"))
	q.Schedule(NewArrivalEvent(2.5, 3, "C"))

	want := []float64{0.5, 1.5, 2.5}
	for i, w := range want {
		ev := q.PopMin()
		if ev.Timestamp() != w {
			t.Errorf("event %d timestamp = %g, want %g", i, ev.Timestamp(), w)
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue should be empty, len = %d", q.Len())
	}
}

// TestEventQueue_TiesPopInInsertionOrder tests that equal timestamps are ordered by
// insertion sequence, whatever their kind or category.
func TestEventQueue_TiesPopInInsertionOrder(t *testing.T) {
	q := NewEventQueue()

	q.Schedule(NewDepartureEvent(3.0, 10, "F"))
	q.Schedule(NewArrivalEvent(3.0, 11, "A"))
	q.Schedule(NewDepartureEvent(1.0, 12, "C"))
	q.Schedule(NewArrivalEvent(3.0, 13, "B"))

	want := []PatientID{12, 10, 11, 13}
	for i, w := range want {
		ev := q.PopMin()
		if ev.Patient() != w {
			t.Errorf("pop %d: patient = %d, want %d", i, ev.Patient(), w)
		}
	}
}

// TestEventQueue_DeterministicAcrossQueues tests that two queues fed the same sequence
// yield the same order.
func TestEventQueue_DeterministicAcrossQueues(t *testing.T) {
	build := func() *EventQueue {
		q := NewEventQueue()
		for i := 0; i < 50; i++ {
			q.Schedule(NewArrivalEvent(float64(i%5), PatientID(i), "A"))
		}
		return q
	}
	q1, q2 := build(), build()
	for q1.Len() > 0 {
		e1, e2 := q1.PopMin(), q2.PopMin()
		if e1.Patient() != e2.Patient() || e1.Timestamp() != e2.Timestamp() {
			t.Fatalf("queues diverged: (%g,%d) vs (%g,%d)", e1.Timestamp(), e1.Patient(), e2.Timestamp(), e2.Patient())
		}
	}
}

func TestEventQueue_EmptyQueue_ReturnsNil(t *testing.T) {
	q := NewEventQueue()
	if q.PopMin() != nil {
		t.Error("PopMin on empty queue should return nil")
	}
	if q.Peek() != nil {
		t.Error("Peek on empty queue should return nil")
	}
}

func TestEventQueue_Peek_DoesNotRemove(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(NewArrivalEvent(2, 1, "A"))
	q.Schedule(NewArrivalEvent(1, 2, "A"))

	if got := q.Peek().Patient(); got != 2 {
		t.Errorf("Peek patient = %d, want 2", got)
	}
	if q.Len() != 2 {
		t.Errorf("Peek changed length to %d", q.Len())
	}
}

func TestEventKind_String(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{KindArrival, "Arrival"},
		{KindDeparture, "Departure"},
		{EventKind(9), "EventKind(9)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
