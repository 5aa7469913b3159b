package event

import (
	"context"
)

// DefaultCapacity bounds the mailbox between the producer tasks and the
// controller. Four slots are enough: the controller drains faster than
// the 5ms producer periods can fill.
const DefaultCapacity = 4

// Queue is a bounded, strictly FIFO mailbox. Multiple producers may
// send concurrently; the controller is the single consumer.
type Queue struct {
	events chan Event
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		events: make(chan Event, capacity),
	}
}

// Send blocks until the event has been enqueued or ctx is cancelled.
// Producers whose events must never be lost use this.
func (q *Queue) Send(ctx context.Context, e Event) error {
	select {
	case q.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend enqueues the event if there is space and reports whether it
// was accepted. Producers with low-consequence events use this and
// simply drop on a full queue.
func (q *Queue) TrySend(e Event) bool {
	select {
	case q.events <- e:
		return true
	default:
		return false
	}
}

// Events exposes the receive side for select-based consumption.
func (q *Queue) Events() <-chan Event {
	return q.events
}
