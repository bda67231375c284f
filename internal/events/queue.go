package events

import "sync"

// Queue is an unbounded FIFO event queue connecting one producer (the
// execution engine, on its worker goroutine) to one consumer (the stream
// publisher, on the request-handling goroutine).
//
// Push never blocks and TryNext never waits; a consumer that finds the
// queue empty can park on Ready() until the next push instead of
// spinning. The ready channel holds a single slot, so repeated pushes
// coalesce into one wakeup and the consumer drains the queue after each.
type Queue struct {
	mu    sync.Mutex
	items []Event
	ready chan struct{}
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Push appends an event and signals the consumer.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.items = append(q.items, e)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// TryNext dequeues the oldest event without waiting. The second return
// value is false when the queue is empty.
func (q *Queue) TryNext() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Event{}, false
	}
	e := q.items[0]
	q.items = q.items[1:]
	return e, true
}

// Ready returns a channel that receives a value after a push. It is a
// wakeup hint, not a count: after receiving, drain with TryNext until
// empty.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
