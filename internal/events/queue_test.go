package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugout-ai/dugout/internal/types"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	runID := types.NewID()

	q.Push(New(EventWorkflowStart, runID, nil))
	q.Push(New(EventNodeStart, runID, map[string]any{"node": "route"}))
	q.Push(New(EventWorkflowComplete, runID, nil))
	assert.Equal(t, 3, q.Len())

	want := []EventType{EventWorkflowStart, EventNodeStart, EventWorkflowComplete}
	for _, w := range want {
		ev, ok := q.TryNext()
		require.True(t, ok)
		assert.Equal(t, w, ev.Type)
	}
}

func TestQueueTryNextEmpty(t *testing.T) {
	q := NewQueue()
	_, ok := q.TryNext()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestQueueReadyWakesConsumer(t *testing.T) {
	q := NewQueue()

	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Push(New(EventToolStart, types.NewID(), nil))
	}()

	select {
	case <-q.Ready():
	case <-time.After(time.Second):
		t.Fatal("consumer was never woken")
	}

	ev, ok := q.TryNext()
	require.True(t, ok)
	assert.Equal(t, EventToolStart, ev.Type)
}

func TestQueueCoalescedWakeups(t *testing.T) {
	q := NewQueue()
	runID := types.NewID()

	// Multiple pushes with no consumer must not block the producer.
	for i := 0; i < 10; i++ {
		q.Push(New(EventNodeStart, runID, nil))
	}

	// One wakeup, then drain everything.
	<-q.Ready()
	drained := 0
	for {
		if _, ok := q.TryNext(); !ok {
			break
		}
		drained++
	}
	assert.Equal(t, 10, drained)
}

func TestQueuesAreIndependent(t *testing.T) {
	a := NewQueue()
	b := NewQueue()

	a.Push(New(EventWorkflowStart, types.NewID(), nil))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())

	select {
	case <-b.Ready():
		t.Fatal("push to one queue must not signal another")
	default:
	}
}

func TestEventTerminal(t *testing.T) {
	tests := []struct {
		typ  EventType
		want bool
	}{
		{EventWorkflowComplete, true},
		{EventWorkflowError, true},
		{EventWorkflowStart, false},
		{EventNodeStart, false},
		{EventNodeComplete, false},
		{EventToolStart, false},
		{EventToolComplete, false},
		{EventToolError, false},
	}

	for _, tt := range tests {
		ev := New(tt.typ, types.NewID(), nil)
		assert.Equal(t, tt.want, ev.Terminal(), "%s", tt.typ)
	}
}
