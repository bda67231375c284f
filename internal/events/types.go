// Package events carries workflow progress from the execution engine to
// the stream publisher. Every run gets its own queue; events from
// different runs never share a channel.
package events

import (
	"time"

	"github.com/dugout-ai/dugout/internal/types"
)

// EventType identifies the kind of a stream event. The values are the
// wire-level event names emitted on the SSE stream.
type EventType string

// Workflow lifecycle events
const (
	EventWorkflowStart    EventType = "workflow_start"
	EventWorkflowComplete EventType = "workflow_complete"
	EventWorkflowError    EventType = "workflow_error"
)

// Node execution events
const (
	EventNodeStart    EventType = "node_start"
	EventNodeComplete EventType = "node_complete"
)

// Tool execution events
const (
	EventToolStart    EventType = "tool_start"
	EventToolComplete EventType = "tool_complete"
	EventToolError    EventType = "tool_error"
)

// String returns the wire name of the event type.
func (t EventType) String() string {
	return string(t)
}

// Event is one entry on a run's event queue. Events are immutable once
// created and consumed at most once.
type Event struct {
	Type      EventType      `json:"event"`
	Timestamp time.Time      `json:"timestamp"`
	RunID     types.ID       `json:"run_id"`
	Data      map[string]any `json:"data,omitempty"`
}

// New creates an Event stamped with the current time.
func New(t EventType, runID types.ID, data map[string]any) Event {
	return Event{
		Type:      t,
		Timestamp: time.Now(),
		RunID:     runID,
		Data:      data,
	}
}

// Terminal reports whether this event ends a run's stream. Exactly one
// terminal event is produced per run, and it is always the last one.
func (e Event) Terminal() bool {
	return e.Type == EventWorkflowComplete || e.Type == EventWorkflowError
}
