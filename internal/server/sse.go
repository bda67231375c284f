package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dugout-ai/dugout/internal/events"
)

// sseWriter sends Server-Sent Events to an http.ResponseWriter.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// newSSEWriter prepares w for event streaming. It returns nil when the
// ResponseWriter cannot flush, since buffered SSE defeats the point.
func newSSEWriter(w http.ResponseWriter) *sseWriter {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // nginx
	flusher.Flush()

	return &sseWriter{w: w, flusher: flusher}
}

// streamFrame is the wire shape of one event on the stream.
type streamFrame struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

// SendEvent frames a workflow event and flushes it to the client. The
// timestamp travels inside the data object next to the event payload.
func (s *sseWriter) SendEvent(ev events.Event) error {
	data := make(map[string]any, len(ev.Data)+1)
	for k, v := range ev.Data {
		data[k] = v
	}
	data["timestamp"] = ev.Timestamp.Format(time.RFC3339)

	raw, err := json.Marshal(streamFrame{Event: ev.Type.String(), Data: data})
	if err != nil {
		return fmt.Errorf("marshal stream event: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", raw); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
