package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugout-ai/dugout/internal/events"
	"github.com/dugout-ai/dugout/internal/types"
	"github.com/dugout-ai/dugout/internal/workflow"
)

// scriptedRunner pushes a fixed event sequence onto the run queue.
type scriptedRunner struct {
	events []events.Event
}

func (r *scriptedRunner) Run(ctx context.Context, runID types.ID, query string, q *events.Queue) *workflow.RunResult {
	for _, ev := range r.events {
		ev.RunID = runID
		q.Push(ev)
	}
	return &workflow.RunResult{RunID: runID, Query: query}
}

// blockingRunner parks until its context is cancelled, then reports it.
type blockingRunner struct {
	cancelled chan struct{}
}

func (r *blockingRunner) Run(ctx context.Context, runID types.ID, query string, q *events.Queue) *workflow.RunResult {
	q.Push(events.New(events.EventWorkflowStart, runID, map[string]any{"query": query}))
	<-ctx.Done()
	close(r.cancelled)
	return &workflow.RunResult{RunID: runID, Query: query, Status: workflow.RunStatusFailed}
}

func newTestServer(runner Runner) *httptest.Server {
	h := NewHandler(runner, 10*time.Millisecond, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("/query/stream", h.ServeQueryStream)
	return httptest.NewServer(mux)
}

// readFrames parses the SSE body into its decoded data frames.
func readFrames(t *testing.T, body io.Reader) []map[string]any {
	t.Helper()
	var frames []map[string]any
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var frame map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &frame))
		frames = append(frames, frame)
	}
	return frames
}

func TestStreamHappyPath(t *testing.T) {
	runID := types.NewID()
	runner := &scriptedRunner{events: []events.Event{
		events.New(events.EventWorkflowStart, runID, map[string]any{"query": "who won?"}),
		events.New(events.EventToolStart, runID, map[string]any{"tool": "get_game_linescore"}),
		events.New(events.EventToolComplete, runID, map[string]any{"tool": "get_game_linescore", "execution_time": 0.2}),
		events.New(events.EventWorkflowComplete, runID, map[string]any{
			"final_answer":         "The Rangers won.",
			"total_execution_time": 1.5,
		}),
	}}
	srv := newTestServer(runner)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/query/stream", "application/json",
		strings.NewReader(`{"query": "who won?"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))

	frames := readFrames(t, resp.Body)
	require.Len(t, frames, 4, "stream ends after the terminal event")

	assert.Equal(t, "workflow_start", frames[0]["event"])
	assert.Equal(t, "tool_start", frames[1]["event"])
	assert.Equal(t, "tool_complete", frames[2]["event"])
	assert.Equal(t, "workflow_complete", frames[3]["event"])

	last, ok := frames[3]["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "The Rangers won.", last["final_answer"])
	assert.Equal(t, 1.5, last["total_execution_time"])

	// Every frame carries its timestamp inside the data object.
	for _, frame := range frames {
		data, ok := frame["data"].(map[string]any)
		require.True(t, ok)
		ts, ok := data["timestamp"].(string)
		require.True(t, ok)
		_, err := time.Parse(time.RFC3339, ts)
		assert.NoError(t, err)
	}
}

func TestStreamStopsAtErrorEvent(t *testing.T) {
	runID := types.NewID()
	runner := &scriptedRunner{events: []events.Event{
		events.New(events.EventWorkflowStart, runID, nil),
		events.New(events.EventWorkflowError, runID, map[string]any{"error": "routing decision failed"}),
	}}
	srv := newTestServer(runner)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/query/stream", "application/json",
		strings.NewReader(`{"query": "q"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	frames := readFrames(t, resp.Body)
	require.Len(t, frames, 2)
	assert.Equal(t, "workflow_error", frames[1]["event"])
}

func TestStreamRejectsBadRequests(t *testing.T) {
	srv := newTestServer(&scriptedRunner{})
	defer srv.Close()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"query": `},
		{"empty query", `{"query": ""}`},
		{"whitespace query", `{"query": "   "}`},
		{"missing query", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/query/stream", "application/json",
				strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var body errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, types.REQUEST_INVALID, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestStreamRejectsWrongMethod(t *testing.T) {
	srv := newTestServer(&scriptedRunner{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/query/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestDisconnectCancelsRun(t *testing.T) {
	runner := &blockingRunner{cancelled: make(chan struct{})}
	srv := newTestServer(runner)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+"/query/stream",
		strings.NewReader(`{"query": "q"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	// Wait for the first event so the run is definitely underway, then
	// drop the connection.
	reader := bufio.NewReader(resp.Body)
	_, err = reader.ReadString('\n')
	require.NoError(t, err)
	cancel()
	resp.Body.Close()

	select {
	case <-runner.cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("run context was not cancelled on disconnect")
	}
}
