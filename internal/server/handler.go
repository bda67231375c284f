// Package server exposes the agent over HTTP: a streaming query endpoint
// and a health check.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dugout-ai/dugout/internal/events"
	"github.com/dugout-ai/dugout/internal/types"
	"github.com/dugout-ai/dugout/internal/workflow"
)

// Runner is the slice of the workflow engine the HTTP layer needs.
type Runner interface {
	Run(ctx context.Context, runID types.ID, query string, q *events.Queue) *workflow.RunResult
}

// QueryRequest is the body of POST /query/stream.
type QueryRequest struct {
	Query string `json:"query"`
}

type errorResponse struct {
	Code  types.ErrorCode `json:"code"`
	Error string          `json:"error"`
}

// Handler serves the streaming query endpoint. Each request gets its own
// run ID, event queue, and run context, so concurrent queries never see
// each other's events.
type Handler struct {
	engine Runner
	poll   time.Duration
	logger *slog.Logger
}

// NewHandler builds a Handler. poll bounds how long the publisher waits
// between queue checks when no readiness signal arrives.
func NewHandler(engine Runner, poll time.Duration, logger *slog.Logger) *Handler {
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{engine: engine, poll: poll, logger: logger}
}

// ServeQueryStream handles POST /query/stream.
func (h *Handler) ServeQueryStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}

	sse := newSSEWriter(w)
	if sse == nil {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	runID := types.NewID()
	logger := h.logger.With(slog.String("run_id", runID.String()))
	logger.Info("accepted streaming query", "query", req.Query)

	// The run must not die with the request context on its own: a client
	// disconnect cancels the run explicitly below, and nothing else does.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	q := events.NewQueue()
	go h.engine.Run(runCtx, runID, req.Query, q)

	h.publish(r.Context(), cancel, q, sse, logger)
}

// publish drains the run's queue onto the SSE stream until the terminal
// event goes out or the client disconnects. The queue's readiness
// channel wakes it promptly; the poll ticker is a backstop.
func (h *Handler) publish(reqCtx context.Context, cancelRun context.CancelFunc, q *events.Queue, sse *sseWriter, logger *slog.Logger) {
	ticker := time.NewTicker(h.poll)
	defer ticker.Stop()

	for {
		for {
			ev, ok := q.TryNext()
			if !ok {
				break
			}
			if err := sse.SendEvent(ev); err != nil {
				logger.Warn("stream write failed, cancelling run", "error", err)
				cancelRun()
				return
			}
			if ev.Terminal() {
				logger.Info("stream finished", "event", ev.Type)
				return
			}
		}

		select {
		case <-reqCtx.Done():
			logger.Info("client disconnected, cancelling run")
			cancelRun()
			return
		case <-q.Ready():
		case <-ticker.C:
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Code: types.REQUEST_INVALID, Error: msg})
}
