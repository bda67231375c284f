package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dugout-ai/dugout/internal/config"
)

// Server wraps the HTTP server hosting the agent endpoints.
type Server struct {
	http            *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// New wires the handler into an http.Server per cfg. The server's write
// timeout stays at zero so long-lived SSE responses are never cut off
// mid-stream.
func New(cfg config.ServerConfig, handler *Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/query/stream", handler.ServeQueryStream)
	mux.HandleFunc("/healthz", serveHealth)

	return &Server{
		http: &http.Server{
			Addr:        cfg.Addr,
			Handler:     mux,
			ReadTimeout: cfg.ReadTimeout,
		},
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully. Runs
// already streaming get until the shutdown timeout to finish.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
