// Package health exposes the daemon's liveness/readiness/metrics HTTP
// surface, grounded on the net/http conventions used throughout this
// codebase's health package.
package health

import (
	"context"
	"net/http"

	"github.com/cuemby/scoutd/internal/lifecycle"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves /healthz, /readyz, and /metrics on Addr.
type Server struct {
	Addr     string
	Shutdown *lifecycle.Signal

	httpServer *http.Server
}

// ListenAndServe starts the server and blocks until ctx is canceled or
// the shutdown signal fires, then gracefully shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/readyz", s.handleReadyz)
	mux.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{Addr: s.Addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case <-s.Shutdown.Done():
	case err := <-errCh:
		return err
	}

	return s.httpServer.Shutdown(context.Background())
}

// handleHealthz reports process liveness: always 200 once the server
// has started.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReadyz reports 503 the instant the shutdown signal has fired —
// the daemon stops advertising readiness before it starts draining.
func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if s.Shutdown.Fired() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("draining"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
