// Package status serves the update loop's health over HTTP.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rickgao/coinsheet/internal/loop"
	"github.com/rickgao/coinsheet/internal/version"
)

// Provider reports the loop's current status.
type Provider interface {
	Status() loop.Status
}

// Handler returns the mux serving /healthz and /status.
func Handler(p Provider) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		st := p.Status()

		health := struct {
			Status  string `json:"status"`
			State   string `json:"state"`
			Attempt int    `json:"attempt"`
		}{
			Status:  "healthy",
			State:   st.State,
			Attempt: st.Attempt,
		}

		switch {
		case st.State == loop.StateStopped.String():
			health.Status = "unhealthy"
		case st.Attempt > 0:
			health.Status = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			loop.Status
			Version string `json:"version"`
		}{
			Status:  p.Status(),
			Version: version.String(),
		})
	})

	return mux
}

// Server runs the status handler on a port.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewServer creates a Server listening on port.
func NewServer(port int, p Provider, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           Handler(p),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start serves in the background.
func (s *Server) Start() {
	go func() {
		s.logger.Info("starting status server", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("status server error", "error", err)
		}
	}()
}

// Shutdown stops the server, waiting up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
