package observability

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes Prometheus metrics and a health endpoint while the
// tool runs in watch mode.
type Server struct {
	addr   string
	server *http.Server

	mu      sync.Mutex
	lastRun time.Time
	runs    int
}

func NewServer(addr string) *Server {
	return &Server{addr: addr}
}

// RecordRun marks a completed run for the health payload.
func (s *Server) RecordRun(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = at
	s.runs++
}

func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		payload := map[string]interface{}{
			"status": "up",
			"runs":   s.runs,
		}
		if !s.lastRun.IsZero() {
			payload["last_run"] = s.lastRun.UTC().Format(time.RFC3339)
		}
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	})

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	slog.Info("observability server starting", "addr", s.addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("observability server failed", "error", err)
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
