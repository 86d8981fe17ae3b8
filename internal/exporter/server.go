// Package exporter serves the access controller's status continuously for
// fleet monitoring: /status as JSON, /metrics for Prometheus, /healthz.
// Strictly read-only; it re-runs the same status observation the CLI makes,
// on a fixed interval.
package exporter

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"storyctl/pkg/types"
)

// StatusSource is the read-only slice of the access controller the exporter
// depends on.
type StatusSource interface {
	Status(ctx context.Context) (types.ServiceStatus, error)
}

// Server polls the status source and serves the latest observation.
type Server struct {
	src      StatusSource
	interval time.Duration
	log      zerolog.Logger

	mu      sync.RWMutex
	last    types.ServiceStatus
	lastErr error
}

func NewServer(src StatusSource, interval time.Duration, log zerolog.Logger) *Server {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Server{src: src, interval: interval, log: log}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		st, err := s.snapshot()
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		_ = json.NewEncoder(w).Encode(st)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func (s *Server) snapshot() (types.ServiceStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.lastErr
}

func (s *Server) refresh(ctx context.Context) {
	st, err := s.src.Status(ctx)
	s.mu.Lock()
	s.last, s.lastErr = st, err
	s.mu.Unlock()
	if err != nil {
		statusErrors.Inc()
		s.log.Error().Err(err).Msg("status refresh failed")
		return
	}
	recordStatus(st)
}

// Run serves until ctx is cancelled, then shuts down with a bounded drain.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.refresh(ctx)
	srv := &http.Server{Addr: addr, Handler: s.Routes()}

	go func() {
		t := time.NewTicker(s.interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				s.refresh(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("exporter listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
