package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"storyctl/pkg/types"
)

type fakeSource struct {
	st  types.ServiceStatus
	err error
}

func (f *fakeSource) Status(context.Context) (types.ServiceStatus, error) {
	return f.st, f.err
}

func newTestServer(src StatusSource) *Server {
	s := NewServer(src, time.Minute, zerolog.Nop())
	s.refresh(context.Background())
	return s
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&fakeSource{})
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("code: %d", rec.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	src := &fakeSource{st: types.ServiceStatus{Unit: "ollama", Running: true, FirewallOpen: true, Port: 11434}}
	s := newTestServer(src)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("code: %d body: %s", rec.Code, rec.Body.String())
	}
	var got types.ServiceStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Running || !got.FirewallOpen || got.Unit != "ollama" {
		t.Fatalf("payload: %+v", got)
	}
}

func TestStatusEndpointSourceFailure(t *testing.T) {
	s := newTestServer(&fakeSource{err: fmt.Errorf("systemctl unavailable")})
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("code: %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	src := &fakeSource{st: types.ServiceStatus{Running: true, ProbeAttempted: true, ProbeOK: true}}
	s := newTestServer(src)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("code: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"storyctl_ollama_daemon_up", "storyctl_ollama_probe_ok"} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics missing %s", want)
		}
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s := newTestServer(&fakeSource{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()
	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("server did not shut down")
	}
}
