package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCheckOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	if err := Check(context.Background(), srv.URL, time.Second); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestCheckNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	if err := Check(context.Background(), srv.URL, time.Second); err == nil {
		t.Fatalf("expected error on 503")
	}
}

func TestCheckRefusedConnection(t *testing.T) {
	// grab a port nobody is listening on
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()
	if err := Check(context.Background(), url, 500*time.Millisecond); err == nil {
		t.Fatalf("expected connection error")
	}
}

func TestCheckBoundedTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()
	start := time.Now()
	err := Check(context.Background(), srv.URL, 300*time.Millisecond)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("probe hung for %v", elapsed)
	}
}

func TestWaitReadyEventually(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	if err := WaitReady(context.Background(), srv.URL, 5*time.Second, 50*time.Millisecond); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestWaitReadyTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	if err := WaitReady(context.Background(), srv.URL, 300*time.Millisecond, 50*time.Millisecond); err == nil {
		t.Fatalf("expected timeout")
	}
}
