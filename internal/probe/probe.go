// Package probe performs bounded-timeout liveness checks against the
// daemon's HTTP API. Probes report failure; they never hang and never
// mutate anything.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single liveness check.
const DefaultTimeout = 3 * time.Second

// Check performs one GET against url and returns an error unless the
// response is 2xx within the timeout.
func Check(ctx context.Context, url string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("probe %s: unexpected status %d", url, resp.StatusCode)
	}
	return nil
}

// WaitReady polls url until it answers 2xx or the overall timeout elapses.
// Used after starting the daemon; the retry budget is fixed, never an
// unbounded poll.
func WaitReady(ctx context.Context, url string, timeout, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	for {
		if err := Check(ctx, url, 2*time.Second); err == nil {
			return nil
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for %s to become ready", url)
		}
	}
}
