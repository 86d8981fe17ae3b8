// Package service wraps the host process supervisor. The access controller
// and mode switch depend only on the Supervisor interface so tests can use
// fakes instead of a live systemd.
package service

import "context"

// Supervisor is the process/service supervisor collaborator.
type Supervisor interface {
	// Start activates the unit. Starting an already-active unit is a no-op.
	Start(ctx context.Context, unit string) error
	// Stop deactivates the unit. Stopping an inactive unit is a no-op.
	Stop(ctx context.Context, unit string) error
	// IsRunning reports whether the unit is active.
	IsRunning(ctx context.Context, unit string) (bool, error)
	// SetBootEnabled enables or disables the unit at boot.
	SetBootEnabled(ctx context.Context, unit string, enabled bool) error
	// IsBootEnabled reports whether the unit starts at boot.
	IsBootEnabled(ctx context.Context, unit string) (bool, error)
}
