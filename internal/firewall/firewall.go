// Package firewall wraps the host packet filter. Only the small surface the
// access controller needs is exposed: allow/deny a TCP port (optionally
// scoped to a source CIDR) and check rule presence.
package firewall

import (
	"context"
	"fmt"
)

// Rule describes one inbound TCP allow/deny entry.
type Rule struct {
	Port int
	// Optional source network the rule is restricted to; empty means any.
	FromCIDR string
}

func (r Rule) String() string {
	if r.FromCIDR != "" {
		return fmt.Sprintf("%d/tcp from %s", r.Port, r.FromCIDR)
	}
	return fmt.Sprintf("%d/tcp", r.Port)
}

// Firewall is the packet-filter collaborator.
type Firewall interface {
	// Allow inserts an allow rule. Re-adding an existing rule is a no-op.
	Allow(ctx context.Context, r Rule) error
	// Deny replaces the port's exposure with an explicit deny rule.
	Deny(ctx context.Context, r Rule) error
	// IsOpen reports whether an allow rule for the port is present, along
	// with the matching rule line for display.
	IsOpen(ctx context.Context, port int) (bool, string, error)
}
