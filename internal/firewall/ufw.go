package firewall

import (
	"context"
	"fmt"
	"strings"

	"storyctl/internal/execx"
)

// UFW drives the uncomplicated firewall CLI. ufw add/deny are idempotent on
// their own ("Skipping adding existing rule"), which gives the controller
// its idempotent enable/disable for free.
type UFW struct {
	run func(ctx context.Context, c execx.Cmd) error
	out func(ctx context.Context, c execx.Cmd) (string, error)
}

func NewUFW() *UFW {
	return &UFW{run: execx.Run, out: execx.Output}
}

func (u *UFW) Allow(ctx context.Context, r Rule) error {
	args := []string{"allow", fmt.Sprintf("%d/tcp", r.Port)}
	if r.FromCIDR != "" {
		args = []string{"allow", "from", r.FromCIDR, "to", "any", "port", fmt.Sprintf("%d", r.Port), "proto", "tcp"}
	}
	if err := u.run(ctx, execx.MaybeSudo(execx.Cmd{Path: "ufw", Args: args})); err != nil {
		return fmt.Errorf("ufw allow %s: %w", r, err)
	}
	return nil
}

func (u *UFW) Deny(ctx context.Context, r Rule) error {
	// Remove any scoped allow first so the deny is what matches. Deleting a
	// rule that does not exist exits zero, so this stays idempotent.
	delArgs := []string{"delete", "allow", fmt.Sprintf("%d/tcp", r.Port)}
	if r.FromCIDR != "" {
		delArgs = []string{"delete", "allow", "from", r.FromCIDR, "to", "any", "port", fmt.Sprintf("%d", r.Port), "proto", "tcp"}
	}
	if err := u.run(ctx, execx.MaybeSudo(execx.Cmd{Path: "ufw", Args: delArgs})); err != nil {
		return fmt.Errorf("ufw delete allow %s: %w", r, err)
	}
	if err := u.run(ctx, execx.MaybeSudo(execx.Cmd{Path: "ufw", Args: []string{"deny", fmt.Sprintf("%d/tcp", r.Port)}})); err != nil {
		return fmt.Errorf("ufw deny %d/tcp: %w", r.Port, err)
	}
	return nil
}

func (u *UFW) IsOpen(ctx context.Context, port int) (bool, string, error) {
	text, err := u.out(ctx, execx.MaybeSudo(execx.Cmd{Path: "ufw", Args: []string{"status"}}))
	if err != nil {
		return false, "", fmt.Errorf("ufw status: %w", err)
	}
	return parseStatus(text, port)
}

// parseStatus scans `ufw status` output for the port. An ALLOW line wins
// over a DENY line for the same port only if it appears first, matching
// ufw's first-match rule ordering.
func parseStatus(text string, port int) (bool, string, error) {
	needle := fmt.Sprintf("%d/tcp", port)
	alt := fmt.Sprintf("port %d", port)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.Contains(trimmed, needle) && !strings.Contains(trimmed, alt) {
			continue
		}
		upper := strings.ToUpper(trimmed)
		switch {
		case strings.Contains(upper, "ALLOW"):
			return true, trimmed, nil
		case strings.Contains(upper, "DENY"), strings.Contains(upper, "REJECT"):
			return false, trimmed, nil
		}
	}
	return false, "", nil
}
