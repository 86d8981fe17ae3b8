package service

import (
	"context"
	"fmt"
	"strings"

	"storyctl/internal/execx"
)

// Systemd shells out to systemctl. Mutating calls escalate with sudo when
// needed; read-only checks do not.
type Systemd struct {
	run func(ctx context.Context, c execx.Cmd) error
	out func(ctx context.Context, c execx.Cmd) (string, error)
}

func NewSystemd() *Systemd {
	return &Systemd{run: execx.Run, out: execx.Output}
}

func (s *Systemd) Start(ctx context.Context, unit string) error {
	if err := s.run(ctx, execx.MaybeSudo(execx.Cmd{Path: "systemctl", Args: []string{"start", unit}})); err != nil {
		return fmt.Errorf("systemctl start %s: %w", unit, err)
	}
	return nil
}

func (s *Systemd) Stop(ctx context.Context, unit string) error {
	if err := s.run(ctx, execx.MaybeSudo(execx.Cmd{Path: "systemctl", Args: []string{"stop", unit}})); err != nil {
		return fmt.Errorf("systemctl stop %s: %w", unit, err)
	}
	return nil
}

// IsRunning interprets `systemctl is-active`, which exits nonzero for any
// inactive-ish state while still printing the state word.
func (s *Systemd) IsRunning(ctx context.Context, unit string) (bool, error) {
	text, err := s.out(ctx, execx.Cmd{Path: "systemctl", Args: []string{"is-active", unit}})
	state := strings.TrimSpace(text)
	if state == "active" {
		return true, nil
	}
	switch state {
	case "inactive", "failed", "deactivating", "activating", "unknown":
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("systemctl is-active %s: %w", unit, err)
	}
	return false, nil
}

func (s *Systemd) SetBootEnabled(ctx context.Context, unit string, enabled bool) error {
	verb := "enable"
	if !enabled {
		verb = "disable"
	}
	if err := s.run(ctx, execx.MaybeSudo(execx.Cmd{Path: "systemctl", Args: []string{verb, unit}})); err != nil {
		return fmt.Errorf("systemctl %s %s: %w", verb, unit, err)
	}
	return nil
}

func (s *Systemd) IsBootEnabled(ctx context.Context, unit string) (bool, error) {
	text, err := s.out(ctx, execx.Cmd{Path: "systemctl", Args: []string{"is-enabled", unit}})
	state := strings.TrimSpace(text)
	if state == "enabled" || state == "enabled-runtime" {
		return true, nil
	}
	switch state {
	case "disabled", "static", "masked", "indirect", "not-found":
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("systemctl is-enabled %s: %w", unit, err)
	}
	return false, nil
}
