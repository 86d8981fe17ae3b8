// Package accessctl implements the service access controller: enable,
// disable, and status over the Ollama daemon's run state and its network
// exposure through the firewall.
//
// Contract: enable and disable manage both the process and the firewall.
// enable drives toward running/open, disable toward stopped/denied. The two
// observations are allowed to diverge (daemon stopped with the port still
// open, and vice versa); status reports each one independently and never
// assumes one implies the other.
package accessctl

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"storyctl/internal/firewall"
	"storyctl/internal/probe"
	"storyctl/internal/service"
	"storyctl/pkg/types"
)

// readyWait bounds the post-start readiness poll.
const (
	readyWait     = 15 * time.Second
	readyInterval = time.Second
)

// Controller ties the supervisor, firewall, and probe together. All
// collaborators are injected so the state machine is testable with fakes.
type Controller struct {
	Unit      string
	Port      int
	AllowCIDR string
	// Full URL probed for liveness, e.g. http://localhost:11434/api/tags.
	HealthURL string

	Supervisor service.Supervisor
	Firewall   firewall.Firewall
	Log        zerolog.Logger

	// probe indirection for tests
	checkFn func(ctx context.Context, url string, timeout time.Duration) error
	waitFn  func(ctx context.Context, url string, timeout, interval time.Duration) error
}

// New returns a controller wired to the real probe functions.
func New(unit string, port int, allowCIDR, healthURL string, sup service.Supervisor, fw firewall.Firewall, log zerolog.Logger) *Controller {
	return &Controller{
		Unit:       unit,
		Port:       port,
		AllowCIDR:  allowCIDR,
		HealthURL:  healthURL,
		Supervisor: sup,
		Firewall:   fw,
		Log:        log,
		checkFn:    probe.Check,
		waitFn:     probe.WaitReady,
	}
}

func (c *Controller) rule() firewall.Rule {
	return firewall.Rule{Port: c.Port, FromCIDR: c.AllowCIDR}
}

// Enable starts the daemon, enables it at boot, waits (bounded) for it to
// answer, and opens the firewall rule. Every step is idempotent, so a re-run
// after an interruption converges on running/open.
func (c *Controller) Enable(ctx context.Context) error {
	c.Log.Info().Str("unit", c.Unit).Msg("starting daemon")
	if err := c.Supervisor.Start(ctx, c.Unit); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}
	if err := c.Supervisor.SetBootEnabled(ctx, c.Unit, true); err != nil {
		return fmt.Errorf("enable daemon at boot: %w", err)
	}
	if err := c.waitFn(ctx, c.HealthURL, readyWait, readyInterval); err != nil {
		// The daemon is started; a slow warmup should not fail enable.
		c.Log.Warn().Err(err).Msg("daemon not answering yet; continuing")
	}
	c.Log.Info().Stringer("rule", c.rule()).Msg("opening firewall")
	if err := c.Firewall.Allow(ctx, c.rule()); err != nil {
		return fmt.Errorf("open firewall: %w", err)
	}
	return nil
}

// Disable stops the daemon, disables it at boot, and replaces the port's
// exposure with an explicit deny rule. Idempotent under repeated calls.
func (c *Controller) Disable(ctx context.Context) error {
	c.Log.Info().Str("unit", c.Unit).Msg("stopping daemon")
	if err := c.Supervisor.Stop(ctx, c.Unit); err != nil {
		return fmt.Errorf("stop daemon: %w", err)
	}
	if err := c.Supervisor.SetBootEnabled(ctx, c.Unit, false); err != nil {
		return fmt.Errorf("disable daemon at boot: %w", err)
	}
	c.Log.Info().Int("port", c.Port).Msg("closing firewall")
	if err := c.Firewall.Deny(ctx, c.rule()); err != nil {
		return fmt.Errorf("close firewall: %w", err)
	}
	return nil
}

// Status reports the current state without mutating anything. The liveness
// probe runs only when the daemon is active; when it is not, the probe is
// skipped rather than attempted and failed. Probe failure is a status
// field, never an error.
func (c *Controller) Status(ctx context.Context) (types.ServiceStatus, error) {
	st := types.ServiceStatus{
		Unit:          c.Unit,
		Port:          c.Port,
		CheckedAtUnix: time.Now().Unix(),
	}
	running, err := c.Supervisor.IsRunning(ctx, c.Unit)
	if err != nil {
		return st, fmt.Errorf("query daemon state: %w", err)
	}
	st.Running = running

	enabled, err := c.Supervisor.IsBootEnabled(ctx, c.Unit)
	if err != nil {
		return st, fmt.Errorf("query boot state: %w", err)
	}
	st.BootEnabled = enabled

	open, ruleLine, err := c.Firewall.IsOpen(ctx, c.Port)
	if err != nil {
		return st, fmt.Errorf("query firewall state: %w", err)
	}
	st.FirewallOpen = open
	st.FirewallRule = ruleLine

	if running {
		st.ProbeAttempted = true
		if perr := c.checkFn(ctx, c.HealthURL, probe.DefaultTimeout); perr != nil {
			st.ProbeError = perr.Error()
		} else {
			st.ProbeOK = true
		}
	}
	return st, nil
}
