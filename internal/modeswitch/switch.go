// Package modeswitch repoints a storybook device between the local daemon
// and the classroom server. The config rewrite is atomic; everything around
// it (stopping and restarting the client, waking the local daemon) is
// best-effort and never fails the switch once the config is written.
package modeswitch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"storyctl/internal/clientcfg"
	"storyctl/internal/common/fsutil"
	"storyctl/internal/probe"
	"storyctl/internal/service"
	"storyctl/pkg/types"
)

const daemonWakeWait = 10 * time.Second

// Switcher performs the mode switch on one device.
type Switcher struct {
	ConfigPath string
	Port       int
	ServerAddr string
	ClientUnit string
	DaemonUnit string
	// Probed after a local-mode daemon wake.
	HealthURL string

	Supervisor service.Supervisor
	Log        zerolog.Logger

	waitFn func(ctx context.Context, url string, timeout, interval time.Duration) error
}

func New(configPath string, port int, serverAddr, clientUnit, daemonUnit, healthURL string, sup service.Supervisor, log zerolog.Logger) *Switcher {
	return &Switcher{
		ConfigPath: configPath,
		Port:       port,
		ServerAddr: serverAddr,
		ClientUnit: clientUnit,
		DaemonUnit: daemonUnit,
		HealthURL:  healthURL,
		Supervisor: sup,
		Log:        log,
		waitFn:     probe.WaitReady,
	}
}

// Current reads the device's mode without touching anything.
func (s *Switcher) Current() (types.ModeReport, error) {
	path, err := fsutil.ExpandHome(s.ConfigPath)
	if err != nil {
		return types.ModeReport{}, err
	}
	f, err := clientcfg.Load(path)
	if err != nil {
		return types.ModeReport{}, err
	}
	return types.ModeReport{Mode: f.Mode, Endpoint: f.Endpoint, ConfigPath: path}, nil
}

// Switch moves the device to target. The target is resolved to its endpoint
// before anything is stopped, so an invalid target (or a server switch with
// no server address configured) mutates nothing.
func (s *Switcher) Switch(ctx context.Context, target types.Mode) (types.ModeReport, error) {
	endpoint, err := clientcfg.EndpointFor(target, s.Port, s.ServerAddr)
	if err != nil {
		return types.ModeReport{}, err
	}
	path, err := fsutil.ExpandHome(s.ConfigPath)
	if err != nil {
		return types.ModeReport{}, err
	}
	f, err := clientcfg.Load(path)
	if err != nil {
		return types.ModeReport{}, err
	}

	// Best-effort: the client may simply not be running.
	if err := s.Supervisor.Stop(ctx, s.ClientUnit); err != nil {
		s.Log.Debug().Err(err).Str("unit", s.ClientUnit).Msg("client stop skipped")
	}

	f.Set(target, endpoint)
	if err := f.Save(); err != nil {
		return types.ModeReport{}, fmt.Errorf("write client config: %w", err)
	}

	if target == types.ModeLocal {
		// The mode switch already succeeded at the config level; a daemon
		// that will not wake is a warning, not a failure.
		if err := s.Supervisor.Start(ctx, s.DaemonUnit); err != nil {
			s.Log.Warn().Err(err).Str("unit", s.DaemonUnit).Msg("could not start local daemon")
		} else if err := s.waitFn(ctx, s.HealthURL, daemonWakeWait, time.Second); err != nil {
			s.Log.Warn().Err(err).Msg("local daemon not answering yet")
		}
	}

	if err := s.Supervisor.Start(ctx, s.ClientUnit); err != nil {
		s.Log.Warn().Err(err).Str("unit", s.ClientUnit).Msg("could not restart client")
	}

	return types.ModeReport{Mode: target, Endpoint: endpoint, ConfigPath: path}, nil
}
