package ollamactl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storyctl/internal/accessctl"
	"storyctl/internal/exporter"
	"storyctl/internal/firewall"
	"storyctl/internal/models"
	"storyctl/internal/service"
)

// Actions are indirected through fn* variables so CLI dispatch tests can
// stub them without touching systemd or ufw.
var (
	fnEnable      = doEnable
	fnDisable     = doDisable
	fnStatus      = doStatus
	fnServeStatus = doServeStatus
	fnModelsList  = doModelsList
	fnModelsPull  = doModelsPull
)

func controller(opts *Options) *accessctl.Controller {
	cfg := opts.cfg
	healthURL := fmt.Sprintf("http://localhost:%d%s", cfg.Port, cfg.HealthPath)
	return accessctl.New(cfg.DaemonUnit, cfg.Port, cfg.AllowCIDR, healthURL,
		service.NewSystemd(), firewall.NewUFW(), opts.logger())
}

func doEnable(ctx context.Context, opts *Options) error {
	ctl := controller(opts)
	if err := ctl.Enable(ctx); err != nil {
		return err
	}
	log := opts.logger()
	log.Info().Msg("daemon enabled and reachable on the network")
	return doStatus(ctx, opts)
}

func doDisable(ctx context.Context, opts *Options) error {
	ctl := controller(opts)
	if err := ctl.Disable(ctx); err != nil {
		return err
	}
	log := opts.logger()
	log.Info().Msg("daemon stopped and port denied")
	return doStatus(ctx, opts)
}

func doStatus(ctx context.Context, opts *Options) error {
	st, err := controller(opts).Status(ctx)
	if err != nil {
		return err
	}
	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	renderStatus(st)
	return nil
}

func doServeStatus(ctx context.Context, opts *Options, addr string, interval time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv := exporter.NewServer(controller(opts), interval, opts.logger())
	return srv.Run(ctx, addr)
}

func doModelsList(ctx context.Context, opts *Options) error {
	repo := models.NewOllamaCLI()
	installed, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(installed)
	}
	renderModels(installed)
	return nil
}

func doModelsPull(ctx context.Context, opts *Options, name string) error {
	log := opts.logger()
	log.Info().Str("model", name).Msg("pulling model")
	return models.NewOllamaCLI().Pull(ctx, name)
}
