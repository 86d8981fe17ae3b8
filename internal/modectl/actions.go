package modectl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"storyctl/internal/modeswitch"
	"storyctl/internal/service"
	"storyctl/pkg/types"
)

var (
	fnSwitch      = doSwitch
	fnShowCurrent = doShowCurrent
)

func switcher(opts *Options) *modeswitch.Switcher {
	cfg := opts.cfg
	healthURL := fmt.Sprintf("http://localhost:%d%s", cfg.Port, cfg.HealthPath)
	return modeswitch.New(cfg.ClientConfig, cfg.Port, cfg.ServerAddr,
		cfg.ClientUnit, cfg.DaemonUnit, healthURL, service.NewSystemd(), opts.log)
}

func doSwitch(ctx context.Context, opts *Options, target types.Mode) error {
	report, err := switcher(opts).Switch(ctx, target)
	if err != nil {
		return err
	}
	return render(opts, report)
}

func doShowCurrent(opts *Options) error {
	report, err := switcher(opts).Current()
	if err != nil {
		return err
	}
	return render(opts, report)
}

func render(opts *Options, report types.ModeReport) error {
	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	label := "network server"
	if report.Mode == types.ModeLocal {
		label = "local daemon"
	}
	pterm.Printf("Mode:     %s (%s)\n", pterm.Cyan(string(report.Mode)), label)
	pterm.Printf("Endpoint: %s\n", report.Endpoint)
	pterm.Printf("Config:   %s\n", report.ConfigPath)
	return nil
}
