// Package modectl is the device-side CLI: switch the storybook client
// between the local daemon and the classroom server, or report the current
// selection.
package modectl

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"storyctl/internal/common/fsutil"
	"storyctl/internal/common/logx"
	"storyctl/internal/config"
)

// Exit codes, uniform with ollamactl: 0 success, 1 operation failure,
// 2 usage (including the no-argument status display).
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

var errUsage = errors.New("usage error")

// Options carries the global flags.
type Options struct {
	ConfigPath string
	LogLvl     string
	JSON       bool
	ServerAddr string

	cfg config.Config
	log zerolog.Logger
}

func (o *Options) setup() error {
	o.log = logx.New(o.LogLvl)
	path := o.ConfigPath
	if path == "" {
		path = os.Getenv("STORYCTL_CONFIG")
	}
	if path == "" {
		o.cfg = config.Default()
	} else {
		expanded, err := fsutil.ExpandHome(path)
		if err != nil {
			return err
		}
		cfg, err := config.Load(expanded)
		if err != nil {
			return fmt.Errorf("load config %s: %w", expanded, err)
		}
		o.cfg = cfg
	}
	if o.ServerAddr != "" {
		o.cfg.ServerAddr = o.ServerAddr
	}
	if v := os.Getenv("STORYCTL_SERVER_ADDR"); v != "" && o.cfg.ServerAddr == "" {
		o.cfg.ServerAddr = v
	}
	return nil
}

// MainWithArgs runs the CLI and returns the process exit code.
func MainWithArgs(args []string) int {
	opts := &Options{}
	root := buildRootCmd(opts)
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errShownUsage) {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		if isUsageErr(err) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitOK
}

// Main is the entry point used by cmd/modectl.
func Main() int { return MainWithArgs(os.Args[1:]) }

// errShownUsage marks usage-class exits whose output was already printed
// (the no-argument status display), so Execute's caller stays quiet.
var errShownUsage = fmt.Errorf("%w: already displayed", errUsage)

func isUsageErr(err error) bool {
	if errors.Is(err, errUsage) {
		return true
	}
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.Contains(msg, "accepts ")
}
