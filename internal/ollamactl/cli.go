// Package ollamactl is the server-side CLI: enable, disable, and status for
// the Ollama daemon's run state and network exposure, plus the model
// repository's pull/list surface.
package ollamactl

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

// Exit codes, uniform across both CLIs: 0 success, 1 operation or privilege
// failure, 2 usage (including no-argument invocations).
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// errUsage marks errors caused by how the command was invoked rather than
// by an operation failing.
var errUsage = errors.New("usage error")

// Options carries the global flags.
type Options struct {
	ConfigPath string
	LogLvl     string
	JSON       bool

	cfg config.Config
	log zerolog.Logger
}

// loadConfig resolves the effective config: defaults, then the file named by
// --config or STORYCTL_CONFIG when present.
func (o *Options) loadConfig() error {
	path := o.ConfigPath
	if path == "" {
		path = os.Getenv("STORYCTL_CONFIG")
	}
	if path == "" {
		o.cfg = config.Default()
		return nil
	}
	expanded, err := fsutil.ExpandHome(path)
	if err != nil {
		return err
	}
	cfg, err := config.Load(expanded)
	if err != nil {
		return fmt.Errorf("load config %s: %w", expanded, err)
	}
	o.cfg = cfg
	return nil
}

// MainWithArgs runs the CLI and returns the process exit code. It never
// calls os.Exit, so tests can drive it directly.
func MainWithArgs(args []string) int {
	opts := &Options{}
	root := buildRootCmd(opts)
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		if isUsageErr(err) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitOK
}

// Main is the entry point used by cmd/ollamactl.
func Main() int { return MainWithArgs(os.Args[1:]) }

func isUsageErr(err error) bool {
	if errors.Is(err, errUsage) {
		return true
	}
	// cobra reports bad invocations as plain errors
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.Contains(msg, "accepts ")
}

func (o *Options) logger() zerolog.Logger { return o.log }

func (o *Options) setup() error {
	o.log = logx.New(o.LogLvl)
	return o.loadConfig()
}
