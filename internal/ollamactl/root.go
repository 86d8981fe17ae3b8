package ollamactl

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storyctl/internal/common/logx"
)

// buildRootCmd constructs the Cobra command tree wired to the fn* actions.
func buildRootCmd(opts *Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "ollamactl",
		Short:         "Control the Ollama daemon's run state and network exposure",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No-argument invocation is a help path, exit code 2.
			_ = cmd.Help()
			return errUsage
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"config file (.yaml/.json/.toml); defaults STORYCTL_CONFIG")
	root.PersistentFlags().StringVar(&opts.LogLvl, "log-level", logx.EnvStr("STORYCTL_LOG_LEVEL", "info"),
		"log level: debug|info|warn|error")
	root.PersistentFlags().BoolVar(&opts.JSON, "json", false, "emit machine-readable JSON instead of formatted output")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return opts.setup()
	}

	enableCmd := &cobra.Command{
		Use:   "enable",
		Short: "Start the daemon, enable it at boot, and open the firewall port",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnEnable(cmd.Context(), opts)
		},
	}

	disableCmd := &cobra.Command{
		Use:   "disable",
		Short: "Stop the daemon, disable it at boot, and deny the firewall port",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnDisable(cmd.Context(), opts)
		},
	}

	var listen string
	var interval time.Duration
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Report run state, firewall exposure, and daemon liveness (read-only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				return fnServeStatus(cmd.Context(), opts, listen, interval)
			}
			return fnStatus(cmd.Context(), opts)
		},
	}
	statusCmd.Flags().StringVar(&listen, "listen", "", "serve status continuously on this address (/status, /metrics, /healthz)")
	statusCmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "status refresh interval when serving")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Model repository operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("%w: models requires a subcommand: list|pull", errUsage)
		},
	}
	modelsList := &cobra.Command{
		Use:   "list",
		Short: "List installed models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnModelsList(cmd.Context(), opts)
		},
	}
	modelsPull := &cobra.Command{
		Use:   "pull <name>",
		Short: "Pull a model by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnModelsPull(cmd.Context(), opts, args[0])
		},
	}
	modelsCmd.AddCommand(modelsList, modelsPull)

	root.AddCommand(enableCmd, disableCmd, statusCmd, modelsCmd)
	return root
}
