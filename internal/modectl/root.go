package modectl

import (
	"fmt"

	"github.com/spf13/cobra"

	"storyctl/internal/common/logx"
	"storyctl/pkg/types"
)

// buildRootCmd constructs the Cobra command. modectl takes the target mode
// as a positional argument: `modectl local` or `modectl server`.
func buildRootCmd(opts *Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "modectl [local|server]",
		Short:         "Point the storybook client at the local daemon or the classroom server",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Help path: show the current mode read-only, exit 2.
				if err := fnShowCurrent(opts); err != nil {
					opts.log.Warn().Err(err).Msg("could not read current mode")
				}
				fmt.Println()
				_ = cmd.Usage()
				return errShownUsage
			}
			target, err := types.ParseMode(args[0])
			if err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			return fnSwitch(cmd.Context(), opts, target)
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"config file (.yaml/.json/.toml); defaults STORYCTL_CONFIG")
	root.PersistentFlags().StringVar(&opts.LogLvl, "log-level", logx.EnvStr("STORYCTL_LOG_LEVEL", "info"),
		"log level: debug|info|warn|error")
	root.PersistentFlags().BoolVar(&opts.JSON, "json", false, "emit machine-readable JSON instead of formatted output")
	root.PersistentFlags().StringVar(&opts.ServerAddr, "server", "",
		"server address for server mode (overrides config; defaults STORYCTL_SERVER_ADDR)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return opts.setup()
	}

	return root
}
