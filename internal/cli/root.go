package cli

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/PipeOpsHQ/support-chat/internal/config"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

type rootFlags struct {
	logLevel   string
	envFile    string
	configFile string
}

// Run executes the CLI and returns the process exit code.
func Run(ctx context.Context, args []string) int {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "support-chat",
		Short:         "Host the customer support chat widget",
		Long:          "Serves the page that mounts the agent chat widget, wired to a cloud runtime or a local agent.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initLogger(stderr, flags.logLevel)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); default from "+config.EnvLogLevel)
	pf.StringVar(&flags.envFile, "env-file", "", "Dotenv file layered under the process environment (default .env, optional)")
	pf.StringVar(&flags.configFile, "config", "", "Optional JSON connection file")

	cmd.AddCommand(newServeCmd(flags), newResolveCmd(flags))
	return cmd
}

func (f *rootFlags) loadSettings() (config.Settings, error) {
	return config.Load(config.LoadOptions{
		EnvFile:    f.envFile,
		ConfigFile: f.configFile,
	})
}
