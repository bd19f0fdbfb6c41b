// Package cli wires the followcheck commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"followcheck/internal/config"
	"followcheck/internal/logger"
)

var Version = "dev"

type app struct {
	configPath string
	flags      config.Flags

	cfg config.Config
	log *zap.Logger
}

// NewRootCommand builds the command tree. out receives reports, errOut receives errors.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "followcheck",
		Short: "Find the accounts you follow that do not follow you back",
		Long: `followcheck compares the followers and following lists of an Instagram
data export (JSON format) and lists every account you follow that does not
follow you back.

Export your data from Accounts Center > Your information and permissions >
Export your information, choose JSON, then point followcheck at the
followers_*.json and following*.json files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath, a.flags)
			if err != nil {
				return err
			}
			a.cfg = cfg

			log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to YAML config file (env "+config.EnvConfigPath+")")
	root.PersistentFlags().StringVar(&a.flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.flags.LogFormat, "log-format", "", "Log format (json, console)")

	root.AddCommand(
		newAnalyzeCommand(a),
		newServeCommand(a),
		newVersionCommand(),
	)

	return root
}

// Execute runs the CLI against os.Args and returns the process exit code.
func Execute() int {
	root := NewRootCommand(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "followcheck", Version)
		},
	}
}
