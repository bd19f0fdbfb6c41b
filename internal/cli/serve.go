package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"followcheck/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP upload API",
		Long: `Run the HTTP upload API.

POST /api/v1/analyze accepts multipart/form-data with one or more "followers"
files and one or more "following" files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(a.cfg, a.log).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&a.flags.Addr, "addr", "", "Listen address (default :5555)")

	return cmd
}
