package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/parley/internal/transport/rest"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.API == nil || app.Config == nil {
				return errors.New("http api is not wired")
			}

			cfg := app.Config.Server
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return rest.Serve(ctx, cfg, app.API, app.logger())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Override server.host")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Override server.port")

	return cmd
}
