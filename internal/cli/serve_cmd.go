package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	demoji "github.com/AIM-Technologies-CO/demoji"
	"github.com/AIM-Technologies-CO/demoji/internal/server"
)

// NewServeCmd creates the serve command, exposing the matcher as an HTTP
// API with Prometheus metrics.
func NewServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve emoji find/replace operations over HTTP.",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := listen
			if addr == "" {
				addr = appCfg.ListenAddr
			}

			scanner, err := demoji.Default()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(scanner, addr, appCfg.RateLimitRPS, appCfg.RateBurst)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	return cmd
}
