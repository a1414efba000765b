package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/haldane/qcost/infrastructure/middleware"
	"github.com/haldane/qcost/infrastructure/server"
	"github.com/haldane/qcost/internal/application"
)

// newServeCmd builds the serve subcommand: the estimation engine
// behind an HTTP API with Prometheus metrics.
func newServeCmd(root *rootFlags) *cobra.Command {
	serverCfg := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the estimation engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			metrics := middleware.NewPrometheusMetrics(nil)

			pipeline, err := application.NewEstimationPipeline(cfg, metrics)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(pipeline, logger, serverCfg).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&serverCfg.Addr, "addr", serverCfg.Addr, "listen address")
	return cmd
}
