package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"mls-insights/dashboard"
	"mls-insights/services"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive market dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		store, err := loadStore(ctx, services.NewMetrics(reg))
		if err != nil {
			if !errors.Is(err, services.ErrNoDatasets) {
				return err
			}
			// Serve anyway: the page shows a placeholder and a dataset that
			// appears on disk later is picked up on the next request.
			logger.Warn("[serve] %v", err)
		}

		return dashboard.New(cfg, store, logger, reg).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
