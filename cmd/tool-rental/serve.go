package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/tool-rental/internal/api"
	"github.com/username/tool-rental/internal/daemon"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the rental checkout HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			calc, err := buildCalculator(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			logger.Info("Starting rental service",
				zap.String("addr", addr),
				zap.String("catalog_source", cfg.Catalog.Source))

			d := daemon.NewDaemon(addr, api.NewRouter(calc, logger), cfg.Server.GetShutdownTimeout(), logger)
			return d.Start()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")

	return cmd
}
