package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/portfolio-optimizer/internal/server"
	"github.com/iwvelando/portfolio-optimizer/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		serverConfigPath string
		address          string
		maxUploadSize    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  "Start an HTTP server that exposes the solve and compare operations as a JSON API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}
			if maxUploadSize != "" {
				size, err := server.ParseSize(maxUploadSize)
				if err != nil {
					return err
				}
				cfg.SetUploadSizeBytes(size)
			}

			logger := a.logger
			if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
				logger, err = initializeLogger(cfg.Logging, a.logLevel)
				if err != nil {
					return err
				}
				defer func() {
					_ = logger.Sync()
				}()
			}

			handler := server.NewHandler(logger, a.conf, a.source(), cfg.UploadSizeBytes(), version)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("serving optimization API",
				zap.String("op", "main"),
				zap.String("address", cfg.Address),
				zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
				zap.String("catalogDirectory", a.conf.Catalog.Directory),
			)
			return server.ListenAndServe(ctx, logger, cfg, handler)
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override (e.g. :8080)")
	cmd.Flags().StringVar(&maxUploadSize, "max-upload-size", "", "upload size limit override (e.g. 256K, 1M)")
	return cmd
}
