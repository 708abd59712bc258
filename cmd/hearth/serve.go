package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hearthapp/hearth/internal/config"
	"github.com/hearthapp/hearth/internal/logger"
	"github.com/hearthapp/hearth/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Hearth server",
		Long: `Run the Hearth HTTP server in the foreground until interrupted.

Configuration is read from hearth.toml, ~/.hearth/config.toml, a .env file
and HEARTH_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ResolveServerConfig()
			if err != nil {
				return fmt.Errorf("%w: %v", errNotConfigured, err)
			}
			if addr == "" {
				addr = cfg.Addr()
			}
			return runServe(cmd, cfg, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Address to listen on (overrides configuration)")
	return cmd
}

func runServe(cmd *cobra.Command, cfg *config.ServerConfig, addr string) error {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	store, err := server.OpenStore(cmd.Context(), cfg.Database, log)
	if err != nil {
		log.Error("failed to open store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		return err
	}

	srv := server.New(server.Options{
		Addr:            addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, store, log)

	log.Info("starting server", zap.String("addr", addr), zap.String("driver", cfg.Database.Driver))
	return srv.ListenAndServe(cmd.Context())
}
