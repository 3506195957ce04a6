package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-handsound/bridge"
)

var (
	serveAddr      string
	staticDir      string
	idleTimeout    time.Duration
	allowedOrigins []string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&staticDir, "static", "", "directory with the browser page")
	serveCmd.Flags().DurationVar(&idleTimeout, "idle-timeout", bridge.DefaultIdleTimeout, "silence the player after this long without frames (0 disables)")
	serveCmd.Flags().StringSliceVar(&allowedOrigins, "allowed-origins", nil, "allowed browser origins (default any)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the WebSocket bridge for the browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		p, err := loadPreset()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := bridge.NewServer(
			bridge.WithLogger(logger),
			bridge.WithPreset(p),
			bridge.WithIdleTimeout(idleTimeout),
			bridge.WithStaticDir(staticDir),
			bridge.WithAllowedOrigins(allowedOrigins),
		)
		if err := srv.ListenAndServe(ctx, serveAddr); err != nil {
			logger.Error("server stopped", zap.Error(err))
			return err
		}
		return nil
	},
}
