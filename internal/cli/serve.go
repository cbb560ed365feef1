package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/sportsboard/internal/config"
	"github.com/preston-bernstein/sportsboard/internal/logging"
	"github.com/preston-bernstein/sportsboard/internal/server"
)

func runServer(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}
	srv.Run(ctx, stop)
	return nil
}

func (a *App) serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API and run the boundary check on a timer",
		Args:  exactArgs(0, "none"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if port != "" {
				cfg.Port = port
			}
			level := cfg.Log.Level
			if a.verbose {
				level = "debug"
			}
			logger := logging.NewLogger(logging.Config{
				Level:   level,
				Format:  cfg.Log.Format,
				Service: appName,
				Version: a.version,
				Writer:  a.stderr,
			})
			logger.Info("serve starting",
				slog.String("port", cfg.Port),
				slog.String("store", cfg.Store.Kind),
				slog.Int64(logging.FieldDurationMS, cfg.CheckInterval.Milliseconds()),
			)
			if err := a.runServer(cmd.Context(), cfg, logger); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}
