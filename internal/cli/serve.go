package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/acarlini/wordled/internal/config"
	"github.com/acarlini/wordled/internal/factory"
)

func newServeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to a .env configuration file")

	return cmd
}

func runServe(envFile string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := factory.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app.Rotator.Start()

	// The group's context cancels on the first failure, on a fatal
	// rotation error or on a termination signal; the coordinator then
	// runs the full shutdown sequence.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(app.Server.Start)
	g.Go(app.Admin.Start)
	g.Go(func() error {
		select {
		case err := <-app.Rotator.Failed():
			return err
		case <-gctx.Done():
			return nil
		}
	})

	<-gctx.Done()

	shutdownErr := app.Coordinator.Shutdown(context.Background())
	if shutdownErr != nil {
		logger.Error("shutdown failed", slog.String("error", shutdownErr.Error()))
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := app.Storage.Close(); err != nil {
		logger.Warn("closing storage", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return shutdownErr
}
