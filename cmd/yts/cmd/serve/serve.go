package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yourtranscript/internal/app"
	"yourtranscript/internal/app/common"
	"yourtranscript/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the transcript extraction API server",
	Long: `Start the HTTP API server. Configuration is read from the environment
(and an optional .env file); see .env.example for the full list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := common.MustNewLogger(!cfg.IsProduction())
	defer logger.Sync()

	srv, cleanup, err := app.InitializeServer(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize server", zap.Error(err))
		return err
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
