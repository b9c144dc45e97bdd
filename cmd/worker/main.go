package main

import (
	"context"
	"log/slog"
	"os"

	"campus-booking/cmd/bootstrap"
	"campus-booking/internal/handler/middleware"
	"campus-booking/internal/pkg/config"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
)

func startWorker(lc fx.Lifecycle, srv *asynq.Server, mux *asynq.ServeMux, cfg config.Config, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting booking worker", "queue", cfg.Queue.Name, "concurrency", cfg.Queue.Concurrency)
			go func() {
				if err := srv.Run(mux); err != nil {
					logger.Error("worker exited", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("stopping booking worker")
			srv.Shutdown()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.WorkerModule,
		fx.Provide(
			func(cfg config.Config) *slog.Logger {
				logger := middleware.NewLogger(cfg.Log)
				return logger.GetSlogLogger()
			},
		),
		fx.Invoke(
			startWorker,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start worker", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop worker", "error", err)
	}

	slog.Info("worker stopped")
}
