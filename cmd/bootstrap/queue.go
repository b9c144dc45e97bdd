package bootstrap

import (
	"context"

	"campus-booking/internal/pkg/config"
	"campus-booking/internal/scheduler"
	"campus-booking/internal/usecase/shared"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
)

var QueueModule = fx.Module("queue",
	fx.Provide(
		NewRedisClientOpt,
		NewScheduler,
	),
)

func NewRedisClientOpt(cfg config.Config) asynq.RedisClientOpt {
	return scheduler.RedisOpt(cfg.Redis)
}

func NewScheduler(lc fx.Lifecycle, opt asynq.RedisClientOpt, cfg config.Config) shared.Scheduler {
	s := scheduler.NewAsynqScheduler(opt, cfg.Queue.Name)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return s.Close()
		},
	})

	return s
}
