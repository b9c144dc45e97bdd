package components

import (
	"campus-booking/internal/pkg/config"
	"campus-booking/internal/scheduler"
	"campus-booking/internal/usecase/commands"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		fx.Annotate(
			func(c commands.BookingCommands) commands.BookingCommands { return c },
			fx.As(new(scheduler.BookingFinalizer)),
		),
		scheduler.NewHandlers,
		scheduler.NewServeMux,
		NewWorkerServer,
	),
)

func NewWorkerServer(opt asynq.RedisClientOpt, cfg config.Config) *asynq.Server {
	return scheduler.NewServer(opt, cfg.Queue)
}
