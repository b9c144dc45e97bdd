package bootstrap

import (
	"context"

	"campus-booking/internal/notifier"
	"campus-booking/internal/pkg/config"
	"campus-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewNotifier,
	),
)

// NewNotifier connects to the AMQP broker when one is configured and
// falls back to the console notifier otherwise.
func NewNotifier(lc fx.Lifecycle, cfg config.Config) (shared.Notifier, error) {
	if cfg.AMQP.URL == "" {
		return notifier.NewConsole(), nil
	}

	n, err := notifier.NewAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return n.Close()
		},
	})

	return n, nil
}
