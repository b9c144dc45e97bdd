package notifier

import (
	"context"
	"log/slog"

	"campus-booking/internal/usecase/shared"
)

// Console is the fallback when no broker is configured: messages land
// in the log instead of a queue. Useful for local development.
type Console struct{}

func NewConsole() shared.Notifier {
	return &Console{}
}

func (c *Console) Push(ctx context.Context, msg shared.PushMessage) error {
	args := []any{
		slog.String("type", msg.Type),
		slog.String("title", msg.Title),
		slog.String("body", msg.Body),
	}
	if msg.UserID != nil {
		args = append(args, slog.String("user_id", msg.UserID.String()))
	}
	if msg.Topic != nil {
		args = append(args, slog.String("topic", *msg.Topic))
	}
	slog.InfoContext(ctx, "push notification", args...)
	return nil
}
