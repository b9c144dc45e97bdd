package commands

import (
	"context"

	"github.com/google/uuid"

	"campus-booking/internal/pkg/errs"
	"campus-booking/internal/usecase/shared"
)

var ErrNotificationNotFound = errs.New("notification not found")

type NotificationCommands interface {
	MarkRead(ctx context.Context, actorID uuid.UUID, notificationID uuid.UUID) error
}

type notificationUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewNotificationUseCase(uow shared.UnitOfWork) NotificationCommands {
	return &notificationUseCaseImpl{uow: uow}
}

// MarkRead scopes the update to the caller, so reading someone else's
// notification id just comes back not found.
func (n *notificationUseCaseImpl) MarkRead(ctx context.Context, actorID uuid.UUID, notificationID uuid.UUID) error {
	return n.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Notifications().MarkRead(ctx, tx.DB(), notificationID, actorID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotificationNotFound
		}
		return nil
	})
}
