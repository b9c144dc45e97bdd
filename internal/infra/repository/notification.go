package repository

import (
	"context"

	"github.com/google/uuid"

	"campus-booking/internal/infra"
	"campus-booking/internal/infra/pg"
	"campus-booking/internal/pkg/pgconv"
	"campus-booking/internal/usecase/shared"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

const createNotificationSQL = `
INSERT INTO notifications (id, user_id, booking_id, type, title, body)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (r *NotificationRepository) Create(ctx context.Context, db pg.DBTX, n shared.NotificationRecord) error {
	_, err := db.Exec(ctx, createNotificationSQL,
		n.ID, n.UserID, pgconv.UUIDPtrToPgtype(n.BookingID), n.Type, n.Title, n.Body,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification", err)
	}
	return nil
}

const markNotificationReadSQL = `
UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2
`

func (r *NotificationRepository) MarkRead(ctx context.Context, db pg.DBTX, id, userID uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, markNotificationReadSQL, id, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark notification read", err)
	}
	return tag.RowsAffected(), nil
}
