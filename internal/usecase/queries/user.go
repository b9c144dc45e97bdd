package queries

import (
	"context"

	"github.com/google/uuid"
)

type UserQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]*NotificationView, error)
}

type UserViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	FindNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*NotificationView, error)
}

type userQueriesImpl struct {
	users UserViewRepo
}

func NewUserQueries(users UserViewRepo) UserQueries {
	return &userQueriesImpl{users: users}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*UserView, error) {
	return q.users.FindByID(ctx, id)
}

func (q *userQueriesImpl) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]*NotificationView, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	return q.users.FindNotificationsByUserID(ctx, userID, int32(limit))
}
