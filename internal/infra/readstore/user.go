package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"campus-booking/internal/domain/user"
	"campus-booking/internal/infra"
	"campus-booking/internal/infra/pg"
	"campus-booking/internal/pkg/pgconv"
	"campus-booking/internal/usecase/queries"
	"campus-booking/internal/usecase/shared"
)

type UserReadStore struct {
	db pg.DBTX
}

func NewUserReadStore(db pg.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

const userViewSQL = `
SELECT id, email, full_name, role, verification_status, email_confirmed, created_at
FROM users
WHERE id = $1
`

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var (
		v         queries.UserView
		createdAt pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, userViewSQL, id).Scan(
		&v.ID, &v.Email, &v.FullName, &v.Role, &v.Verification, &v.EmailConfirmed, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &v, nil
}

const userSnapshotSQL = `
SELECT id, email, password_hash, full_name, role, verification_status, email_confirmed
FROM users
`

func (s *UserReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	return s.snapshotOne(ctx, userSnapshotSQL+"WHERE id = $1", id)
}

func (s *UserReadStore) SnapshotByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	return s.snapshotOne(ctx, userSnapshotSQL+"WHERE email = $1", email)
}

func (s *UserReadStore) snapshotOne(ctx context.Context, sql string, arg any) (*shared.UserSnapshot, error) {
	var (
		snap         shared.UserSnapshot
		role         string
		verification string
	)
	err := s.db.QueryRow(ctx, sql, arg).Scan(
		&snap.ID, &snap.Email, &snap.PasswordHash, &snap.FullName,
		&role, &verification, &snap.EmailConfirmed,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	snap.Role = user.Role(role)
	snap.Verification = user.VerificationStatus(verification)
	return &snap, nil
}

const notificationsByUserSQL = `
SELECT id, booking_id, type, title, body, is_read, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2
`

func (s *UserReadStore) FindNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.NotificationView, error) {
	rows, err := s.db.Query(ctx, notificationsByUserSQL, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notifications", err)
	}
	defer rows.Close()

	var views []*queries.NotificationView
	for rows.Next() {
		var (
			v         queries.NotificationView
			bookingID pgtype.UUID
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &bookingID, &v.Type, &v.Title, &v.Body, &v.IsRead, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification", err)
		}
		v.BookingID = pgconv.UUIDPtrFromPgtype(bookingID)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notifications", err)
	}
	return views, nil
}
