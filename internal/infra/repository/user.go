package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/domain/user"
	"campus-booking/internal/infra"
	"campus-booking/internal/infra/pg"
	"campus-booking/internal/pkg/pgconv"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const createUserSQL = `
INSERT INTO users (id, email, password_hash, full_name, role, verification_status, email_confirmed, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
`

func (r *UserRepository) Create(ctx context.Context, db pg.DBTX, u *user.User) error {
	_, err := db.Exec(ctx, createUserSQL,
		u.ID(), u.Email(), u.PasswordHash(), u.FullName(),
		u.Role().String(), u.Verification().String(), u.EmailConfirmed(),
		pgconv.TimeToPgtype(u.CreatedAt()),
	)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return infra.WrapRepoErr("email is already registered", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

const updateVerificationSQL = `
UPDATE users SET verification_status = $1, updated_at = $2 WHERE id = $3
`

func (r *UserRepository) UpdateVerification(ctx context.Context, db pg.DBTX, id uuid.UUID, to user.VerificationStatus, now time.Time) (int64, error) {
	tag, err := db.Exec(ctx, updateVerificationSQL, to.String(), pgconv.TimeToPgtype(now), id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update verification status", err)
	}
	return tag.RowsAffected(), nil
}

const confirmEmailSQL = `
UPDATE users SET email_confirmed = TRUE, updated_at = $1 WHERE id = $2
`

func (r *UserRepository) ConfirmEmail(ctx context.Context, db pg.DBTX, id uuid.UUID, now time.Time) error {
	tag, err := db.Exec(ctx, confirmEmailSQL, pgconv.TimeToPgtype(now), id)
	if err != nil {
		return infra.WrapRepoErr("failed to confirm email", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

const updateLastLoginSQL = `
UPDATE users SET last_login = $1 WHERE id = $2
`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, db pg.DBTX, id uuid.UUID, now time.Time) error {
	if _, err := db.Exec(ctx, updateLastLoginSQL, pgconv.TimeToPgtype(now), id); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
