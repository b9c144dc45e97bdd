package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/infra"
	"campus-booking/internal/infra/pg"
	"campus-booking/internal/pkg/pgconv"
)

type MemberRepository struct{}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

const addMemberSQL = `
INSERT INTO booking_members (id, booking_id, user_id, is_owner, created_at)
VALUES ($1, $2, $3, $4, $5)
`

func (r *MemberRepository) Add(ctx context.Context, db pg.DBTX, bookingID, userID uuid.UUID, isOwner bool, now time.Time) error {
	_, err := db.Exec(ctx, addMemberSQL, uuid.New(), bookingID, userID, isOwner, pgconv.TimeToPgtype(now))
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return infra.WrapRepoErr("user is already a member of this booking", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to add booking member", err)
	}
	return nil
}

const removeMemberSQL = `
DELETE FROM booking_members WHERE booking_id = $1 AND user_id = $2 AND is_owner = FALSE
`

// Remove never touches the owner row; the owner leaves a booking by
// canceling it.
func (r *MemberRepository) Remove(ctx context.Context, db pg.DBTX, bookingID, userID uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, removeMemberSQL, bookingID, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to remove booking member", err)
	}
	return tag.RowsAffected(), nil
}
