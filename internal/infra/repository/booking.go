package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/infra"
	"campus-booking/internal/infra/pg"
	"campus-booking/internal/pkg/pgconv"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (id, code, owner_id, room_id, slot_id, booked_date, purpose, status, status_reason, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func (r *BookingRepository) Create(ctx context.Context, db pg.DBTX, b *booking.Booking) error {
	_, err := db.Exec(ctx, createBookingSQL,
		b.ID(), b.Code(), b.OwnerID(), b.RoomID(), b.SlotID(),
		pgconv.DateToPgtype(b.BookedDate()), b.Purpose(),
		b.Status().String(), pgconv.StringPtrToPgtype(b.StatusReason()),
		pgconv.TimeToPgtype(b.CreatedAt()), pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return infra.WrapRepoErr("booking conflicts with an existing one", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $1, status_reason = COALESCE($2, status_reason), updated_at = $3
WHERE id = $4 AND status = $5
`

// UpdateStatus is the optimistic guard behind every transition: the
// expected status sits in the WHERE clause, so a concurrent change
// shows up as zero affected rows instead of a silent overwrite.
func (r *BookingRepository) UpdateStatus(ctx context.Context, db pg.DBTX, id uuid.UUID, from, to booking.Status, reason *string, now time.Time) (int64, error) {
	tag, err := db.Exec(ctx, updateBookingStatusSQL,
		to.String(), pgconv.StringPtrToPgtype(reason), pgconv.TimeToPgtype(now),
		id, from.String(),
	)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return 0, infra.WrapRepoErr("booking conflicts with an existing one", err, infra.KindConflict)
		}
		return 0, infra.WrapRepoErr("failed to update booking status", err)
	}
	return tag.RowsAffected(), nil
}

const updateBookingSlotSQL = `
UPDATE bookings
SET slot_id = $1, booked_date = $2, status = 'active', updated_at = $3
WHERE id = $4 AND status IN ('pending', 'active')
`

// UpdateSlot re-points the booking at a new slot and date and leaves
// it active, which is what a reschedule means for both pending and
// active bookings.
func (r *BookingRepository) UpdateSlot(ctx context.Context, db pg.DBTX, id uuid.UUID, slotID uuid.UUID, date time.Time, now time.Time) (int64, error) {
	tag, err := db.Exec(ctx, updateBookingSlotSQL,
		slotID, pgconv.DateToPgtype(date), pgconv.TimeToPgtype(now), id,
	)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return 0, infra.WrapRepoErr("booking conflicts with an existing one", err, infra.KindConflict)
		}
		return 0, infra.WrapRepoErr("failed to reschedule booking", err)
	}
	return tag.RowsAffected(), nil
}

const deleteDraftByOwnerSQL = `DELETE FROM bookings WHERE owner_id = $1 AND status = 'initiated'`

// DeleteDraftByOwner discards the owner's current draft, if any. Each
// initiate supersedes the previous one, so zero rows is not an error.
func (r *BookingRepository) DeleteDraftByOwner(ctx context.Context, db pg.DBTX, ownerID uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, deleteDraftByOwnerSQL, ownerID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to discard draft", err)
	}
	return tag.RowsAffected(), nil
}

const deleteBookingSQL = `DELETE FROM bookings WHERE id = $1`

func (r *BookingRepository) Delete(ctx context.Context, db pg.DBTX, id uuid.UUID) error {
	tag, err := db.Exec(ctx, deleteBookingSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
