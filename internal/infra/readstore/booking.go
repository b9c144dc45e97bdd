package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/infra"
	"campus-booking/internal/infra/pg"
	"campus-booking/internal/pkg/pgconv"
	"campus-booking/internal/usecase/queries"
	"campus-booking/internal/usecase/shared"
)

type BookingReadStore struct {
	db pg.DBTX
}

func NewBookingReadStore(db pg.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const bookingViewSQL = `
SELECT b.id, b.code, b.owner_id, u.full_name,
       b.room_id, r.name,
       b.slot_id, to_char(ts.start_time, 'HH24:MI'), to_char(ts.end_time, 'HH24:MI'),
       b.booked_date, b.purpose, b.status, b.status_reason,
       b.created_at, b.updated_at
FROM bookings b
JOIN users u ON u.id = b.owner_id
JOIN rooms r ON r.id = b.room_id
JOIN time_slots ts ON ts.id = b.slot_id
`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return s.findOne(ctx, bookingViewSQL+"WHERE b.id = $1", id)
}

func (s *BookingReadStore) FindByCode(ctx context.Context, code string) (*queries.BookingView, error) {
	return s.findOne(ctx, bookingViewSQL+"WHERE b.code = $1", code)
}

func (s *BookingReadStore) findOne(ctx context.Context, sql string, arg any) (*queries.BookingView, error) {
	var (
		v            queries.BookingView
		bookedDate   pgtype.Date
		statusReason pgtype.Text
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, sql, arg).Scan(
		&v.ID, &v.Code, &v.OwnerID, &v.OwnerName,
		&v.RoomID, &v.RoomName,
		&v.SlotID, &v.SlotStart, &v.SlotEnd,
		&bookedDate, &v.Purpose, &v.Status, &statusReason,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	v.BookedDate = pgconv.DateFromPgtype(bookedDate)
	v.StatusReason = pgconv.StringPtrFromPgtype(statusReason)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	members, err := s.membersOf(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	v.Members = members
	return &v, nil
}

const bookingMembersSQL = `
SELECT bm.user_id, u.full_name, u.email, bm.is_owner
FROM booking_members bm
JOIN users u ON u.id = bm.user_id
WHERE bm.booking_id = $1
ORDER BY bm.is_owner DESC, bm.created_at
`

func (s *BookingReadStore) membersOf(ctx context.Context, bookingID uuid.UUID) ([]queries.MemberView, error) {
	rows, err := s.db.Query(ctx, bookingMembersSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking members", err)
	}
	defer rows.Close()

	var members []queries.MemberView
	for rows.Next() {
		var m queries.MemberView
		if err := rows.Scan(&m.UserID, &m.FullName, &m.Email, &m.IsOwner); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking member", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking members", err)
	}
	return members, nil
}

const bookingHistorySQL = `
SELECT b.id, b.code, b.room_id, r.name,
       b.booked_date, to_char(ts.start_time, 'HH24:MI'), to_char(ts.end_time, 'HH24:MI'),
       b.status, b.created_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN time_slots ts ON ts.id = b.slot_id
JOIN booking_members bm ON bm.booking_id = b.id
WHERE bm.user_id = $1
  AND (cardinality($2::text[]) = 0 OR b.status = ANY($2::text[]))
ORDER BY b.created_at DESC
LIMIT $3
`

func (s *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, statuses []string, limit int32) ([]*queries.BookingListItem, error) {
	if statuses == nil {
		statuses = []string{}
	}
	rows, err := s.db.Query(ctx, bookingHistorySQL, userID, statuses, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item       queries.BookingListItem
			bookedDate pgtype.Date
			createdAt  pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.Code, &item.RoomID, &item.RoomName,
			&bookedDate, &item.SlotStart, &item.SlotEnd,
			&item.Status, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		item.BookedDate = pgconv.DateFromPgtype(bookedDate)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read bookings", err)
	}
	return items, nil
}

const bookingSnapshotSQL = `
SELECT id, code, owner_id, room_id, slot_id, booked_date, purpose, status, status_reason, created_at, updated_at
FROM bookings
`

func (s *BookingReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		snap         shared.BookingSnapshot
		status       string
		bookedDate   pgtype.Date
		statusReason pgtype.Text
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, bookingSnapshotSQL+"WHERE id = $1", id).Scan(
		&snap.ID, &snap.Code, &snap.OwnerID, &snap.RoomID, &snap.SlotID,
		&bookedDate, &snap.Purpose, &status, &statusReason,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	snap.Status = booking.Status(status)
	snap.BookedDate = pgconv.DateFromPgtype(bookedDate)
	snap.StatusReason = pgconv.StringPtrFromPgtype(statusReason)
	snap.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	snap.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &snap, nil
}

const memberSnapshotsSQL = `
SELECT bm.user_id, u.email, u.full_name, bm.is_owner
FROM booking_members bm
JOIN users u ON u.id = bm.user_id
WHERE bm.booking_id = $1
ORDER BY bm.created_at
`

func (s *BookingReadStore) MemberSnapshots(ctx context.Context, bookingID uuid.UUID) ([]shared.MemberSnapshot, error) {
	rows, err := s.db.Query(ctx, memberSnapshotsSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking members", err)
	}
	defer rows.Close()

	var members []shared.MemberSnapshot
	for rows.Next() {
		var m shared.MemberSnapshot
		if err := rows.Scan(&m.UserID, &m.Email, &m.FullName, &m.IsOwner); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking member", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking members", err)
	}
	return members, nil
}
