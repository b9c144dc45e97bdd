package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"campus-booking/internal/domain/timeslot"
	"campus-booking/internal/infra"
	"campus-booking/internal/infra/pg"
	"campus-booking/internal/pkg/pgconv"
	"campus-booking/internal/usecase/queries"
	"campus-booking/internal/usecase/shared"
)

type CatalogReadStore struct {
	db pg.DBTX
}

func NewCatalogReadStore(db pg.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: db}
}

const listRoomsSQL = `
SELECT r.id, r.name, r.location, r.capacity, r.is_active,
       AVG(rt.score)::float8, COUNT(rt.id)
FROM rooms r
LEFT JOIN ratings rt ON rt.room_id = r.id
GROUP BY r.id
ORDER BY r.name
`

func (s *CatalogReadStore) ListRooms(ctx context.Context) ([]*queries.RoomView, error) {
	rows, err := s.db.Query(ctx, listRoomsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var views []*queries.RoomView
	for rows.Next() {
		var (
			v        queries.RoomView
			avgScore pgtype.Float8
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.Location, &v.Capacity, &v.IsActive, &avgScore, &v.RatingCount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room", err)
		}
		if avgScore.Valid {
			v.AvgScore = &avgScore.Float64
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rooms", err)
	}
	return views, nil
}

const findRoomSQL = `
SELECT r.id, r.name, r.location, r.capacity, r.is_active,
       AVG(rt.score)::float8, COUNT(rt.id)
FROM rooms r
LEFT JOIN ratings rt ON rt.room_id = r.id
WHERE r.id = $1
GROUP BY r.id
`

func (s *CatalogReadStore) FindRoomByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	var (
		v        queries.RoomView
		avgScore pgtype.Float8
	)
	err := s.db.QueryRow(ctx, findRoomSQL, id).Scan(
		&v.ID, &v.Name, &v.Location, &v.Capacity, &v.IsActive, &avgScore, &v.RatingCount,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	if avgScore.Valid {
		v.AvgScore = &avgScore.Float64
	}
	return &v, nil
}

const listSlotsSQL = `
SELECT id, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI')
FROM time_slots
ORDER BY start_time
`

func (s *CatalogReadStore) ListSlots(ctx context.Context) ([]*queries.SlotView, error) {
	rows, err := s.db.Query(ctx, listSlotsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list time slots", err)
	}
	defer rows.Close()

	var views []*queries.SlotView
	for rows.Next() {
		var v queries.SlotView
		if err := rows.Scan(&v.ID, &v.StartTime, &v.EndTime); err != nil {
			return nil, infra.WrapRepoErr("failed to scan time slot", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read time slots", err)
	}
	return views, nil
}

const findSlotSQL = `
SELECT id, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI')
FROM time_slots
WHERE id = $1
`

func (s *CatalogReadStore) SlotSnapshot(ctx context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	var (
		snap       shared.SlotSnapshot
		start, end string
	)
	err := s.db.QueryRow(ctx, findSlotSQL, id).Scan(&snap.ID, &start, &end)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("time slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find time slot", err)
	}
	if snap.Start, err = timeslot.ParseTimeOfDay(start); err != nil {
		return nil, infra.WrapRepoErr("corrupt time slot", err)
	}
	if snap.End, err = timeslot.ParseTimeOfDay(end); err != nil {
		return nil, infra.WrapRepoErr("corrupt time slot", err)
	}
	return &snap, nil
}

const roomSnapshotSQL = `
SELECT id, name, location, capacity, is_active FROM rooms WHERE id = $1
`

func (s *CatalogReadStore) RoomSnapshot(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	var snap shared.RoomSnapshot
	err := s.db.QueryRow(ctx, roomSnapshotSQL, id).Scan(
		&snap.ID, &snap.Name, &snap.Location, &snap.Capacity, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return &snap, nil
}

const blockedSlotIDsSQL = `
SELECT slot_id FROM bookings
WHERE room_id = $1 AND booked_date = $2 AND status IN ('pending', 'active')
`

func (s *CatalogReadStore) BlockedSlotIDs(ctx context.Context, roomID uuid.UUID, date time.Time) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx, blockedSlotIDsSQL, roomID, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocked slots", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocked slot", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read blocked slots", err)
	}
	return ids, nil
}

const listArticlesSQL = `
SELECT id, title, body, image_url, created_at
FROM articles
ORDER BY created_at DESC
LIMIT $1
`

func (s *CatalogReadStore) ListArticles(ctx context.Context, limit int32) ([]*queries.ArticleView, error) {
	rows, err := s.db.Query(ctx, listArticlesSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list articles", err)
	}
	defer rows.Close()

	var views []*queries.ArticleView
	for rows.Next() {
		var (
			v         queries.ArticleView
			imageURL  pgtype.Text
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.Title, &v.Body, &imageURL, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan article", err)
		}
		v.ImageURL = pgconv.StringPtrFromPgtype(imageURL)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read articles", err)
	}
	return views, nil
}

const listBannersSQL = `
SELECT id, title, image_url, is_active FROM banners WHERE is_active ORDER BY created_at DESC
`

func (s *CatalogReadStore) ListBanners(ctx context.Context) ([]*queries.BannerView, error) {
	rows, err := s.db.Query(ctx, listBannersSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list banners", err)
	}
	defer rows.Close()

	var views []*queries.BannerView
	for rows.Next() {
		var v queries.BannerView
		if err := rows.Scan(&v.ID, &v.Title, &v.ImageURL, &v.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan banner", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read banners", err)
	}
	return views, nil
}

const listRoomRatingsSQL = `
SELECT rt.id, rt.room_id, u.full_name, rt.score, rt.review, rt.created_at
FROM ratings rt
JOIN users u ON u.id = rt.user_id
WHERE rt.room_id = $1
ORDER BY rt.created_at DESC
LIMIT $2
`

func (s *CatalogReadStore) ListRatingsByRoom(ctx context.Context, roomID uuid.UUID, limit int32) ([]*queries.RatingView, error) {
	rows, err := s.db.Query(ctx, listRoomRatingsSQL, roomID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ratings", err)
	}
	defer rows.Close()

	var views []*queries.RatingView
	for rows.Next() {
		var (
			v         queries.RatingView
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.RoomID, &v.UserName, &v.Score, &v.Review, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rating", err)
		}
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read ratings", err)
	}
	return views, nil
}
