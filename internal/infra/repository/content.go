package repository

import (
	"context"

	"campus-booking/internal/infra"
	"campus-booking/internal/infra/pg"
	"campus-booking/internal/pkg/pgconv"
	"campus-booking/internal/usecase/shared"
)

// ContentRepository covers the admin-managed reference data: rooms,
// slot catalog, articles and banners.
type ContentRepository struct{}

func NewContentRepository() *ContentRepository {
	return &ContentRepository{}
}

const createArticleSQL = `
INSERT INTO articles (id, title, body, image_url, created_at)
VALUES ($1, $2, $3, $4, $5)
`

func (r *ContentRepository) CreateArticle(ctx context.Context, db pg.DBTX, a shared.ArticleRecord) error {
	_, err := db.Exec(ctx, createArticleSQL,
		a.ID, a.Title, a.Body, pgconv.StringPtrToPgtype(a.ImageURL), pgconv.TimeToPgtype(a.CreatedAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create article", err)
	}
	return nil
}

const createBannerSQL = `
INSERT INTO banners (id, title, image_url, is_active)
VALUES ($1, $2, $3, $4)
`

func (r *ContentRepository) CreateBanner(ctx context.Context, db pg.DBTX, b shared.BannerRecord) error {
	_, err := db.Exec(ctx, createBannerSQL, b.ID, b.Title, b.ImageURL, b.IsActive)
	if err != nil {
		return infra.WrapRepoErr("failed to create banner", err)
	}
	return nil
}

const createRoomSQL = `
INSERT INTO rooms (id, name, location, capacity, is_active)
VALUES ($1, $2, $3, $4, $5)
`

func (r *ContentRepository) CreateRoom(ctx context.Context, db pg.DBTX, rm shared.RoomSnapshot) error {
	_, err := db.Exec(ctx, createRoomSQL, rm.ID, rm.Name, rm.Location, rm.Capacity, rm.IsActive)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return infra.WrapRepoErr("room name already exists", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create room", err)
	}
	return nil
}

const createSlotSQL = `
INSERT INTO time_slots (id, start_time, end_time)
VALUES ($1, $2, $3)
`

func (r *ContentRepository) CreateSlot(ctx context.Context, db pg.DBTX, s shared.SlotSnapshot) error {
	_, err := db.Exec(ctx, createSlotSQL, s.ID, s.Start.String(), s.End.String())
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return infra.WrapRepoErr("slot already exists", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create time slot", err)
	}
	return nil
}
