package queries

import (
	"context"

	"github.com/google/uuid"
)

const defaultContentLimit = 20

type CatalogQueries interface {
	ListRooms(ctx context.Context) ([]*RoomView, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*RoomView, error)
	ListSlots(ctx context.Context) ([]*SlotView, error)
	ListArticles(ctx context.Context, limit int) ([]*ArticleView, error)
	ListBanners(ctx context.Context) ([]*BannerView, error)
	ListRoomRatings(ctx context.Context, roomID uuid.UUID, limit int) ([]*RatingView, error)
}

type catalogQueriesImpl struct {
	catalog CatalogViewRepo
}

func NewCatalogQueries(catalog CatalogViewRepo) CatalogQueries {
	return &catalogQueriesImpl{catalog: catalog}
}

func (q *catalogQueriesImpl) ListRooms(ctx context.Context) ([]*RoomView, error) {
	return q.catalog.ListRooms(ctx)
}

func (q *catalogQueriesImpl) GetRoom(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	return q.catalog.FindRoomByID(ctx, id)
}

func (q *catalogQueriesImpl) ListSlots(ctx context.Context) ([]*SlotView, error) {
	return q.catalog.ListSlots(ctx)
}

func (q *catalogQueriesImpl) ListArticles(ctx context.Context, limit int) ([]*ArticleView, error) {
	if limit <= 0 || limit > defaultContentLimit {
		limit = defaultContentLimit
	}
	return q.catalog.ListArticles(ctx, int32(limit))
}

func (q *catalogQueriesImpl) ListBanners(ctx context.Context) ([]*BannerView, error) {
	return q.catalog.ListBanners(ctx)
}

func (q *catalogQueriesImpl) ListRoomRatings(ctx context.Context, roomID uuid.UUID, limit int) ([]*RatingView, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	return q.catalog.ListRatingsByRoom(ctx, roomID, int32(limit))
}
