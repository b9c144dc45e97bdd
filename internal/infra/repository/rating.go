package repository

import (
	"context"

	"campus-booking/internal/domain/rating"
	"campus-booking/internal/infra"
	"campus-booking/internal/infra/pg"
	"campus-booking/internal/pkg/pgconv"
)

type RatingRepository struct{}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{}
}

const createRatingSQL = `
INSERT INTO ratings (id, user_id, room_id, booking_id, score, review, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *RatingRepository) Create(ctx context.Context, db pg.DBTX, rt *rating.Rating) error {
	_, err := db.Exec(ctx, createRatingSQL,
		rt.ID(), rt.UserID(), rt.RoomID(), rt.BookingID(),
		rt.Score().Value(), rt.Review(), pgconv.TimeToPgtype(rt.CreatedAt()),
	)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return infra.WrapRepoErr("booking already rated", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create rating", err)
	}
	return nil
}
