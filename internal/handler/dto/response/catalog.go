package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"campus-booking/internal/usecase/queries"
)

type RoomResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    int32     `json:"capacity"`
	IsActive    bool      `json:"isActive"`
	AvgScore    *float64  `json:"avgScore,omitempty"`
	RatingCount int64     `json:"ratingCount"`
}

type SlotResponse struct {
	ID        uuid.UUID `json:"id"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

type ArticleResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type BannerResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	ImageURL string    `json:"imageUrl"`
	IsActive bool      `json:"isActive"`
}

type RatingResponse struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"roomId"`
	UserName  string    `json:"userName"`
	Score     int       `json:"score"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	var resp RoomResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromRoomViews(vs []*queries.RoomView) []*RoomResponse {
	out := make([]*RoomResponse, len(vs))
	for i, v := range vs {
		out[i] = FromRoomView(v)
	}
	return out
}

func FromSlotViews(vs []*queries.SlotView) []*SlotResponse {
	out := make([]*SlotResponse, len(vs))
	for i, v := range vs {
		var resp SlotResponse
		_ = copier.Copy(&resp, v)
		out[i] = &resp
	}
	return out
}

func FromArticleViews(vs []*queries.ArticleView) []*ArticleResponse {
	out := make([]*ArticleResponse, len(vs))
	for i, v := range vs {
		var resp ArticleResponse
		_ = copier.Copy(&resp, v)
		out[i] = &resp
	}
	return out
}

func FromBannerViews(vs []*queries.BannerView) []*BannerResponse {
	out := make([]*BannerResponse, len(vs))
	for i, v := range vs {
		var resp BannerResponse
		_ = copier.Copy(&resp, v)
		out[i] = &resp
	}
	return out
}

func FromRatingViews(vs []*queries.RatingView) []*RatingResponse {
	out := make([]*RatingResponse, len(vs))
	for i, v := range vs {
		var resp RatingResponse
		_ = copier.Copy(&resp, v)
		out[i] = &resp
	}
	return out
}
