package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID           uuid.UUID    `json:"id"`
	Code         string       `json:"code"`
	RoomID       uuid.UUID    `json:"room_id"`
	RoomName     string       `json:"room_name"`
	SlotID       uuid.UUID    `json:"slot_id"`
	SlotStart    string       `json:"slot_start"`
	SlotEnd      string       `json:"slot_end"`
	OwnerID      uuid.UUID    `json:"owner_id"`
	OwnerName    string       `json:"owner_name"`
	BookedDate   time.Time    `json:"booked_date"`
	Purpose      string       `json:"purpose"`
	Status       string       `json:"status"`
	StatusReason *string      `json:"status_reason,omitempty"`
	Members      []MemberView `json:"members"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type MemberView struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	IsOwner  bool      `json:"is_owner"`
}

type BookingListItem struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	RoomID     uuid.UUID `json:"room_id"`
	RoomName   string    `json:"room_name"`
	BookedDate time.Time `json:"booked_date"`
	SlotStart  string    `json:"slot_start"`
	SlotEnd    string    `json:"slot_end"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type RoomView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    int32     `json:"capacity"`
	IsActive    bool      `json:"is_active"`
	AvgScore    *float64  `json:"avg_score,omitempty"`
	RatingCount int64     `json:"rating_count"`
}

type SlotView struct {
	ID        uuid.UUID `json:"id"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

type UserView struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	Verification   string    `json:"verification_status"`
	EmailConfirmed bool      `json:"email_confirmed"`
	CreatedAt      time.Time `json:"created_at"`
}

type NotificationView struct {
	ID        uuid.UUID  `json:"id"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

type ArticleView struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type BannerView struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	ImageURL string    `json:"image_url"`
	IsActive bool      `json:"is_active"`
}

type RatingView struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	UserName  string    `json:"user_name"`
	Score     int       `json:"score"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
}
