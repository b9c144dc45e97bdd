package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"campus-booking/internal/usecase/queries"
	"campus-booking/internal/usecase/shared"
)

type BookingResponse struct {
	ID           uuid.UUID        `json:"id"`
	Code         string           `json:"code"`
	RoomID       uuid.UUID        `json:"roomId"`
	RoomName     string           `json:"roomName"`
	SlotID       uuid.UUID        `json:"slotId"`
	SlotStart    string           `json:"slotStart"`
	SlotEnd      string           `json:"slotEnd"`
	OwnerID      uuid.UUID        `json:"ownerId"`
	OwnerName    string           `json:"ownerName"`
	BookedDate   string           `json:"bookedDate"`
	Purpose      string           `json:"purpose"`
	Status       string           `json:"status"`
	StatusReason *string          `json:"statusReason,omitempty"`
	Members      []MemberResponse `json:"members"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

type MemberResponse struct {
	UserID   uuid.UUID `json:"userId"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	IsOwner  bool      `json:"isOwner"`
}

type BookingListResponse struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	RoomID     uuid.UUID `json:"roomId"`
	RoomName   string    `json:"roomName"`
	BookedDate string    `json:"bookedDate"`
	SlotStart  string    `json:"slotStart"`
	SlotEnd    string    `json:"slotEnd"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DraftResponse is the thin shape write commands return right after
// creating bookings (initiate, submit), before the read model has
// anything interesting to say.
type DraftResponse struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	RoomID     uuid.UUID `json:"roomId"`
	SlotID     uuid.UUID `json:"slotId"`
	BookedDate string    `json:"bookedDate"`
	Purpose    string    `json:"purpose"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

const dateLayout = "2006-01-02"

func FromBookingView(v *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, v)
	resp.BookedDate = v.BookedDate.Format(dateLayout)
	return &resp
}

func FromBookingListItem(v *queries.BookingListItem) *BookingListResponse {
	var resp BookingListResponse
	_ = copier.Copy(&resp, v)
	resp.BookedDate = v.BookedDate.Format(dateLayout)
	return &resp
}

func FromBookingSnapshot(s *shared.BookingSnapshot) *DraftResponse {
	return &DraftResponse{
		ID:         s.ID,
		Code:       s.Code,
		RoomID:     s.RoomID,
		SlotID:     s.SlotID,
		BookedDate: s.BookedDate.Format(dateLayout),
		Purpose:    s.Purpose,
		Status:     s.Status.String(),
		CreatedAt:  s.CreatedAt,
	}
}
