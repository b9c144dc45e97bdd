package request

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type InitiateBookingRequest struct {
	RoomID     uuid.UUID `json:"room_id" binding:"required"`
	SlotID     uuid.UUID `json:"slot_id" binding:"required"`
	BookedDate string    `json:"booked_date" binding:"required"`
	Purpose    string    `json:"purpose"`
}

func (r InitiateBookingRequest) ParseDate() (time.Time, error) {
	return time.Parse(dateLayout, r.BookedDate)
}

// SubmitBookingRequest carries the final slot choice: one pending
// booking is created per slot id, so consecutive slots book a longer
// session in one call.
type SubmitBookingRequest struct {
	SlotIDs []uuid.UUID `json:"slot_ids" binding:"required,min=1"`
	Purpose string      `json:"purpose" binding:"required"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RescheduleBookingRequest struct {
	SlotID     uuid.UUID `json:"slot_id" binding:"required"`
	BookedDate string    `json:"booked_date" binding:"required"`
}

func (r RescheduleBookingRequest) ParseDate() (time.Time, error) {
	return time.Parse(dateLayout, r.BookedDate)
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RateBookingRequest struct {
	Score  int    `json:"score" binding:"required,min=1,max=5"`
	Review string `json:"review"`
}
