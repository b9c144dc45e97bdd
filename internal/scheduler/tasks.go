package scheduler

import (
	"encoding/json"

	"github.com/google/uuid"

	"campus-booking/internal/pkg/errs"
)

const (
	TypeBookingReminder = "booking:reminder"
	TypeBookingExpire   = "booking:expire"
)

// ReminderPayload targets one member of one booking. Final marks the
// reminder at slot end; its handler also completes the booking.
type ReminderPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Final     bool      `json:"final"`
}

type ExpirePayload struct {
	BookingID uuid.UUID `json:"booking_id"`
}

func marshalPayload(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errs.Wrap(err, "failed to marshal task payload")
	}
	return b, nil
}
