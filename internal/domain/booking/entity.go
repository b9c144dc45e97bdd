package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/pkg/errs"
)

var (
	ErrInvalidTransition    = errors.New("invalid booking status transition")
	ErrCancelReasonRequired = errors.New("cancel reason is required")
	ErrSameSlot             = errors.New("new slot is identical to the current one")
)

// Booking is the aggregate root of the reservation lifecycle. All
// status changes go through the transition table; repositories persist
// whatever state the entity ends up in.
type Booking struct {
	id           uuid.UUID
	code         string
	ownerID      uuid.UUID
	roomID       uuid.UUID
	slotID       uuid.UUID
	bookedDate   time.Time
	purpose      string
	status       Status
	statusReason *string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewDraft creates an initiated booking. Drafts hold the slot the user
// is composing but do not block availability until submitted.
func NewDraft(id uuid.UUID, code string, ownerID, roomID, slotID uuid.UUID, bookedDate time.Time, purpose string, now time.Time) (*Booking, error) {
	if code == "" {
		return nil, errs.New("booking code is required")
	}
	return &Booking{
		id:         id,
		code:       code,
		ownerID:    ownerID,
		roomID:     roomID,
		slotID:     slotID,
		bookedDate: bookedDate,
		purpose:    purpose,
		status:     StatusInitiated,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// NewSubmitted creates a booking that is already pending, the shape a
// draft fans out into at submission: one booking per requested slot.
func NewSubmitted(id uuid.UUID, code string, ownerID, roomID, slotID uuid.UUID, bookedDate time.Time, purpose string, now time.Time) (*Booking, error) {
	b, err := NewDraft(id, code, ownerID, roomID, slotID, bookedDate, purpose, now)
	if err != nil {
		return nil, err
	}
	if err := b.Submit(purpose, now); err != nil {
		return nil, err
	}
	return b, nil
}

func Reconstruct(
	id uuid.UUID,
	code string,
	ownerID, roomID, slotID uuid.UUID,
	bookedDate time.Time,
	purpose string,
	status Status,
	statusReason *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		code:         code,
		ownerID:      ownerID,
		roomID:       roomID,
		slotID:       slotID,
		bookedDate:   bookedDate,
		purpose:      purpose,
		status:       status,
		statusReason: statusReason,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) Code() string          { return b.code }
func (b *Booking) OwnerID() uuid.UUID    { return b.ownerID }
func (b *Booking) RoomID() uuid.UUID     { return b.roomID }
func (b *Booking) SlotID() uuid.UUID     { return b.slotID }
func (b *Booking) BookedDate() time.Time { return b.bookedDate }
func (b *Booking) Purpose() string       { return b.purpose }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) StatusReason() *string { return b.statusReason }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool { return b.ownerID == userID }

func (b *Booking) transition(to Status, now time.Time) error {
	if !b.status.CanTransitionTo(to) {
		return errs.Wrap(ErrInvalidTransition,
			"cannot move booking from "+b.status.String()+" to "+to.String())
	}
	b.status = to
	b.updatedAt = now
	return nil
}

// Submit promotes a draft to pending so it starts blocking the slot.
func (b *Booking) Submit(purpose string, now time.Time) error {
	if purpose == "" {
		return errs.New("purpose is required")
	}
	if err := b.transition(StatusPending, now); err != nil {
		return err
	}
	b.purpose = purpose
	return nil
}

func (b *Booking) Approve(now time.Time) error {
	return b.transition(StatusActive, now)
}

func (b *Booking) Reject(reason string, now time.Time) error {
	if err := b.transition(StatusRejected, now); err != nil {
		return err
	}
	if reason != "" {
		b.statusReason = &reason
	}
	return nil
}

// Cancel works from any non-terminal status and always needs a reason
// so members receive a meaningful notification.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if reason == "" {
		return ErrCancelReasonRequired
	}
	if err := b.transition(StatusCanceled, now); err != nil {
		return err
	}
	b.statusReason = &reason
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	return b.transition(StatusCompleted, now)
}

// Expire marks a pending booking that was never approved before its
// slot started. Only the dispatcher calls this.
func (b *Booking) Expire(now time.Time) error {
	return b.transition(StatusExpired, now)
}

// Reschedule re-points a pending or active booking at a new slot or
// date and leaves it active. Callers re-run the conflict check and
// swap the scheduled jobs.
func (b *Booking) Reschedule(newSlotID uuid.UUID, newDate time.Time, now time.Time) error {
	if b.status != StatusPending && b.status != StatusActive {
		return errs.Wrap(ErrInvalidTransition,
			"only pending or active bookings can be rescheduled, got "+b.status.String())
	}
	sameDay := b.bookedDate.Year() == newDate.Year() && b.bookedDate.YearDay() == newDate.YearDay()
	if b.slotID == newSlotID && sameDay {
		return ErrSameSlot
	}
	b.slotID = newSlotID
	b.bookedDate = newDate
	b.status = StatusActive
	b.updatedAt = now
	return nil
}
