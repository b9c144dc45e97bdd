package shared

import (
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/timeslot"
	"campus-booking/internal/domain/user"
)

type UserSnapshot struct {
	ID             uuid.UUID
	Email          string
	PasswordHash   string
	FullName       string
	Role           user.Role
	Verification   user.VerificationStatus
	EmailConfirmed bool
}

type BookingSnapshot struct {
	ID           uuid.UUID
	Code         string
	OwnerID      uuid.UUID
	RoomID       uuid.UUID
	SlotID       uuid.UUID
	BookedDate   time.Time
	Purpose      string
	Status       booking.Status
	StatusReason *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *BookingSnapshot) ToEntity() *booking.Booking {
	return booking.Reconstruct(
		s.ID, s.Code, s.OwnerID, s.RoomID, s.SlotID,
		s.BookedDate, s.Purpose, s.Status, s.StatusReason,
		s.CreatedAt, s.UpdatedAt,
	)
}

type RoomSnapshot struct {
	ID       uuid.UUID
	Name     string
	Location string
	Capacity int32
	IsActive bool
}

type SlotSnapshot struct {
	ID    uuid.UUID
	Start timeslot.TimeOfDay
	End   timeslot.TimeOfDay
}

func (s *SlotSnapshot) ToEntity() timeslot.Slot {
	return timeslot.ReconstructSlot(s.ID, s.Start, s.End)
}

type MemberSnapshot struct {
	UserID   uuid.UUID
	Email    string
	FullName string
	IsOwner  bool
}

// TaskHandle is the persisted identity of a queued job: the database
// row id plus the queue-side id needed to revoke it. UserID is set for
// reminders, which target one member, and nil for expiry checks.
type TaskHandle struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	UserID    *uuid.UUID
	JobID     string
	Kind      JobKind
	RunAt     time.Time
}

type NotificationRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	BookingID *uuid.UUID
	Type      string
	Title     string
	Body      string
}

type ArticleRecord struct {
	ID        uuid.UUID
	Title     string
	Body      string
	ImageURL  *string
	CreatedAt time.Time
}

type BannerRecord struct {
	ID       uuid.UUID
	Title    string
	ImageURL string
	IsActive bool
}
