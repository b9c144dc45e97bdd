package shared

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/rating"
	"campus-booking/internal/domain/user"
	"campus-booking/internal/infra/pg"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db pg.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Members() MemberRepository
	Tasks() TaskRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Ratings() RatingRepository
	Content() ContentRepository
	Reads() CommandReads
	DB() pg.DBTX
}

type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	SlotByID(ctx context.Context, id uuid.UUID) (*SlotSnapshot, error)
	// BlockedSlotIDs returns the slot ids of every pending or active
	// booking for the room on that date, the conflict checker input.
	BlockedSlotIDs(ctx context.Context, roomID uuid.UUID, date time.Time) ([]uuid.UUID, error)
	MembersByBooking(ctx context.Context, bookingID uuid.UUID) ([]MemberSnapshot, error)
}

type BookingRepository interface {
	// Create inserts the booking in whatever status the entity holds;
	// submit uses it directly for the pending bookings a draft fans
	// out into, with the partial unique index as the race backstop.
	Create(ctx context.Context, db pg.DBTX, b *booking.Booking) error
	// UpdateStatus carries the expected current status in the WHERE
	// clause and reports affected rows, so a lost race surfaces as 0.
	UpdateStatus(ctx context.Context, db pg.DBTX, id uuid.UUID, from, to booking.Status, reason *string, now time.Time) (int64, error)
	// UpdateSlot reschedules a pending or active booking and leaves
	// it active.
	UpdateSlot(ctx context.Context, db pg.DBTX, id uuid.UUID, slotID uuid.UUID, date time.Time, now time.Time) (int64, error)
	// DeleteDraftByOwner discards the owner's current draft so a new
	// initiate can supersede it.
	DeleteDraftByOwner(ctx context.Context, db pg.DBTX, ownerID uuid.UUID) (int64, error)
	Delete(ctx context.Context, db pg.DBTX, id uuid.UUID) error
}

type MemberRepository interface {
	Add(ctx context.Context, db pg.DBTX, bookingID, userID uuid.UUID, isOwner bool, now time.Time) error
	Remove(ctx context.Context, db pg.DBTX, bookingID, userID uuid.UUID) (int64, error)
}

type TaskRepository interface {
	Add(ctx context.Context, db pg.DBTX, t TaskHandle) error
	// DeleteByBooking returns the removed rows so callers can revoke
	// the queued jobs after the transaction commits.
	DeleteByBooking(ctx context.Context, db pg.DBTX, bookingID uuid.UUID) ([]TaskHandle, error)
	DeleteByBookingAndUser(ctx context.Context, db pg.DBTX, bookingID, userID uuid.UUID) ([]TaskHandle, error)
	DeleteByJobID(ctx context.Context, db pg.DBTX, jobID string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, db pg.DBTX, n NotificationRecord) error
	MarkRead(ctx context.Context, db pg.DBTX, id, userID uuid.UUID) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, db pg.DBTX, u *user.User) error
	UpdateVerification(ctx context.Context, db pg.DBTX, id uuid.UUID, to user.VerificationStatus, now time.Time) (int64, error)
	ConfirmEmail(ctx context.Context, db pg.DBTX, id uuid.UUID, now time.Time) error
	UpdateLastLogin(ctx context.Context, db pg.DBTX, id uuid.UUID, now time.Time) error
}

type RatingRepository interface {
	Create(ctx context.Context, db pg.DBTX, r *rating.Rating) error
}

type ContentRepository interface {
	CreateArticle(ctx context.Context, db pg.DBTX, a ArticleRecord) error
	CreateBanner(ctx context.Context, db pg.DBTX, b BannerRecord) error
	CreateRoom(ctx context.Context, db pg.DBTX, r RoomSnapshot) error
	CreateSlot(ctx context.Context, db pg.DBTX, s SlotSnapshot) error
}
