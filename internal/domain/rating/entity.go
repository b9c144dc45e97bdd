package rating

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/pkg/errs"
)

const MaxReviewLength = 1000

var (
	ErrInvalidScore       = errs.New("score must be between 1 and 5")
	ErrReviewTooLong      = errs.New("review text is too long")
	ErrBookingNotEligible = errs.New("only completed bookings can be rated")
	ErrAlreadyRated       = errs.New("booking has already been rated by this user")
)

type Score struct {
	value int
}

func NewScore(v int) (Score, error) {
	if v < 1 || v > 5 {
		return Score{}, ErrInvalidScore
	}
	return Score{value: v}, nil
}

func (s Score) Value() int { return s.value }

// Rating is a post-usage review of a room, tied to the completed
// booking that grants the right to post it.
type Rating struct {
	id        uuid.UUID
	userID    uuid.UUID
	roomID    uuid.UUID
	bookingID uuid.UUID
	score     Score
	review    string
	createdAt time.Time
}

func New(id, userID, roomID, bookingID uuid.UUID, scoreValue int, review string, now time.Time) (*Rating, error) {
	score, err := NewScore(scoreValue)
	if err != nil {
		return nil, err
	}

	review = strings.TrimSpace(review)
	if len(review) > MaxReviewLength {
		return nil, ErrReviewTooLong
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Rating{
		id:        id,
		userID:    userID,
		roomID:    roomID,
		bookingID: bookingID,
		score:     score,
		review:    review,
		createdAt: now,
	}, nil
}

func Reconstruct(id, userID, roomID, bookingID uuid.UUID, scoreValue int, review string, createdAt time.Time) *Rating {
	return &Rating{
		id:        id,
		userID:    userID,
		roomID:    roomID,
		bookingID: bookingID,
		score:     Score{value: scoreValue},
		review:    review,
		createdAt: createdAt,
	}
}

func (r *Rating) ID() uuid.UUID        { return r.id }
func (r *Rating) UserID() uuid.UUID    { return r.userID }
func (r *Rating) RoomID() uuid.UUID    { return r.roomID }
func (r *Rating) BookingID() uuid.UUID { return r.bookingID }
func (r *Rating) Score() Score         { return r.score }
func (r *Rating) Review() string       { return r.review }
func (r *Rating) CreatedAt() time.Time { return r.createdAt }
