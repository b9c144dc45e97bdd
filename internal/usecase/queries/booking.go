package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/timeslot"
	"campus-booking/internal/domain/user"
	"campus-booking/internal/pkg/clock"
	"campus-booking/internal/pkg/errs"
)

var (
	ErrBookingAccessDenied = errs.New("booking is not visible to this user")
	ErrInvalidStatusFilter = errs.New("invalid status filter")
)

const defaultHistoryLimit = 50

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error)
	// GetByCode backs the QR scan flow at the room door; any admin
	// device may look up a booking by its code.
	GetByCode(ctx context.Context, code string) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, statuses []string, limit int) ([]*BookingListItem, error)
	AvailableSlots(ctx context.Context, roomID uuid.UUID, date time.Time) ([]*SlotView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByCode(ctx context.Context, code string) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, statuses []string, limit int32) ([]*BookingListItem, error)
}

type CatalogViewRepo interface {
	ListRooms(ctx context.Context) ([]*RoomView, error)
	FindRoomByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	ListSlots(ctx context.Context) ([]*SlotView, error)
	BlockedSlotIDs(ctx context.Context, roomID uuid.UUID, date time.Time) ([]uuid.UUID, error)
	ListArticles(ctx context.Context, limit int32) ([]*ArticleView, error)
	ListBanners(ctx context.Context) ([]*BannerView, error)
	ListRatingsByRoom(ctx context.Context, roomID uuid.UUID, limit int32) ([]*RatingView, error)
}

type bookingQueriesImpl struct {
	bookings BookingViewRepo
	catalog  CatalogViewRepo
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingViewRepo, catalog CatalogViewRepo, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, catalog: catalog, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole == user.RoleAdmin {
		return view, nil
	}
	for _, m := range view.Members {
		if m.UserID == actorID {
			return view, nil
		}
	}
	return nil, ErrBookingAccessDenied
}

func (q *bookingQueriesImpl) GetByCode(ctx context.Context, code string) (*BookingView, error) {
	return q.bookings.FindByCode(ctx, code)
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, statuses []string, limit int) ([]*BookingListItem, error) {
	for _, s := range statuses {
		if _, err := booking.NewStatus(s); err != nil {
			return nil, errs.Mark(err, ErrInvalidStatusFilter)
		}
	}
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	return q.bookings.FindByUserID(ctx, userID, statuses, int32(limit))
}

// AvailableSlots runs the conflict check against every pending and
// active booking for the room on that date, then drops slots that have
// already started when the date is today.
func (q *bookingQueriesImpl) AvailableSlots(ctx context.Context, roomID uuid.UUID, date time.Time) ([]*SlotView, error) {
	if _, err := q.catalog.FindRoomByID(ctx, roomID); err != nil {
		return nil, err
	}

	slotViews, err := q.catalog.ListSlots(ctx)
	if err != nil {
		return nil, err
	}

	blockedIDs, err := q.catalog.BlockedSlotIDs(ctx, roomID, date)
	if err != nil {
		return nil, err
	}

	catalog := make([]timeslot.Slot, 0, len(slotViews))
	byID := make(map[uuid.UUID]*SlotView, len(slotViews))
	for _, v := range slotViews {
		start, err := timeslot.ParseTimeOfDay(v.StartTime)
		if err != nil {
			return nil, errs.Wrap(err, "corrupt slot catalog entry")
		}
		end, err := timeslot.ParseTimeOfDay(v.EndTime)
		if err != nil {
			return nil, errs.Wrap(err, "corrupt slot catalog entry")
		}
		catalog = append(catalog, timeslot.ReconstructSlot(v.ID, start, end))
		byID[v.ID] = v
	}

	blocked := make([]timeslot.Slot, 0, len(blockedIDs))
	for _, id := range blockedIDs {
		for _, s := range catalog {
			if s.ID() == id {
				blocked = append(blocked, s)
			}
		}
	}

	conflicts := timeslot.FindConflicts(catalog, blocked)
	available := timeslot.Available(catalog, conflicts, date, q.clock.Now())

	out := make([]*SlotView, 0, len(available))
	for _, s := range available {
		out = append(out, byID[s.ID()])
	}
	return out, nil
}
