//go:build unit

package scheduler_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/infra"
	"campus-booking/internal/infra/pg"
	"campus-booking/internal/scheduler"
	"campus-booking/internal/usecase/shared"
)

// stubUoW wires just enough of the unit of work for the queue handlers:
// booking lookups, notification inserts and task-row deletes. Everything
// the handlers never touch panics so drift is caught immediately.
type stubUoW struct {
	bookings      map[uuid.UUID]*shared.BookingSnapshot
	notifications []shared.NotificationRecord
}

func newStubUoW() *stubUoW {
	return &stubUoW{bookings: make(map[uuid.UUID]*shared.BookingSnapshot)}
}

func (s *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, stubTx{s})
}

func (s *stubUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db pg.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *stubUoW) CommandReads() shared.CommandReads { return stubReads{s} }

type stubTx struct{ s *stubUoW }

func (t stubTx) Bookings() shared.BookingRepository           { panic("not wired") }
func (t stubTx) Members() shared.MemberRepository             { panic("not wired") }
func (t stubTx) Tasks() shared.TaskRepository                 { return stubTaskRepo{} }
func (t stubTx) Notifications() shared.NotificationRepository { return stubNotificationRepo{t.s} }
func (t stubTx) Users() shared.UserRepository                 { panic("not wired") }
func (t stubTx) Ratings() shared.RatingRepository             { panic("not wired") }
func (t stubTx) Content() shared.ContentRepository            { panic("not wired") }
func (t stubTx) Reads() shared.CommandReads                   { return stubReads{t.s} }
func (t stubTx) DB() pg.DBTX                                  { return nil }

type stubReads struct{ s *stubUoW }

func (r stubReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	cp := *b
	return &cp, nil
}

func (r stubReads) UserByID(context.Context, uuid.UUID) (*shared.UserSnapshot, error) {
	panic("not wired")
}
func (r stubReads) UserByEmail(context.Context, string) (*shared.UserSnapshot, error) {
	panic("not wired")
}
func (r stubReads) RoomByID(context.Context, uuid.UUID) (*shared.RoomSnapshot, error) {
	panic("not wired")
}
func (r stubReads) SlotByID(context.Context, uuid.UUID) (*shared.SlotSnapshot, error) {
	panic("not wired")
}
func (r stubReads) BlockedSlotIDs(context.Context, uuid.UUID, time.Time) ([]uuid.UUID, error) {
	panic("not wired")
}
func (r stubReads) MembersByBooking(context.Context, uuid.UUID) ([]shared.MemberSnapshot, error) {
	panic("not wired")
}

type stubTaskRepo struct{}

func (stubTaskRepo) Add(context.Context, pg.DBTX, shared.TaskHandle) error { return nil }
func (stubTaskRepo) DeleteByBooking(context.Context, pg.DBTX, uuid.UUID) ([]shared.TaskHandle, error) {
	return nil, nil
}
func (stubTaskRepo) DeleteByBookingAndUser(context.Context, pg.DBTX, uuid.UUID, uuid.UUID) ([]shared.TaskHandle, error) {
	return nil, nil
}
func (stubTaskRepo) DeleteByJobID(context.Context, pg.DBTX, string) error { return nil }

type stubNotificationRepo struct{ s *stubUoW }

func (r stubNotificationRepo) Create(_ context.Context, _ pg.DBTX, n shared.NotificationRecord) error {
	r.s.notifications = append(r.s.notifications, n)
	return nil
}

func (r stubNotificationRepo) MarkRead(context.Context, pg.DBTX, uuid.UUID, uuid.UUID) (int64, error) {
	return 0, nil
}

type recordingNotifier struct {
	pushes []shared.PushMessage
	err    error
}

func (n *recordingNotifier) Push(_ context.Context, msg shared.PushMessage) error {
	if n.err != nil {
		return n.err
	}
	n.pushes = append(n.pushes, msg)
	return nil
}

type recordingFinalizer struct {
	completed []uuid.UUID
	expired   []uuid.UUID
}

func (f *recordingFinalizer) CompleteIfActive(_ context.Context, id uuid.UUID) error {
	f.completed = append(f.completed, id)
	return nil
}

func (f *recordingFinalizer) ExpireIfPending(_ context.Context, id uuid.UUID) error {
	f.expired = append(f.expired, id)
	return nil
}

func seedBooking(uow *stubUoW, status booking.Status) uuid.UUID {
	id := uuid.New()
	uow.bookings[id] = &shared.BookingSnapshot{
		ID:      id,
		Code:    "BK1234",
		OwnerID: uuid.New(),
		Status:  status,
	}
	return id
}

func reminderTask(t *testing.T, p scheduler.ReminderPayload) *asynq.Task {
	t.Helper()
	body, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(scheduler.TypeBookingReminder, body)
}

func TestHandleReminder(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers push and in-app notification for an active booking", func(t *testing.T) {
		uow := newStubUoW()
		notif := &recordingNotifier{}
		fin := &recordingFinalizer{}
		h := scheduler.NewHandlers(uow, notif, fin)

		bookingID := seedBooking(uow, booking.StatusActive)
		userID := uuid.New()
		task := reminderTask(t, scheduler.ReminderPayload{
			BookingID: bookingID, UserID: userID,
			Title: "Booking BK1234", Body: "starts in 10 minutes",
		})

		require.NoError(t, h.HandleReminder(ctx, task))

		require.Len(t, notif.pushes, 1)
		assert.Equal(t, userID, *notif.pushes[0].UserID)
		require.Len(t, uow.notifications, 1)
		assert.Equal(t, "booking_reminder", uow.notifications[0].Type)
		assert.Empty(t, fin.completed, "non-final reminders never finalize")
	})

	t.Run("final reminder completes an active booking", func(t *testing.T) {
		uow := newStubUoW()
		notif := &recordingNotifier{}
		fin := &recordingFinalizer{}
		h := scheduler.NewHandlers(uow, notif, fin)

		bookingID := seedBooking(uow, booking.StatusActive)
		task := reminderTask(t, scheduler.ReminderPayload{
			BookingID: bookingID, UserID: uuid.New(),
			Title: "Booking BK1234", Body: "has ended", Final: true,
		})

		require.NoError(t, h.HandleReminder(ctx, task))
		assert.Equal(t, []uuid.UUID{bookingID}, fin.completed)
	})

	t.Run("reminder for a canceled booking drains silently", func(t *testing.T) {
		uow := newStubUoW()
		notif := &recordingNotifier{}
		fin := &recordingFinalizer{}
		h := scheduler.NewHandlers(uow, notif, fin)

		bookingID := seedBooking(uow, booking.StatusCanceled)
		task := reminderTask(t, scheduler.ReminderPayload{
			BookingID: bookingID, UserID: uuid.New(), Final: true,
		})

		require.NoError(t, h.HandleReminder(ctx, task))
		assert.Empty(t, notif.pushes)
		assert.Empty(t, uow.notifications)
		assert.Empty(t, fin.completed)
	})

	t.Run("reminder for a deleted booking drains silently", func(t *testing.T) {
		uow := newStubUoW()
		h := scheduler.NewHandlers(uow, &recordingNotifier{}, &recordingFinalizer{})

		task := reminderTask(t, scheduler.ReminderPayload{
			BookingID: uuid.New(), UserID: uuid.New(),
		})
		assert.NoError(t, h.HandleReminder(ctx, task))
	})

	t.Run("push failure does not fail the job", func(t *testing.T) {
		uow := newStubUoW()
		notif := &recordingNotifier{err: errors.New("broker down")}
		fin := &recordingFinalizer{}
		h := scheduler.NewHandlers(uow, notif, fin)

		bookingID := seedBooking(uow, booking.StatusActive)
		task := reminderTask(t, scheduler.ReminderPayload{
			BookingID: bookingID, UserID: uuid.New(), Final: true,
		})

		require.NoError(t, h.HandleReminder(ctx, task))
		assert.Len(t, uow.notifications, 1, "in-app copy still written")
		assert.Equal(t, []uuid.UUID{bookingID}, fin.completed)
	})

	t.Run("corrupt payload is not retried", func(t *testing.T) {
		h := scheduler.NewHandlers(newStubUoW(), &recordingNotifier{}, &recordingFinalizer{})
		task := asynq.NewTask(scheduler.TypeBookingReminder, []byte("{nope"))

		err := h.HandleReminder(ctx, task)
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}

func TestHandleExpire(t *testing.T) {
	ctx := context.Background()

	t.Run("hands the booking to the expiry finalizer", func(t *testing.T) {
		uow := newStubUoW()
		fin := &recordingFinalizer{}
		h := scheduler.NewHandlers(uow, &recordingNotifier{}, fin)

		bookingID := seedBooking(uow, booking.StatusPending)
		body, err := json.Marshal(scheduler.ExpirePayload{BookingID: bookingID})
		require.NoError(t, err)

		require.NoError(t, h.HandleExpire(ctx, asynq.NewTask(scheduler.TypeBookingExpire, body)))
		assert.Equal(t, []uuid.UUID{bookingID}, fin.expired)
	})

	t.Run("corrupt payload is not retried", func(t *testing.T) {
		h := scheduler.NewHandlers(newStubUoW(), &recordingNotifier{}, &recordingFinalizer{})
		err := h.HandleExpire(ctx, asynq.NewTask(scheduler.TypeBookingExpire, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}
