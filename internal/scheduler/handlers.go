package scheduler

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/infra"
	"campus-booking/internal/pkg/config"
	"campus-booking/internal/pkg/errs"
	"campus-booking/internal/usecase/shared"
)

// BookingFinalizer applies the queue-driven lifecycle transitions.
// Both methods are idempotent: a booking that already moved on is a
// no-op, which keeps duplicate or stale jobs harmless.
type BookingFinalizer interface {
	CompleteIfActive(ctx context.Context, bookingID uuid.UUID) error
	ExpireIfPending(ctx context.Context, bookingID uuid.UUID) error
}

type Handlers struct {
	uow       shared.UnitOfWork
	notifier  shared.Notifier
	finalizer BookingFinalizer
}

func NewHandlers(uow shared.UnitOfWork, notifier shared.Notifier, finalizer BookingFinalizer) *Handlers {
	return &Handlers{uow: uow, notifier: notifier, finalizer: finalizer}
}

func NewServeMux(h *Handlers) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingReminder, h.HandleReminder)
	mux.HandleFunc(TypeBookingExpire, h.HandleExpire)
	return mux
}

func NewServer(opt asynq.RedisClientOpt, cfg config.QueueConfig) *asynq.Server {
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{cfg.Name: 1},
	})
}

// HandleReminder delivers one reminder to one member. The booking is
// re-read first: jobs that outlive a canceled or rejected booking
// drain silently because revocation is only best effort.
func (h *Handlers) HandleReminder(ctx context.Context, t *asynq.Task) error {
	var p ReminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return errs.Mark(errs.Wrap(err, "corrupt reminder payload"), asynq.SkipRetry)
	}

	snap, err := h.uow.CommandReads().BookingByID(ctx, p.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return h.dropOwnRecord(ctx)
		}
		return err
	}
	if snap.Status != booking.StatusActive {
		return h.dropOwnRecord(ctx)
	}

	if err := h.notifier.Push(ctx, shared.PushMessage{
		UserID: &p.UserID,
		Type:   "booking_reminder",
		Title:  p.Title,
		Body:   p.Body,
	}); err != nil {
		slog.WarnContext(ctx, "reminder push failed",
			"booking_id", p.BookingID.String(),
			"user_id", p.UserID.String(),
			"error", err.Error())
	}

	jobID, _ := asynq.GetTaskID(ctx)
	err = h.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Notifications().Create(ctx, tx.DB(), shared.NotificationRecord{
			ID:        uuid.New(),
			UserID:    p.UserID,
			BookingID: &p.BookingID,
			Type:      "booking_reminder",
			Title:     p.Title,
			Body:      p.Body,
		}); err != nil {
			return err
		}
		return tx.Tasks().DeleteByJobID(ctx, tx.DB(), jobID)
	})
	if err != nil {
		return err
	}

	if p.Final {
		return h.finalizer.CompleteIfActive(ctx, p.BookingID)
	}
	return nil
}

// HandleExpire fires at slot start for bookings that were still
// pending when scheduled. Anything already approved, canceled or
// rejected passes through untouched.
func (h *Handlers) HandleExpire(ctx context.Context, t *asynq.Task) error {
	var p ExpirePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return errs.Mark(errs.Wrap(err, "corrupt expire payload"), asynq.SkipRetry)
	}

	if err := h.dropOwnRecord(ctx); err != nil {
		return err
	}
	return h.finalizer.ExpireIfPending(ctx, p.BookingID)
}

func (h *Handlers) dropOwnRecord(ctx context.Context) error {
	jobID, ok := asynq.GetTaskID(ctx)
	if !ok {
		return nil
	}
	return h.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Tasks().DeleteByJobID(ctx, tx.DB(), jobID)
	})
}
