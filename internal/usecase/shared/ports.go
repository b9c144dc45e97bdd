package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type JobKind string

const (
	JobKindReminder JobKind = "reminder"
	JobKindExpire   JobKind = "expire"
)

// ScheduledJob is one future task handed to the queue. Final marks the
// reminder at slot end whose handler also completes the booking.
type ScheduledJob struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	Kind      JobKind
	RunAt     time.Time
	Title     string
	Body      string
	Final     bool
}

// Scheduler enqueues jobs for future execution and revokes jobs that
// have not run yet. Revoking an already-executed job is a no-op.
type Scheduler interface {
	Schedule(ctx context.Context, job ScheduledJob) (jobID string, err error)
	Revoke(ctx context.Context, jobID string) error
}

type PushMessage struct {
	UserID *uuid.UUID
	Topic  *string
	Type   string
	Title  string
	Body   string
}

// Notifier delivers a push message. Delivery is best effort; callers
// log failures and move on.
type Notifier interface {
	Push(ctx context.Context, msg PushMessage) error
}

type OTPStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	// Verify consumes the code on success.
	Verify(ctx context.Context, email, code string) (bool, error)
}
