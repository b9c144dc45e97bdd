package scheduler

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"

	"campus-booking/internal/pkg/config"
	"campus-booking/internal/pkg/errs"
	"campus-booking/internal/usecase/shared"
)

const maxTaskRetry = 3

// AsynqScheduler queues jobs for future execution. Revocation goes
// through the inspector, which can delete any task that has not been
// picked up yet.
type AsynqScheduler struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	queue     string
}

func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewAsynqScheduler(opt asynq.RedisClientOpt, queue string) *AsynqScheduler {
	return &AsynqScheduler{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		queue:     queue,
	}
}

func (s *AsynqScheduler) Schedule(ctx context.Context, job shared.ScheduledJob) (string, error) {
	var (
		taskType string
		payload  []byte
		err      error
	)
	switch job.Kind {
	case shared.JobKindReminder:
		taskType = TypeBookingReminder
		payload, err = marshalPayload(ReminderPayload{
			BookingID: job.BookingID,
			UserID:    job.UserID,
			Title:     job.Title,
			Body:      job.Body,
			Final:     job.Final,
		})
	case shared.JobKindExpire:
		taskType = TypeBookingExpire
		payload, err = marshalPayload(ExpirePayload{BookingID: job.BookingID})
	default:
		return "", errs.New("unknown job kind: " + string(job.Kind))
	}
	if err != nil {
		return "", err
	}

	task := asynq.NewTask(taskType, payload)
	info, err := s.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(job.RunAt),
		asynq.Queue(s.queue),
		asynq.MaxRetry(maxTaskRetry),
	)
	if err != nil {
		return "", errs.Wrap(err, "failed to enqueue task")
	}
	return info.ID, nil
}

// Revoke deletes a queued task. A task that already ran or was already
// removed is not an error; its handler re-checks booking state anyway.
func (s *AsynqScheduler) Revoke(_ context.Context, jobID string) error {
	err := s.inspector.DeleteTask(s.queue, jobID)
	if err == nil ||
		errors.Is(err, asynq.ErrTaskNotFound) ||
		errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return errs.Wrap(err, "failed to revoke task")
}

func (s *AsynqScheduler) Close() error {
	return s.client.Close()
}
