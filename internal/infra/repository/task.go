package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"campus-booking/internal/infra"
	"campus-booking/internal/infra/pg"
	"campus-booking/internal/pkg/pgconv"
	"campus-booking/internal/usecase/shared"
)

type TaskRepository struct{}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

const addTaskSQL = `
INSERT INTO scheduled_tasks (id, booking_id, user_id, job_id, kind, run_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (r *TaskRepository) Add(ctx context.Context, db pg.DBTX, t shared.TaskHandle) error {
	_, err := db.Exec(ctx, addTaskSQL,
		t.ID, t.BookingID, pgconv.UUIDPtrToPgtype(t.UserID), t.JobID, string(t.Kind), pgconv.TimeToPgtype(t.RunAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record scheduled task", err)
	}
	return nil
}

const deleteTasksByBookingSQL = `
DELETE FROM scheduled_tasks WHERE booking_id = $1
RETURNING id, booking_id, user_id, job_id, kind, run_at
`

// DeleteByBooking returns the removed handles so the caller can revoke
// the queued jobs once the transaction commits.
func (r *TaskRepository) DeleteByBooking(ctx context.Context, db pg.DBTX, bookingID uuid.UUID) ([]shared.TaskHandle, error) {
	rows, err := db.Query(ctx, deleteTasksByBookingSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to delete scheduled tasks", err)
	}
	return scanTaskHandles(rows)
}

const deleteTasksByBookingAndUserSQL = `
DELETE FROM scheduled_tasks WHERE booking_id = $1 AND user_id = $2
RETURNING id, booking_id, user_id, job_id, kind, run_at
`

func (r *TaskRepository) DeleteByBookingAndUser(ctx context.Context, db pg.DBTX, bookingID, userID uuid.UUID) ([]shared.TaskHandle, error) {
	rows, err := db.Query(ctx, deleteTasksByBookingAndUserSQL, bookingID, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to delete scheduled tasks", err)
	}
	return scanTaskHandles(rows)
}

func scanTaskHandles(rows pgx.Rows) ([]shared.TaskHandle, error) {
	defer rows.Close()

	var handles []shared.TaskHandle
	for rows.Next() {
		h, err := scanTaskHandle(rows)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read scheduled tasks", err)
	}
	return handles, nil
}

func scanTaskHandle(row pgx.Row) (shared.TaskHandle, error) {
	var (
		h      shared.TaskHandle
		userID pgtype.UUID
		kind   string
	)
	if err := row.Scan(&h.ID, &h.BookingID, &userID, &h.JobID, &kind, &h.RunAt); err != nil {
		return shared.TaskHandle{}, infra.WrapRepoErr("failed to scan scheduled task", err)
	}
	h.UserID = pgconv.UUIDPtrFromPgtype(userID)
	h.Kind = shared.JobKind(kind)
	return h, nil
}

const deleteTaskByJobIDSQL = `DELETE FROM scheduled_tasks WHERE job_id = $1`

func (r *TaskRepository) DeleteByJobID(ctx context.Context, db pg.DBTX, jobID string) error {
	if _, err := db.Exec(ctx, deleteTaskByJobIDSQL, jobID); err != nil {
		return infra.WrapRepoErr("failed to delete scheduled task", err)
	}
	return nil
}
