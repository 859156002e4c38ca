package repository

import (
	"context"
	"time"

	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/infra"
	sqlc "shortlet-booking/internal/infra/sqlc/generated"
	"shortlet-booking/internal/pkg/pgconv"
	"shortlet-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationQueries interface {
	EnqueueNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.EnqueueNotificationJobParams) (int64, error)
	ClaimQueuedNotificationJobs(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimQueuedNotificationJobsParams) ([]sqlc.ClaimQueuedNotificationJobsRow, error)
	UpdateNotificationJobStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateNotificationJobStatusParams) error
}

type NotificationRepository struct {
	queries NotificationQueries
	db      sqlc.DBTX
}

func NewNotificationRepository(queries NotificationQueries, db sqlc.DBTX) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *NotificationRepository) Enqueue(ctx context.Context, job notification.Job) (bool, error) {
	n, err := r.queries.EnqueueNotificationJob(ctx, r.db, sqlc.EnqueueNotificationJobParams{
		ID:          job.ID,
		Kind:        job.Kind,
		Topic:       string(job.Topic),
		DedupeKey:   job.DedupeKey,
		RecipientID: job.RecipientID,
		SubjectID:   job.SubjectID,
		Payload:     job.Payload,
		RunAt:       pgconv.TimeToPgtype(job.RunAt),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return n == 1, nil
}

// ClaimQueued locks due jobs with SKIP LOCKED so concurrent dispatchers split the queue.
func (r *NotificationRepository) ClaimQueued(ctx context.Context, now time.Time, limit int) ([]shared.ClaimedJob, error) {
	rows, err := r.queries.ClaimQueuedNotificationJobs(ctx, r.db, sqlc.ClaimQueuedNotificationJobsParams{
		Now:       pgconv.TimeToPgtype(now),
		BatchSize: clampLimit(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	result := make([]shared.ClaimedJob, len(rows))
	for i, row := range rows {
		result[i] = shared.ClaimedJob{
			Job: notification.Job{
				ID:          row.ID,
				Kind:        row.Kind,
				Topic:       notification.Topic(row.Topic),
				DedupeKey:   row.DedupeKey,
				RecipientID: row.RecipientID,
				SubjectID:   row.SubjectID,
				Payload:     row.Payload,
				RunAt:       pgconv.TimeFromPgtype(row.RunAt),
				Attempts:    row.Attempts,
				Status:      notification.JobStatus(row.Status),
			},
			RecipientEmail: row.RecipientEmail,
			RecipientName:  row.RecipientName,
		}
	}
	return result, nil
}

func (r *NotificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status notification.JobStatus, attempts int32, lastError *string, runAt time.Time) error {
	err := r.queries.UpdateNotificationJobStatus(ctx, r.db, sqlc.UpdateNotificationJobStatusParams{
		Status:    string(status),
		Attempts:  attempts,
		LastError: pgconv.StringPtrToPgtype(lastError),
		RunAt:     pgconv.TimeToPgtype(runAt),
		ID:        id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	return nil
}
