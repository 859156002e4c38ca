package commands

import (
	"context"
	"log/slog"
	"time"

	"shortlet-booking/internal/domain/notification"
	"shortlet-booking/internal/domain/user"
	"shortlet-booking/internal/pkg/clock"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/pkg/errs"
	"shortlet-booking/internal/usecase/shared"
)

//go:generate mockgen -source=notification.go -destination=../../mock/commands/notification_mock.go -package=commandsmock

const (
	defaultNotifyBatchSize = 50
	notifyRetryBase        = time.Minute
)

type DispatchReport struct {
	Claimed int `json:"claimed"`
	Sent    int `json:"sent"`
	Retried int `json:"retried"`
	Failed  int `json:"failed"`
}

type NotificationCommands interface {
	DispatchQueued(ctx context.Context, limit int) (*DispatchReport, error)
}

type notificationUseCaseImpl struct {
	uow      shared.UnitOfWork
	notifier Notifier
	cfg      config.JobsConfig
	clock    clock.Clock
}

func NewNotificationUseCase(uow shared.UnitOfWork, notifier Notifier, cfg config.JobsConfig, clock clock.Clock) NotificationCommands {
	return &notificationUseCaseImpl{
		uow:      uow,
		notifier: notifier,
		cfg:      cfg,
		clock:    clock,
	}
}

// DispatchQueued hands due outbox jobs to the notifier. Claimed rows stay
// locked until the batch commits, so concurrent dispatchers skip them.
func (u *notificationUseCaseImpl) DispatchQueued(ctx context.Context, limit int) (*DispatchReport, error) {
	if limit <= 0 {
		limit = defaultNotifyBatchSize
	}
	maxAttempts := u.cfg.NotifyMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	report := &DispatchReport{}
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		*report = DispatchReport{}
		now := u.clock.Now()

		jobs, err := tx.Notifications().ClaimQueued(ctx, now, limit)
		if err != nil {
			return repoErr(err, nil)
		}
		report.Claimed = len(jobs)

		for _, claimed := range jobs {
			job := claimed.Job
			attempts := job.Attempts + 1

			var sendErr error
			to, addrErr := user.NewEmail(claimed.RecipientEmail)
			if addrErr != nil {
				// a bad address will not heal on retry
				sendErr = errs.Wrapf(addrErr, "recipient %s", job.RecipientID)
				attempts = max(attempts, maxAttempts)
			} else {
				sendErr = u.notifier.Notify(ctx, notification.Message{
					To:      to.Value(),
					Name:    claimed.RecipientName,
					Topic:   job.Topic,
					Payload: job.Payload,
				})
			}

			status, runAt := notification.JobSent, job.RunAt
			var lastError *string
			switch {
			case sendErr == nil:
				report.Sent++
			case attempts >= maxAttempts:
				msg := sendErr.Error()
				status, lastError = notification.JobFailed, &msg
				report.Failed++
				slog.Error("notification delivery abandoned", "job_id", job.ID, "topic", string(job.Topic), "attempts", attempts, "error", msg)
			default:
				msg := sendErr.Error()
				status, lastError = notification.JobQueued, &msg
				runAt = now.Add(notifyRetryBase * time.Duration(1<<(attempts-1)))
				report.Retried++
				slog.Warn("notification delivery failed, will retry", "job_id", job.ID, "topic", string(job.Topic), "attempts", attempts, "error", msg)
			}

			if err := tx.Notifications().UpdateStatus(ctx, job.ID, status, attempts, lastError, runAt); err != nil {
				return repoErr(err, nil)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if report.Claimed > 0 {
		slog.Info("notifications dispatched",
			"claimed", report.Claimed,
			"sent", report.Sent,
			"retried", report.Retried,
			"failed", report.Failed)
	}
	return report, nil
}
