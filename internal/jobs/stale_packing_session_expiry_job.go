package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultExpirySchedule runs the expiry every five minutes.
const DefaultExpirySchedule = "0 */5 * * * *"

// SessionExpirer cancels packing sessions in progress for longer than olderThan
// and reports how many it cancelled.
type SessionExpirer interface {
	ExpireStalePackingSessions(ctx context.Context, olderThan time.Duration) (int, error)
}

// StalePackingSessionExpiryJob periodically releases orders whose packing was
// abandoned, so another admin can pick them up.
type StalePackingSessionExpiryJob struct {
	expirer  SessionExpirer
	schedule string
	ttl      time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewStalePackingSessionExpiryJob(
	expirer SessionExpirer,
	schedule string,
	ttl time.Duration,
	logger *slog.Logger,
) *StalePackingSessionExpiryJob {
	if schedule == "" {
		schedule = DefaultExpirySchedule
	}
	return &StalePackingSessionExpiryJob{
		expirer:  expirer,
		schedule: schedule,
		ttl:      ttl,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_packing_session_expiry_job"),
	}
}

// Start schedules the job. An invalid schedule is reported and nothing runs.
func (j *StalePackingSessionExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale packing session expiry job started",
		"schedule", j.schedule,
		"ttl", j.ttl.String(),
	)
	return nil
}

// Run performs one expiry pass.
func (j *StalePackingSessionExpiryJob) Run(ctx context.Context) {
	expired, err := j.expirer.ExpireStalePackingSessions(ctx, j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale packing session expiry failed", "expired", expired, "error", err)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Stale packing sessions expired", "expired", expired)
	}
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *StalePackingSessionExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale packing session expiry job stopped")
}
