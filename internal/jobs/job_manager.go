package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Config holds the schedules of the background jobs.
type Config struct {
	// ExpirySchedule is a cron spec with seconds. Empty means DefaultExpirySchedule.
	ExpirySchedule string
	// SessionTTL is how long a packing session may stay in progress. Zero disables expiry.
	SessionTTL time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	expiryJob *StalePackingSessionExpiryJob
	logger    *slog.Logger
}

// NewJobManager creates a new job manager with the jobs enabled by cfg.
func NewJobManager(expirer SessionExpirer, cfg Config, logger *slog.Logger) *JobManager {
	jm := &JobManager{logger: logger.With("component", "job_manager")}
	if cfg.SessionTTL > 0 {
		jm.expiryJob = NewStalePackingSessionExpiryJob(expirer, cfg.ExpirySchedule, cfg.SessionTTL, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.expiryJob == nil {
		jm.logger.Info("Stale packing session expiry disabled")
		return nil
	}

	if err := jm.expiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale packing session expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.expiryJob != nil {
		jm.expiryJob.Stop()
	}
}
