package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	autoCloseJob *AutoCloseJob
}

// NewJobManager creates a job manager with all scheduled jobs.
func NewJobManager(closer DeliveredOrdersCloser, autoClose AutoCloseConfig, logger *slog.Logger) *JobManager {
	return &JobManager{
		autoCloseJob: NewAutoCloseJob(closer, autoClose, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.autoCloseJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-close job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.autoCloseJob.Stop()
}
