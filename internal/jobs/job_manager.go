package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	viewRefreshJob *ViewRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the read-side handlers as dependencies to wire up the refresh loop.
func NewJobManager(
	viewsFetcher ViewsFetcher,
	statsFetcher StatsFetcher,
	refreshInterval time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		viewRefreshJob: NewViewRefreshJob(viewsFetcher, statsFetcher, refreshInterval, logger),
	}
}

// ViewRefreshJob exposes the refresh job so the inbound adapter can serve
// the materialized snapshot.
func (jm *JobManager) ViewRefreshJob() *ViewRefreshJob {
	return jm.viewRefreshJob
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.viewRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start view refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.viewRefreshJob.Stop()
}
