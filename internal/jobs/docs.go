// Package jobs provides scheduled background tasks for the fulfillment
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order consoles.
//
// # Available Jobs
//
// 1. ViewRefreshJob - Re-pulls the order store on a fixed interval (30s by
// default) and keeps a materialized dashboard snapshot warm for polling
// clients
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the read-side handlers
//	jobManager := jobs.NewJobManager(viewsHandler, statsHandler, interval, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The refresh job uses an "@every" cron descriptor derived from the
// configured interval. Ticks that land while the previous fetch is still in
// flight are skipped, so a slow store never stacks fetches.
//
// # Error Handling
//
// Fetch failures are retried with doubling backoff a bounded number of
// times. When the retries run out the last good snapshot is kept and marked
// stale; the next successful cycle replaces it wholesale.
package jobs
