// Package jobs provides scheduled background tasks for the ordering service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OrderExpiryJob - cancels PENDING orders older than a configured TTL and returns
// their stock to inventory through the normal cancel path
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager()
//	jobManager.Register("order expiry", jobs.NewOrderExpiryJob(handler, "0 */5 * * * *", 24*time.Hour, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with a leading seconds field.
//
// # Error Handling
//
// - Orders that changed state between listing and cancelling are skipped silently
// - Other failures are logged; the next run retries them
// - Failed job starts will stop any already running jobs
package jobs
