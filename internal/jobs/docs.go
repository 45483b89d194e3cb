// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StalePackingSessionExpiryJob - Cancels packing sessions left in progress for
// longer than the configured TTL and returns their orders to paid
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(facade, jobs.Config{
//		ExpirySchedule: "0 */5 * * * *",
//		SessionTTL:     2 * time.Hour,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six field cron format with a leading seconds field.
// A zero SessionTTL disables expiry; nothing is scheduled in that case.
package jobs
