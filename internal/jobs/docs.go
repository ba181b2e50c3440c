// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order routing.
//
// # Available Jobs
//
// 1. OrderAssignmentJob - Runs every second to route pending orders to the nearest store
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(assignOrderHandler, logger)
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
// The assignment job uses the cron expression "* * * * * *" which means it
// runs every second, keeping routing latency low without an external queue.
//
// # Error Handling
//
// - Assignment job ignores expected business errors (empty backlog, no suitable store)
// - Failed job starts will stop any already running jobs
package jobs
