// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs use github.com/robfig/cron/v3 and are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(closeDeliveredHandler, jobs.AutoCloseConfig{
//		Schedule: "@every 15m",
//		IdleFor:  48 * time.Hour,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// AutoCloseJob completes orders that are delivering, whose delivery is
// delivered and that nobody touched for IdleFor. Each order goes through the
// normal status transition with the system actor, so it gets the same event,
// audit entry and notification as a manual change. A pass that is still
// running when the next one is due is skipped.
package jobs
