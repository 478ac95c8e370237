// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and are managed
// through JobManager:
//
//	job := jobs.NewDelayedShipmentJob(listHandler, 72*time.Hour, "", logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// DelayedShipmentJob lists shipments still Pending after the configured
// threshold (72h by default) and logs a warning for each one. It runs
// hourly unless another schedule is configured.
//
// # Error Handling
//
// A failed check is logged and retried at the next tick.
package jobs
