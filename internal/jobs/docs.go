// Package jobs provides scheduled background tasks for the parcel service.
//
// Jobs are cron based (github.com/robfig/cron/v3, six-field expressions
// with seconds) and are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(overdueHandler, kernel.SystemClock{}, "0 0 * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// OverdueParcelsJob lists parcels whose expected delivery date lies before
// today and whose status is not terminal. Each one is logged at warn level and
// the count is exported as the parceltrack_overdue_parcels gauge.
package jobs
