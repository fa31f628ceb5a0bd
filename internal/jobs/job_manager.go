package jobs

import (
	"fmt"
	"log/slog"

	"parceltrack/internal/core/domain/model/kernel"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs    []namedJob
	started []namedJob
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates the job manager with the overdue parcels report.
func NewJobManager(
	overdueFinder OverdueParcelsFinder,
	clock kernel.Clock,
	overdueSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		jobs: []namedJob{
			{
				name: "overdue parcels",
				job:  NewOverdueParcelsJob(overdueFinder, clock, overdueSchedule, OverdueParcelsGauge, logger),
			},
		},
	}
}

// StartAll starts all scheduled jobs. If one fails, the jobs already started
// are stopped again.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		jm.started = append(jm.started, j)
	}
	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].job.Stop()
	}
	jm.started = nil
}
