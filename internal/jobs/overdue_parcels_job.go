package jobs

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
)

// DefaultOverdueSchedule runs the report at the top of every hour.
const DefaultOverdueSchedule = "0 0 * * * *"

// OverdueParcelsGauge is the number of overdue parcels found by the last run.
var OverdueParcelsGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "parceltrack_overdue_parcels",
	Help: "Parcels past their expected delivery date that are not delivered, cancelled or returned.",
})

// OverdueParcelsFinder lists parcels past their expected delivery date.
type OverdueParcelsFinder interface {
	Handle(ctx context.Context, query queries.ListOverdueParcelsQuery) ([]queries.OverdueParcel, error)
}

// OverdueParcelsJob periodically reports parcels that missed their expected
// delivery date. It only observes; no parcel is changed.
type OverdueParcelsJob struct {
	finder   OverdueParcelsFinder
	clock    kernel.Clock
	schedule string
	gauge    prometheus.Gauge
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOverdueParcelsJob creates the job. schedule is a six-field cron
// expression; empty means DefaultOverdueSchedule.
func NewOverdueParcelsJob(
	finder OverdueParcelsFinder,
	clock kernel.Clock,
	schedule string,
	gauge prometheus.Gauge,
	logger *slog.Logger,
) *OverdueParcelsJob {
	if schedule == "" {
		schedule = DefaultOverdueSchedule
	}
	return &OverdueParcelsJob{
		finder:   finder,
		clock:    clock,
		schedule: schedule,
		gauge:    gauge,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "overdue_parcels_job"),
	}
}

// Start schedules the report.
func (j *OverdueParcelsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Overdue parcels job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue parcels job started", "schedule", j.schedule)
	return nil
}

// Run performs one report.
func (j *OverdueParcelsJob) Run(ctx context.Context) error {
	query, err := queries.NewListOverdueParcelsQuery(j.clock.Now())
	if err != nil {
		return err
	}

	overdue, err := j.finder.Handle(ctx, query)
	if err != nil {
		return err
	}

	j.gauge.Set(float64(len(overdue)))
	for _, p := range overdue {
		j.logger.WarnContext(ctx, "Parcel is overdue",
			"parcel_id", p.ID.String(),
			"tracking_id", p.TrackingID,
			"status", p.Status.String(),
			"expected_delivery_date", p.ExpectedDeliveryDate.Format(time.DateOnly),
		)
	}

	return nil
}

// Stop waits for a running report to finish.
func (j *OverdueParcelsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue parcels job stopped")
}
