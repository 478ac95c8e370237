package jobs

import (
	"context"
	"time"

	"ordering/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultDelayedShipmentSchedule runs the check at the top of every hour.
const DefaultDelayedShipmentSchedule = "0 0 * * * *"

type delayedShipmentsLister interface {
	Handle(ctx context.Context, query queries.ListDelayedShipmentsQuery) ([]queries.DelayedShipment, error)
}

// DelayedShipmentJob warns about shipments that stayed Pending longer than
// the threshold. It only reports; nothing is changed.
type DelayedShipmentJob struct {
	lister    delayedShipmentsLister
	threshold time.Duration
	schedule  string
	now       func() time.Time
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewDelayedShipmentJob(
	lister delayedShipmentsLister,
	threshold time.Duration,
	schedule string,
	logger *zap.Logger,
) *DelayedShipmentJob {
	if schedule == "" {
		schedule = DefaultDelayedShipmentSchedule
	}
	return &DelayedShipmentJob{
		lister:    lister,
		threshold: threshold,
		schedule:  schedule,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "delayed_shipment_job")),
	}
}

// Start registers the check with the scheduler.
func (j *DelayedShipmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Delayed shipment job started",
		zap.String("schedule", j.schedule),
		zap.Duration("threshold", j.threshold))
	return nil
}

// Stop waits for a running check to finish.
func (j *DelayedShipmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Delayed shipment job stopped")
}

// Run performs one check and returns the number of delayed shipments.
func (j *DelayedShipmentJob) Run(ctx context.Context) (int, error) {
	query, err := queries.NewListDelayedShipmentsQuery(j.threshold, j.now().UTC())
	if err != nil {
		j.logger.Error("Delayed shipment check misconfigured", zap.Error(err))
		return 0, err
	}

	delayed, err := j.lister.Handle(ctx, query)
	if err != nil {
		j.logger.Error("Delayed shipment check failed", zap.Error(err))
		return 0, err
	}

	for _, s := range delayed {
		j.logger.Warn("Shipment delayed",
			zap.String("shipment_id", s.ID.String()),
			zap.String("order_id", s.OrderID.String()),
			zap.Time("created_at", s.CreatedAt),
			zap.Duration("pending_for", s.Age))
	}
	return len(delayed), nil
}
