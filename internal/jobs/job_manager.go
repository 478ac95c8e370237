package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	delayedShipmentJob *DelayedShipmentJob
}

func NewJobManager(delayedShipmentJob *DelayedShipmentJob) *JobManager {
	return &JobManager{
		delayedShipmentJob: delayedShipmentJob,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.delayedShipmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start delayed shipment job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.delayedShipmentJob.Stop()
}
