// Package notify dispatches shipment notifications. The delivery channel
// (email, SMS) lives outside this service; LogNotifier records each
// dispatch as a structured log entry.
package notify

import (
	"context"
	"sync"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"go.uber.org/zap"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier dispatches every notification on its own goroutine so callers
// never wait for it. Wait blocks until dispatches in flight are done.
type LogNotifier struct {
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With(zap.String("component", "notifier"))}
}

func (n *LogNotifier) Notify(ctx context.Context, shipmentID kernel.UUID, kind ports.NotificationKind) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := ctx.Err(); err != nil {
			n.logger.Warn("notification dropped",
				zap.String("shipment_id", shipmentID.String()),
				zap.String("kind", string(kind)),
				zap.Error(err))
			return
		}
		n.logger.Info("shipment notification sent",
			zap.String("shipment_id", shipmentID.String()),
			zap.String("kind", string(kind)))
	}()
}

// Wait is called on shutdown.
func (n *LogNotifier) Wait() {
	n.wg.Wait()
}
