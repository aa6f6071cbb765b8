package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/salon/backend/internal/domain/shared"
)

// LoggingEventHandler is a wildcard handler that writes an audit trail
// of every domain event. It is subscribed at startup so customer,
// product, client and menu changes all appear in the structured log.
type LoggingEventHandler struct {
	logger *zap.Logger
}

// NewLoggingEventHandler creates a logging event handler
func NewLoggingEventHandler(logger *zap.Logger) *LoggingEventHandler {
	return &LoggingEventHandler{logger: logger}
}

// Handle logs the event
func (h *LoggingEventHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty slice so the handler receives all events
func (h *LoggingEventHandler) EventTypes() []string {
	return nil
}

// Ensure LoggingEventHandler implements EventHandler
var _ shared.EventHandler = (*LoggingEventHandler)(nil)
