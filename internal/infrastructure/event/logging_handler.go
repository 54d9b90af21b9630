package event

import (
	"context"

	"github.com/ikpixels/marketplace/internal/domain/order"
	"github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/domain/shared"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// LoggingHandler writes one structured log line per domain event
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a LoggingHandler
func NewLoggingHandler(log *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: log}
}

// EventTypes subscribes to every event
func (h *LoggingHandler) EventTypes() []string {
	return nil
}

// Handle logs evt with its payload fields
func (h *LoggingHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
	}
	switch e := evt.(type) {
	case *payment.SettledEvent:
		fields = append(fields,
			zap.String("tx_ref", e.TxRef),
			zap.String("channel", string(e.Channel)),
			zap.String("amount", e.Amount.String()),
		)
	case *order.OrderPaidEvent:
		fields = append(fields,
			zap.String("total", e.Total.String()),
			zap.Int("items", len(e.Items)),
		)
	}
	logger.Enrich(ctx, h.logger).Info("Domain event", fields...)
	return nil
}

var _ shared.EventHandler = (*LoggingHandler)(nil)
