package events

import (
	"context"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/pkg/logger"
	"github.com/smartlabel/smartlabel-backend/pkg/messaging"
)

// LabelEventPublisher publishes label lifecycle events. Publishing is
// best-effort: failures are logged and never fail the request.
type LabelEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewLabelEventPublisher creates a new label event publisher
func NewLabelEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*LabelEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeLabelEvents, "label-service", log)
	if err != nil {
		return nil, err
	}

	return &LabelEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// PublishLabelGenerated publishes a label generated event. Fallback labels
// are published under their own routing key so consumers can alert on
// degraded generation.
func (p *LabelEventPublisher) PublishLabelGenerated(ctx context.Context, label *domain.Label) {
	data := messaging.LabelGeneratedEvent{
		LabelID:     label.LabelID,
		ProductID:   label.ProductID,
		Market:      string(label.Market),
		Language:    label.Language,
		GeneratedBy: label.GeneratedBy,
	}

	eventType := messaging.EventLabelGenerated
	if label.GeneratedBy == domain.GeneratedByFallback {
		eventType = messaging.EventLabelFallback
	}

	if err := p.publisher.Publish(ctx, eventType, data); err != nil {
		p.logger.Error().Err(err).Str("label_id", label.LabelID).Msg("failed to publish label generated event")
	}
}

// PublishLabelDeleted publishes a label deleted event
func (p *LabelEventPublisher) PublishLabelDeleted(ctx context.Context, labelID string) {
	data := messaging.LabelDeletedEvent{LabelID: labelID}

	if err := p.publisher.Publish(ctx, messaging.EventLabelDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("label_id", labelID).Msg("failed to publish label deleted event")
	}
}
