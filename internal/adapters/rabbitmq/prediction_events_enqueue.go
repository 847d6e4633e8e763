package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listing-portal/internal/contextkeys"
	"listing-portal/internal/contracts"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// PricePredictedDTO - тело сообщения о выданной оценке
type PricePredictedDTO struct {
	EventID    string               `json:"event_id"`
	Features   domain.HouseFeatures `json:"features"`
	Price      float64              `json:"predicted_price"`
	Estimator  string               `json:"estimator"`
	OccurredAt time.Time            `json:"occurred_at"`
}

func toPricePredictedDTO(event domain.PricePredictedEvent) PricePredictedDTO {
	return PricePredictedDTO{
		EventID:    event.EventID.String(),
		Features:   event.Features,
		Price:      event.Price,
		Estimator:  event.Estimator,
		OccurredAt: event.OccurredAt.UTC(),
	}
}

// MessagePublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

type PredictionEventsAdapter struct {
	producer   MessagePublisher
	routingKey string
}

func NewPredictionEventsAdapter(producer MessagePublisher, routingKey string) (*PredictionEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &PredictionEventsAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

func (a *PredictionEventsAdapter) PublishPricePredicted(ctx context.Context, event domain.PricePredictedEvent) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PredictionEventsAdapter",
		"routing_key": a.routingKey,
		"event_id":    event.EventID.String(),
	})

	body, err := json.Marshal(toPricePredictedDTO(event))
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal event %s: %w", event.EventID, err)
	}
	if err := contracts.Validate(contracts.PricePredictedEvent, body); err != nil {
		adapterLogger.Error("Event does not match its schema", err, nil)
		return fmt.Errorf("rabbitmq adapter: event %s rejected: %w", event.EventID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID.String(),
		Timestamp:    event.OccurredAt,
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	adapterLogger.Debug("Publishing price predicted event", nil)
	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish price predicted event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish event %s: %w", event.EventID, err)
	}

	adapterLogger.Info("Price predicted event published", port.Fields{"price": event.Price})
	return nil
}
