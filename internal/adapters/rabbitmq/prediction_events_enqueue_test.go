package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type capturingPublisher struct {
	routingKey string
	msg        amqp.Publishing
	deadline   bool
	err        error
}

func (p *capturingPublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.routingKey = routingKey
	p.msg = msg
	_, p.deadline = ctx.Deadline()
	return p.err
}

func sampleEvent() domain.PricePredictedEvent {
	return domain.PricePredictedEvent{
		EventID:    uuid.New(),
		Features:   domain.NewHouseFeatures(7, 1800, 2.5, 2600, 12, 5),
		Price:      435000,
		Estimator:  "heuristic",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestPublishPricePredicted(t *testing.T) {
	pub := &capturingPublisher{}
	adapter, err := NewPredictionEventsAdapter(pub, "price.predicted")
	if err != nil {
		t.Fatalf("NewPredictionEventsAdapter: %v", err)
	}

	event := sampleEvent()
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-123")

	if err := adapter.PublishPricePredicted(ctx, event); err != nil {
		t.Fatalf("PublishPricePredicted: %v", err)
	}

	if pub.routingKey != "price.predicted" {
		t.Errorf("routing key = %q", pub.routingKey)
	}
	if !pub.deadline {
		t.Error("publish context has no deadline")
	}
	if pub.msg.DeliveryMode != amqp.Persistent {
		t.Errorf("delivery mode = %d, want persistent", pub.msg.DeliveryMode)
	}
	if pub.msg.Headers["x-trace-id"] != "trace-123" {
		t.Errorf("x-trace-id = %v", pub.msg.Headers["x-trace-id"])
	}
	if pub.msg.MessageId != event.EventID.String() {
		t.Errorf("message id = %q", pub.msg.MessageId)
	}

	var dto PricePredictedDTO
	if err := json.Unmarshal(pub.msg.Body, &dto); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if dto.Price != 435000 || dto.Estimator != "heuristic" || dto.Features.GrLivArea != 1800 {
		t.Errorf("unexpected body: %+v", dto)
	}
}

func TestPublishPricePredictedWrapsPublisherError(t *testing.T) {
	boom := errors.New("channel closed")
	adapter, _ := NewPredictionEventsAdapter(&capturingPublisher{err: boom}, "price.predicted")

	err := adapter.PublishPricePredicted(context.Background(), sampleEvent())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}

func TestNewPredictionEventsAdapterValidates(t *testing.T) {
	if _, err := NewPredictionEventsAdapter(nil, "key"); err == nil {
		t.Error("expected error for nil producer")
	}
	if _, err := NewPredictionEventsAdapter(&capturingPublisher{}, ""); err == nil {
		t.Error("expected error for empty routing key")
	}
}

func TestPublishPricePredictedRejectsInvalidEvent(t *testing.T) {
	pub := &capturingPublisher{}
	adapter, _ := NewPredictionEventsAdapter(pub, "price.predicted")

	event := sampleEvent()
	event.Estimator = ""
	if err := adapter.PublishPricePredicted(context.Background(), event); err == nil {
		t.Fatal("expected schema error for event without estimator")
	}
	if pub.routingKey != "" {
		t.Error("invalid event must not be published")
	}
}
