package port

import (
	"context"
	"listing-portal/internal/core/domain"
)

type PredictionEventsPort interface {
	PublishPricePredicted(ctx context.Context, event domain.PricePredictedEvent) error
}
