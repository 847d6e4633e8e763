package estimator

import (
	"context"
	"listing-portal/internal/core/domain"
)

// HeuristicEstimator - линейная оценка, используемая без модели.
type HeuristicEstimator struct{}

func NewHeuristicEstimator() *HeuristicEstimator {
	return &HeuristicEstimator{}
}

func (e *HeuristicEstimator) Estimate(_ context.Context, features domain.HouseFeatures) (float64, error) {
	return domain.HeuristicPrice(features), nil
}

func (e *HeuristicEstimator) Name() string {
	return "heuristic"
}
