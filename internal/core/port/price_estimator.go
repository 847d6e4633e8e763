package port

import (
	"context"
	"listing-portal/internal/core/domain"
)

// PriceEstimatorPort - модель, которая оценивает цену по признакам дома.
type PriceEstimatorPort interface {
	Estimate(ctx context.Context, features domain.HouseFeatures) (float64, error)
	Name() string
}
