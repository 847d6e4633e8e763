package usecases_port

import (
	"context"
	"encoding/json"
	"listing-portal/internal/core/domain"
)

type EstimatePriceUseCasePort interface {
	// Execute принимает сырые значения признаков (строки или числа JSON).
	Execute(ctx context.Context, raw map[string]json.RawMessage) (float64, error)
	EstimateFeatures(ctx context.Context, features domain.HouseFeatures) (float64, error)
}
