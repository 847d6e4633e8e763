package port

import (
	"context"
	"listing-portal/internal/core/domain"
)

// PricePredictorPort - клиент удаленного эндпоинта предсказания цены.
// Сбои транспорта, протокола и разбора возвращаются как *domain.PredictionError,
// смысловой отказ сервера - как неуспешный PredictionResult.
type PricePredictorPort interface {
	Predict(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResult, error)
}
