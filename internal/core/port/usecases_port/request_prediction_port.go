package usecases_port

import (
	"context"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
)

// RequestPredictionUseCasePort - нажатие кнопки "predict" на странице.
type RequestPredictionUseCasePort interface {
	Execute(ctx context.Context, page port.PageElements) (*domain.PredictionOutcome, error)
}
