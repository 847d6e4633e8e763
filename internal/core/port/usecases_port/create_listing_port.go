package usecases_port

import (
	"context"
	"listing-portal/internal/core/domain"
)

type CreateListingUseCasePort interface {
	Execute(ctx context.Context, input domain.CreateListingInput) (*domain.CreateListingResult, error)
}
