package usecases_port

import (
	"context"
	"listing-portal/internal/core/domain"
)

type GetListingUseCasePort interface {
	Execute(ctx context.Context, id int64) (*domain.ListingDetails, error)
}
