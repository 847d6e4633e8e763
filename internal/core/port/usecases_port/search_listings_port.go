package usecases_port

import (
	"context"
	"listing-portal/internal/core/domain"
)

type SearchListingsUseCasePort interface {
	Execute(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error)
}
