package usecases_port

import (
	"context"
	"listing-portal/internal/core/domain"
)

type DeleteListingUseCasePort interface {
	Execute(ctx context.Context, user domain.User, id int64) error
}
