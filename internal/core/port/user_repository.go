package port

import (
	"context"
	"listing-portal/internal/core/domain"
)

// UserRepositoryPort - хранилище пользователей. Find* возвращают (nil, nil), если пользователя нет.
type UserRepositoryPort interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
