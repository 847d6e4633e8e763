package usecases_port

import (
	"context"
	"listing-portal/internal/core/domain"
)

type RegisterUserUseCasePort interface {
	Execute(ctx context.Context, input domain.RegistrationInput) (*domain.User, error)
}

type LoginUserUseCasePort interface {
	Execute(ctx context.Context, sessionID, username, password string) (*domain.User, error)
}

type SessionUserUseCasePort interface {
	Current(ctx context.Context, sessionID string) (*domain.User, error)
	Logout(ctx context.Context, sessionID string)
}

type GetProfileUseCasePort interface {
	Execute(ctx context.Context, user domain.User) (*domain.Profile, error)
}
