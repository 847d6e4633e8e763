package usecase

import (
	"context"
	"fmt"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
)

type LoginUserUseCase struct {
	userRepo port.UserRepositoryPort
	sessions port.AuthSessionStorePort
}

func NewLoginUserUseCase(userRepo port.UserRepositoryPort, sessions port.AuthSessionStorePort) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Execute проверяет пароль и привязывает пользователя к сессии браузера.
// Неизвестное имя и неверный пароль неразличимы для вызывающего.
func (uc *LoginUserUseCase) Execute(ctx context.Context, sessionID, username, password string) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoginUser",
		"username": username,
	})
	ucLogger.Info("Use case started: attempting to login user", nil)

	user, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		ucLogger.Error("Repository failed to find user by username", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		ucLogger.Warn("Login failed: user not found", nil)
		return nil, domain.ErrInvalidCredentials
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID})

	if !user.CheckPassword(password) {
		ucLogger.Warn("Login failed: invalid credentials", nil)
		return nil, domain.ErrInvalidCredentials
	}

	uc.sessions.Bind(sessionID, user.ID)

	ucLogger.Info("Use case finished: user logged in successfully", nil)
	return user, nil
}
