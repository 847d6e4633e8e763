package usecase

import (
	"context"
	"fmt"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
)

// SessionUserUseCase находит вошедшего пользователя по сессии браузера.
type SessionUserUseCase struct {
	userRepo port.UserRepositoryPort
	sessions port.AuthSessionStorePort
}

func NewSessionUserUseCase(userRepo port.UserRepositoryPort, sessions port.AuthSessionStorePort) *SessionUserUseCase {
	return &SessionUserUseCase{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Current возвращает (nil, nil) для анонимной сессии. Сессия, указывающая
// на удаленного пользователя, очищается.
func (uc *SessionUserUseCase) Current(ctx context.Context, sessionID string) (*domain.User, error) {
	userID, ok := uc.sessions.UserID(sessionID)
	if !ok {
		return nil, nil
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if user == nil {
		contextkeys.LoggerFromContext(ctx).Warn("Session points to a missing user, clearing it", port.Fields{"user_id": userID})
		uc.sessions.Clear(sessionID)
		return nil, nil
	}
	return user, nil
}

func (uc *SessionUserUseCase) Logout(ctx context.Context, sessionID string) {
	uc.sessions.Clear(sessionID)
	contextkeys.LoggerFromContext(ctx).Info("User logged out", nil)
}
