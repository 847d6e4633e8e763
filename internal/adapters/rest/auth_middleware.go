package rest

import (
	"context"
	"net/http"

	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
	"listing-portal/internal/core/port/usecases_port"
)

type userKeyType struct{}

var userKey = userKeyType{}

// AuthMiddleware находит вошедшего пользователя по сессии и кладет его
// в контекст. Анонимные запросы проходят дальше без пользователя.
func AuthMiddleware(sessionUC usecases_port.SessionUserUseCasePort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			user, err := sessionUC.Current(ctx, SessionFromContext(ctx))
			if err != nil {
				contextkeys.LoggerFromContext(ctx).Error("Failed to resolve session user", err, nil)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			userLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"user_id": user.ID})
			ctx = contextkeys.ContextWithLogger(ctx, userLogger)
			ctx = context.WithValue(ctx, userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext возвращает вошедшего пользователя или nil.
func UserFromContext(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(userKey).(*domain.User); ok {
		return user
	}
	return nil
}
