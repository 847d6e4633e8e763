package rest

import (
	"context"
	"net/http"

	"listing-portal/internal/contextkeys"

	"github.com/google/uuid"
)

const SessionCookieName = "portal_session"

// SessionMiddleware выдает браузеру идентификатор сессии, к которому
// привязаны вход пользователя, flash-уведомления и поток предсказания.
// Должен стоять перед LoggerMiddleware, чтобы в логах был session_id.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if c, err := r.Cookie(SessionCookieName); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sessionID = c.Value
			}
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(contextkeys.ContextWithSessionID(r.Context(), sessionID)))
	})
}

// SessionFromContext возвращает идентификатор сессии или пустую строку.
func SessionFromContext(ctx context.Context) string {
	return contextkeys.SessionIDFromContext(ctx)
}
