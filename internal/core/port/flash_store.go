package port

import (
	"time"

	"listing-portal/internal/core/domain"

	"github.com/google/uuid"
)

// FlashStorePort хранит уведомления в разрезе сессий.
type FlashStorePort interface {
	Push(sessionID string, msg domain.FlashMessage)
	// Active возвращает еще не удаленные уведомления и вычищает удаленные.
	Active(sessionID string, now time.Time) []domain.FlashMessage
	Dismiss(sessionID string, id uuid.UUID, now time.Time) bool
}
