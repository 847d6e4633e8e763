package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	FlashAutoDismissAfter = 5 * time.Second
	FlashFadeOut          = 300 * time.Millisecond
)

type FlashCategory string

const (
	FlashSuccess FlashCategory = "success"
	FlashDanger  FlashCategory = "danger"
	FlashWarning FlashCategory = "warning"
	FlashInfo    FlashCategory = "info"
)

// FlashState - видимое состояние уведомления в момент времени.
type FlashState string

const (
	FlashVisible FlashState = "visible"
	FlashFading  FlashState = "fading"
	FlashRemoved FlashState = "removed"
)

// FlashMessage - временное уведомление на странице.
type FlashMessage struct {
	ID          uuid.UUID
	Category    FlashCategory
	Text        string
	CreatedAt   time.Time
	DismissedAt *time.Time
}

func NewFlashMessage(category FlashCategory, text string, now time.Time) FlashMessage {
	return FlashMessage{
		ID:        uuid.New(),
		Category:  category,
		Text:      text,
		CreatedAt: now,
	}
}

// fadeStartedAt - момент начала затухания: ручное закрытие или истечение 5 секунд.
func (m FlashMessage) fadeStartedAt() time.Time {
	auto := m.CreatedAt.Add(FlashAutoDismissAfter)
	if m.DismissedAt != nil && m.DismissedAt.Before(auto) {
		return *m.DismissedAt
	}
	return auto
}

// StateAt возвращает состояние уведомления в момент now.
func (m FlashMessage) StateAt(now time.Time) FlashState {
	fade := m.fadeStartedAt()
	switch {
	case now.Before(fade):
		return FlashVisible
	case now.Before(fade.Add(FlashFadeOut)):
		return FlashFading
	default:
		return FlashRemoved
	}
}

// Opacity - 1 пока уведомление видно, 0 с начала затухания.
func (m FlashMessage) Opacity(now time.Time) float64 {
	if m.StateAt(now) == FlashVisible {
		return 1
	}
	return 0
}

// Dismiss закрывает уведомление вручную. Повторное закрытие ничего не меняет.
func (m *FlashMessage) Dismiss(now time.Time) {
	if m.DismissedAt != nil {
		return
	}
	m.DismissedAt = &now
}
