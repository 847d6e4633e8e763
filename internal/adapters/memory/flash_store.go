package memory

import (
	"sync"
	"time"

	"listing-portal/internal/core/domain"

	"github.com/google/uuid"
)

// FlashStore - доска уведомлений в памяти процесса, по одной на сессию.
type FlashStore struct {
	mu       sync.Mutex
	sessions map[string][]domain.FlashMessage
}

func NewFlashStore() *FlashStore {
	return &FlashStore{sessions: make(map[string][]domain.FlashMessage)}
}

// Push добавляет уведомление и заодно удаляет доски всех сессий, где не осталось
// видимых уведомлений. Время берется из CreatedAt нового уведомления.
func (s *FlashStore) Push(sessionID string, msg domain.FlashMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked(msg.CreatedAt)
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
}

func (s *FlashStore) sweepLocked(now time.Time) {
	for id, msgs := range s.sessions {
		alive := false
		for _, m := range msgs {
			if m.StateAt(now) != domain.FlashRemoved {
				alive = true
				break
			}
		}
		if !alive {
			delete(s.sessions, id)
		}
	}
}

func (s *FlashStore) Active(sessionID string, now time.Time) []domain.FlashMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.sessions[sessionID]
	kept := msgs[:0]
	for _, m := range msgs {
		if m.StateAt(now) != domain.FlashRemoved {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		delete(s.sessions, sessionID)
		return []domain.FlashMessage{}
	}
	s.sessions[sessionID] = kept

	out := make([]domain.FlashMessage, len(kept))
	copy(out, kept)
	return out
}

func (s *FlashStore) Dismiss(sessionID string, id uuid.UUID, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.sessions[sessionID]
	for i := range msgs {
		if msgs[i].ID == id {
			if msgs[i].StateAt(now) == domain.FlashRemoved {
				return false
			}
			msgs[i].Dismiss(now)
			return true
		}
	}
	return false
}
