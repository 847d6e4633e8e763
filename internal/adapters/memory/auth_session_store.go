package memory

import "sync"

// AuthSessionStore связывает id сессии браузера с вошедшим пользователем.
type AuthSessionStore struct {
	mu    sync.RWMutex
	users map[string]int64
}

func NewAuthSessionStore() *AuthSessionStore {
	return &AuthSessionStore{users: make(map[string]int64)}
}

func (s *AuthSessionStore) Bind(sessionID string, userID int64) {
	if sessionID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[sessionID] = userID
}

func (s *AuthSessionStore) UserID(sessionID string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.users[sessionID]
	return id, ok
}

func (s *AuthSessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, sessionID)
}
