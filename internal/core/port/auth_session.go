package port

// AuthSessionStorePort связывает сессию браузера с вошедшим пользователем.
type AuthSessionStorePort interface {
	Bind(sessionID string, userID int64)
	UserID(sessionID string) (int64, bool)
	Clear(sessionID string)
}
