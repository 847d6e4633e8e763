package preferences

import (
	"net/http"
	"time"
)

const cookieMaxAge = 365 * 24 * time.Hour

// CookieStore хранит настройки в cookie браузера, по cookie на ключ.
// Создается на каждый запрос.
type CookieStore struct {
	r      *http.Request
	w      http.ResponseWriter
	values map[string]string
}

func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{r: r, w: w, values: make(map[string]string)}
}

func (s *CookieStore) Get(key string) (string, bool) {
	if v, ok := s.values[key]; ok {
		return v, true
	}
	c, err := s.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

func (s *CookieStore) Set(key, value string) {
	s.values[key] = value
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: false, // тема читается и скриптом страницы
		SameSite: http.SameSiteLaxMode,
	})
}
