package preferences

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCookieStoreReadsRequestAndWritesResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "darkMode", Value: "true"})
	rec := httptest.NewRecorder()

	store := NewCookieStore(rec, req)
	if v, ok := store.Get("darkMode"); !ok || v != "true" {
		t.Fatalf("Get = %q, %v", v, ok)
	}

	store.Set("darkMode", "false")
	if v, _ := store.Get("darkMode"); v != "false" {
		t.Errorf("value set during the request should win, got %q", v)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "darkMode" || cookies[0].Value != "false" {
		t.Errorf("response cookies = %+v", cookies)
	}
}

func TestCookieStoreMissingKey(t *testing.T) {
	store := NewCookieStore(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if _, ok := store.Get("darkMode"); ok {
		t.Error("missing cookie reported as present")
	}
}
