package memory

import (
	"testing"
	"time"

	"listing-portal/internal/core/domain"

	"github.com/google/uuid"
)

func TestFlashStoreLifecycle(t *testing.T) {
	store := NewFlashStore()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := domain.NewFlashMessage(domain.FlashSuccess, "Property added successfully!", start)
	second := domain.NewFlashMessage(domain.FlashWarning, "Invalid minimum price", start.Add(time.Second))
	store.Push("s1", first)
	store.Push("s1", second)
	store.Push("s2", domain.NewFlashMessage(domain.FlashInfo, "other session", start))

	if got := store.Active("s1", start.Add(2*time.Second)); len(got) != 2 {
		t.Fatalf("active = %d, want 2", len(got))
	}

	if !store.Dismiss("s1", second.ID, start.Add(2*time.Second)) {
		t.Fatal("Dismiss returned false for a visible message")
	}
	if store.Dismiss("s1", uuid.New(), start) {
		t.Error("Dismiss of unknown id returned true")
	}

	got := store.Active("s1", start.Add(2*time.Second+100*time.Millisecond))
	if len(got) != 2 || got[1].StateAt(start.Add(2*time.Second+100*time.Millisecond)) != domain.FlashFading {
		t.Fatalf("dismissed message should be fading, got %+v", got)
	}

	got = store.Active("s1", start.Add(2*time.Second+400*time.Millisecond))
	if len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("after fade-out only the first message should remain, got %+v", got)
	}

	if got := store.Active("s1", start.Add(5*time.Second+300*time.Millisecond)); len(got) != 0 {
		t.Errorf("all messages should be removed, got %d", len(got))
	}
	if got := store.Active("s2", start); len(got) != 1 {
		t.Errorf("other session affected, got %d", len(got))
	}
}

func TestFlashStorePushDropsExpiredSessions(t *testing.T) {
	store := NewFlashStore()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		store.Push(uuid.NewString(), domain.NewFlashMessage(domain.FlashWarning, "Invalid minimum price", start))
	}
	store.Push("recent", domain.NewFlashMessage(domain.FlashInfo, "still visible", start.Add(4*time.Second)))
	if len(store.sessions) != 101 {
		t.Fatalf("sessions = %d, want 101", len(store.sessions))
	}

	later := start.Add(domain.FlashAutoDismissAfter + domain.FlashFadeOut)
	store.Push("fresh", domain.NewFlashMessage(domain.FlashSuccess, "Property added successfully!", later))

	if len(store.sessions) != 2 {
		t.Fatalf("sessions after sweep = %d, want 2", len(store.sessions))
	}
	if _, ok := store.sessions["recent"]; !ok {
		t.Error("session with a visible message was dropped")
	}

	store.Push("fresh", domain.NewFlashMessage(domain.FlashSuccess, "again", later.Add(time.Minute)))
	if len(store.sessions) != 1 {
		t.Errorf("sessions = %d, want only the pushing session", len(store.sessions))
	}
}

func TestPreferenceStore(t *testing.T) {
	store := NewPreferenceStore()
	if _, ok := store.Get(domain.DarkModeKey); ok {
		t.Fatal("empty store reported a value")
	}
	store.Set(domain.DarkModeKey, "true")
	if v, ok := store.Get(domain.DarkModeKey); !ok || v != "true" {
		t.Errorf("Get = %q, %v", v, ok)
	}
}
