package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"listing-portal/internal/core/domain"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	id, err := repo.Create(ctx, &domain.User{Username: "Anna", Email: "anna@example.com"})
	if err != nil || id == 0 {
		t.Fatalf("Create = %d, %v", id, err)
	}
	if _, err := repo.Create(ctx, &domain.User{Username: "anna", Email: "x@example.com"}); !errors.Is(err, domain.ErrUsernameInUse) {
		t.Errorf("duplicate username err = %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Username: "bob", Email: "ANNA@example.com"}); !errors.Is(err, domain.ErrEmailInUse) {
		t.Errorf("duplicate email err = %v", err)
	}

	if u, _ := repo.FindByUsername(ctx, "ANNA"); u == nil || u.ID != id {
		t.Errorf("FindByUsername = %+v", u)
	}
	if u, _ := repo.FindByEmail(ctx, "Anna@Example.com"); u == nil || u.ID != id {
		t.Errorf("FindByEmail = %+v", u)
	}
	if u, err := repo.FindByID(ctx, 404); u != nil || err != nil {
		t.Errorf("FindByID(missing) = %+v, %v", u, err)
	}
}

func TestFavoritesRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewFavoritesRepository()

	for _, houseID := range []int64{3, 1, 2} {
		if err := repo.Add(ctx, 1, houseID); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	_ = repo.Add(ctx, 2, 1)
	if err := repo.Add(ctx, 1, 3); !errors.Is(err, domain.ErrAlreadyFavorite) {
		t.Errorf("duplicate Add err = %v", err)
	}

	ids, _ := repo.FindFavoriteIDsByUser(ctx, 1)
	if !reflect.DeepEqual(ids, []int64{2, 1, 3}) {
		t.Errorf("ids = %v, want newest first", ids)
	}

	if removed, _ := repo.Remove(ctx, 1, 2); !removed {
		t.Error("Remove should report removal")
	}
	if removed, _ := repo.Remove(ctx, 1, 2); removed {
		t.Error("second Remove should report nothing removed")
	}

	_ = repo.RemoveAllForHouse(ctx, 1)
	if ids, _ := repo.FindFavoriteIDsByUser(ctx, 2); len(ids) != 0 {
		t.Errorf("user 2 ids = %v", ids)
	}
	if ids, _ := repo.FindFavoriteIDsByUser(ctx, 1); !reflect.DeepEqual(ids, []int64{3}) {
		t.Errorf("user 1 ids = %v", ids)
	}
}

func TestAuthSessionStore(t *testing.T) {
	s := NewAuthSessionStore()

	s.Bind("", 1)
	if _, ok := s.UserID(""); ok {
		t.Error("empty session must not be bound")
	}

	s.Bind("a", 7)
	if id, ok := s.UserID("a"); !ok || id != 7 {
		t.Errorf("UserID = %d, %v", id, ok)
	}
	s.Clear("a")
	if _, ok := s.UserID("a"); ok {
		t.Error("session still bound after Clear")
	}
}
