package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"listing-portal/internal/adapters/memory"
	"listing-portal/internal/core/domain"
)

func registerAndLogin(t *testing.T, users *memory.UserRepository, sessions *memory.AuthSessionStore, sessionID, username string) *domain.User {
	t.Helper()
	ctx := context.Background()
	_, err := NewRegisterUserUseCase(users).Execute(ctx, domain.RegistrationInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	user, err := NewLoginUserUseCase(users, sessions).Execute(ctx, sessionID, username, "secret")
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	return user
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	uc := NewRegisterUserUseCase(users)

	user, err := uc.Execute(ctx, domain.RegistrationInput{
		Username: " anna ", Email: "anna@example.com", Password: "pw", ConfirmPassword: "pw",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if user.ID == 0 || user.Username != "anna" || user.IsAdmin {
		t.Errorf("user = %+v", user)
	}
	if user.PasswordHash == "pw" || !user.CheckPassword("pw") {
		t.Error("password must be stored as bcrypt hash")
	}

	tests := []struct {
		name  string
		input domain.RegistrationInput
		want  error
	}{
		{"mismatch", domain.RegistrationInput{Username: "b", Email: "b@x", Password: "1", ConfirmPassword: "2"}, domain.ErrPasswordMismatch},
		{"username taken", domain.RegistrationInput{Username: "ANNA", Email: "other@x", Password: "1", ConfirmPassword: "1"}, domain.ErrUsernameInUse},
		{"email taken", domain.RegistrationInput{Username: "c", Email: "Anna@Example.com", Password: "1", ConfirmPassword: "1"}, domain.ErrEmailInUse},
		{"empty", domain.RegistrationInput{Username: " ", Email: "d@x", Password: "1", ConfirmPassword: "1"}, domain.ErrIncompleteSignup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Execute(ctx, tt.input); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	uc := NewRegisterUserUseCase(users)

	first, err := uc.EnsureAdmin(ctx, "admin", "admin@example.com", "root")
	if err != nil || !first.IsAdmin {
		t.Fatalf("EnsureAdmin = %+v, %v", first, err)
	}
	second, err := uc.EnsureAdmin(ctx, "admin", "admin@example.com", "other")
	if err != nil || second.ID != first.ID {
		t.Fatalf("second EnsureAdmin = %+v, %v", second, err)
	}
	if !second.CheckPassword("root") {
		t.Error("existing admin password must not be replaced")
	}
}

func TestLoginAndSession(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	sessions := memory.NewAuthSessionStore()
	session := NewSessionUserUseCase(users, sessions)

	if u, err := session.Current(ctx, "s1"); u != nil || err != nil {
		t.Fatalf("anonymous session = %+v, %v", u, err)
	}

	registerAndLogin(t, users, sessions, "s1", "anna")

	login := NewLoginUserUseCase(users, sessions)
	if _, err := login.Execute(ctx, "s2", "anna", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := login.Execute(ctx, "s2", "nobody", "secret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v", err)
	}
	if u, _ := session.Current(ctx, "s2"); u != nil {
		t.Error("failed login must not bind the session")
	}

	u, err := session.Current(ctx, "s1")
	if err != nil || u == nil || u.Username != "anna" {
		t.Fatalf("Current = %+v, %v", u, err)
	}

	session.Logout(ctx, "s1")
	if u, _ := session.Current(ctx, "s1"); u != nil {
		t.Error("session should be anonymous after logout")
	}

	// сессия с несуществующим пользователем очищается
	sessions.Bind("s3", 404)
	if u, err := session.Current(ctx, "s3"); u != nil || err != nil {
		t.Fatalf("stale session = %+v, %v", u, err)
	}
	if _, ok := sessions.UserID("s3"); ok {
		t.Error("stale session was not cleared")
	}
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo()
	favs := memory.NewFavoritesRepository()
	add := NewAddToFavoritesUseCase(favs, repo)
	remove := NewRemoveFromFavoritesUseCase(favs, repo)
	ids := NewGetUserFavoritesIdsUseCase(favs)

	if err := add.Execute(ctx, 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := add.Execute(ctx, 1, 4); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := add.Execute(ctx, 1, 2); !errors.Is(err, domain.ErrAlreadyFavorite) {
		t.Errorf("duplicate add err = %v", err)
	}
	if err := add.Execute(ctx, 1, 99); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("missing listing err = %v", err)
	}

	got, _ := ids.Execute(ctx, 1)
	if !reflect.DeepEqual(got, []int64{4, 2}) {
		t.Errorf("ids = %v, want newest first", got)
	}
	if ok, _ := ids.Contains(ctx, 1, 2); !ok {
		t.Error("listing 2 should be a favorite")
	}
	if ok, _ := ids.Contains(ctx, 2, 2); ok {
		t.Error("favorites are per user")
	}

	if err := remove.Execute(ctx, 1, 2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := remove.Execute(ctx, 1, 2); !errors.Is(err, domain.ErrNotFavorite) {
		t.Errorf("second remove err = %v", err)
	}
	if err := remove.Execute(ctx, 1, 99); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("remove missing listing err = %v", err)
	}
}

func TestDeleteListing(t *testing.T) {
	ctx := context.Background()
	owner := domain.User{ID: 7}
	stranger := domain.User{ID: 8}
	admin := domain.User{ID: 9, IsAdmin: true}

	newFixture := func() (*memory.ListingRepository, *memory.FavoritesRepository, *fakeImages, int64) {
		repo := memory.NewListingRepository()
		ownerID := owner.ID
		id, _ := repo.Create(ctx, domain.House{Title: "Mine", OwnerID: &ownerID, Image: "cover.png", Images: []string{"a.jpg", "b.jpg"}})
		favs := memory.NewFavoritesRepository()
		_ = favs.Add(ctx, stranger.ID, id)
		return repo, favs, &fakeImages{}, id
	}

	t.Run("owner deletes listing files and favorites", func(t *testing.T) {
		repo, favs, images, id := newFixture()
		if err := NewDeleteListingUseCase(repo, favs, images).Execute(ctx, owner, id); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if _, err := repo.GetByID(ctx, id); !errors.Is(err, domain.ErrListingNotFound) {
			t.Errorf("listing still present: %v", err)
		}
		if !reflect.DeepEqual(images.deleted, []string{"a.jpg", "b.jpg", "cover.png"}) {
			t.Errorf("deleted files = %v", images.deleted)
		}
		if left, _ := favs.FindFavoriteIDsByUser(ctx, stranger.ID); len(left) != 0 {
			t.Errorf("favorites left = %v", left)
		}
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		repo, favs, images, id := newFixture()
		if err := NewDeleteListingUseCase(repo, favs, images).Execute(ctx, stranger, id); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
		if _, err := repo.GetByID(ctx, id); err != nil {
			t.Errorf("listing must survive: %v", err)
		}
		if len(images.deleted) != 0 {
			t.Errorf("files deleted = %v", images.deleted)
		}
	})

	t.Run("admin may delete anything", func(t *testing.T) {
		repo, favs, images, id := newFixture()
		if err := NewDeleteListingUseCase(repo, favs, images).Execute(ctx, admin, id); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	})

	t.Run("missing listing", func(t *testing.T) {
		repo, favs, images, _ := newFixture()
		if err := NewDeleteListingUseCase(repo, favs, images).Execute(ctx, admin, 99); !errors.Is(err, domain.ErrListingNotFound) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo()
	ownerID := int64(3)
	mine, _ := repo.Create(ctx, domain.House{Title: "Mine", OwnerID: &ownerID})
	favs := memory.NewFavoritesRepository()
	_ = favs.Add(ctx, ownerID, 1)
	_ = favs.Add(ctx, ownerID, 5)

	profile, err := NewGetProfileUseCase(repo, favs).Execute(ctx, domain.User{ID: ownerID, Username: "anna"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(profile.Houses) != 1 || profile.Houses[0].ID != mine {
		t.Errorf("houses = %v", titles(profile.Houses))
	}
	if !reflect.DeepEqual(titles(profile.Favorites), []string{"Cottage", "Old Town Flat"}) {
		t.Errorf("favorites = %v", titles(profile.Favorites))
	}

	// избранное удаленного объявления пропускается
	_ = repo.Delete(ctx, 5)
	profile, _ = NewGetProfileUseCase(repo, favs).Execute(ctx, domain.User{ID: ownerID})
	if !reflect.DeepEqual(titles(profile.Favorites), []string{"Old Town Flat"}) {
		t.Errorf("favorites after delete = %v", titles(profile.Favorites))
	}
}
