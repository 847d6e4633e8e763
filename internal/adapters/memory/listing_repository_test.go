package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"listing-portal/internal/core/domain"
)

func TestListingRepositoryFindByLocation(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, loc := range []string{"Dublin 4, Ireland", "Cork City", "south dublin"} {
		_, err := repo.Create(ctx, domain.House{Title: loc, Location: loc, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.FindByLocation(ctx, "DUBLIN")
	if err != nil {
		t.Fatalf("FindByLocation: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("found %d houses, want 2", len(got))
	}
	if got[0].Location != "south dublin" {
		t.Errorf("newest listing should come first, got %q", got[0].Location)
	}

	all, _ := repo.FindByLocation(ctx, "")
	if len(all) != 3 {
		t.Errorf("empty city returned %d houses, want 3", len(all))
	}
}

func TestListingRepositoryGetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository()

	id, _ := repo.Create(ctx, domain.House{Title: "Villa", Images: []string{"a.jpg", "b.jpg"}})
	house, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if house.Title != "Villa" || len(house.Images) != 2 {
		t.Errorf("unexpected house: %+v", house)
	}

	house.Images[0] = "mutated.jpg"
	again, _ := repo.GetByID(ctx, id)
	if again.Images[0] != "a.jpg" {
		t.Error("repository returned shared image slice")
	}

	if _, err := repo.GetByID(ctx, id+100); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("err = %v, want ErrListingNotFound", err)
	}
}

func TestListingRepositoryOwnerAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository()
	ownerID := int64(5)

	mine, _ := repo.Create(ctx, domain.House{Title: "mine", OwnerID: &ownerID})
	_, _ = repo.Create(ctx, domain.House{Title: "orphan"})

	owned, _ := repo.FindByOwner(ctx, ownerID)
	if len(owned) != 1 || owned[0].ID != mine {
		t.Fatalf("owned = %+v", owned)
	}
	*owned[0].OwnerID = 99
	if again, _ := repo.FindByOwner(ctx, ownerID); len(again) != 1 {
		t.Fatal("returned owner pointer must not alias stored listing")
	}

	if err := repo.Delete(ctx, mine); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, mine); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("second Delete err = %v", err)
	}
	if owned, _ := repo.FindByOwner(ctx, ownerID); len(owned) != 0 {
		t.Errorf("owned after delete = %+v", owned)
	}
}
