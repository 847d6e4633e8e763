package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"listing-portal/internal/core/domain"
)

// ListingRepository хранит объявления в памяти. Используется, когда
// DATABASE_URL не задан, и в тестах.
type ListingRepository struct {
	mu     sync.RWMutex
	nextID int64
	houses map[int64]domain.House
	now    func() time.Time
}

func NewListingRepository(seed ...domain.House) *ListingRepository {
	r := &ListingRepository{
		houses: make(map[int64]domain.House),
		now:    time.Now,
	}
	for _, h := range seed {
		_, _ = r.Create(context.Background(), h)
	}
	return r
}

func (r *ListingRepository) FindByLocation(_ context.Context, city string) ([]domain.House, error) {
	needle := strings.ToLower(city)

	r.mu.RLock()
	houses := make([]domain.House, 0, len(r.houses))
	for _, h := range r.houses {
		if needle == "" || strings.Contains(strings.ToLower(h.Location), needle) {
			houses = append(houses, cloneHouse(h))
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(houses)
	return houses, nil
}

func (r *ListingRepository) FindByOwner(_ context.Context, ownerID int64) ([]domain.House, error) {
	r.mu.RLock()
	houses := make([]domain.House, 0)
	for _, h := range r.houses {
		if h.OwnerID != nil && *h.OwnerID == ownerID {
			houses = append(houses, cloneHouse(h))
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(houses)
	return houses, nil
}

// новые объявления первыми, как в PostgresListingRepository
func sortNewestFirst(houses []domain.House) {
	sort.Slice(houses, func(i, j int) bool {
		if !houses[i].CreatedAt.Equal(houses[j].CreatedAt) {
			return houses[i].CreatedAt.After(houses[j].CreatedAt)
		}
		return houses[i].ID > houses[j].ID
	})
}

func (r *ListingRepository) GetByID(_ context.Context, id int64) (*domain.House, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.houses[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	house := cloneHouse(h)
	return &house, nil
}

func (r *ListingRepository) Create(_ context.Context, house domain.House) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	house.ID = r.nextID
	if house.CreatedAt.IsZero() {
		house.CreatedAt = r.now()
	}
	r.houses[house.ID] = cloneHouse(house)
	return house.ID, nil
}

func (r *ListingRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.houses[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.houses, id)
	return nil
}

func cloneHouse(h domain.House) domain.House {
	if h.Images != nil {
		h.Images = append([]string(nil), h.Images...)
	}
	if h.OwnerID != nil {
		owner := *h.OwnerID
		h.OwnerID = &owner
	}
	return h
}
