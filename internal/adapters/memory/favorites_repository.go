package memory

import (
	"context"
	"sort"
	"sync"

	"listing-portal/internal/core/domain"
)

type favoriteKey struct {
	userID  int64
	houseID int64
}

// FavoritesRepository - отметки избранного в памяти.
type FavoritesRepository struct {
	mu      sync.RWMutex
	seq     int64
	entries map[favoriteKey]int64 // порядок добавления
}

func NewFavoritesRepository() *FavoritesRepository {
	return &FavoritesRepository{
		entries: make(map[favoriteKey]int64),
	}
}

func (r *FavoritesRepository) Add(_ context.Context, userID, houseID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{userID: userID, houseID: houseID}
	if _, ok := r.entries[key]; ok {
		return domain.ErrAlreadyFavorite
	}
	r.seq++
	r.entries[key] = r.seq
	return nil
}

func (r *FavoritesRepository) Remove(_ context.Context, userID, houseID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{userID: userID, houseID: houseID}
	if _, ok := r.entries[key]; !ok {
		return false, nil
	}
	delete(r.entries, key)
	return true, nil
}

// FindFavoriteIDsByUser возвращает id объявлений, последние добавленные первыми.
func (r *FavoritesRepository) FindFavoriteIDsByUser(_ context.Context, userID int64) ([]int64, error) {
	r.mu.RLock()
	type entry struct{ houseID, seq int64 }
	found := make([]entry, 0)
	for key, seq := range r.entries {
		if key.userID == userID {
			found = append(found, entry{houseID: key.houseID, seq: seq})
		}
	}
	r.mu.RUnlock()

	sort.Slice(found, func(i, j int) bool { return found[i].seq > found[j].seq })

	ids := make([]int64, 0, len(found))
	for _, e := range found {
		ids = append(ids, e.houseID)
	}
	return ids, nil
}

func (r *FavoritesRepository) RemoveAllForHouse(_ context.Context, houseID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.entries {
		if key.houseID == houseID {
			delete(r.entries, key)
		}
	}
	return nil
}
