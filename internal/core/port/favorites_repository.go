package port

import "context"

// FavoritesRepositoryPort - избранные объявления пользователей.
type FavoritesRepositoryPort interface {
	// Add возвращает domain.ErrAlreadyFavorite, если запись уже есть.
	Add(ctx context.Context, userID, houseID int64) error
	// Remove сообщает, была ли запись.
	Remove(ctx context.Context, userID, houseID int64) (bool, error)
	FindFavoriteIDsByUser(ctx context.Context, userID int64) ([]int64, error)
	RemoveAllForHouse(ctx context.Context, houseID int64) error
}
