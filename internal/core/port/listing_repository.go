package port

import (
	"context"
	"listing-portal/internal/core/domain"
)

// ListingRepositoryPort - хранилище объявлений.
type ListingRepositoryPort interface {
	// FindByLocation возвращает объявления, в адресе которых встречается city (без учета регистра).
	// Пустой city возвращает все объявления.
	FindByLocation(ctx context.Context, city string) ([]domain.House, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]domain.House, error)
	GetByID(ctx context.Context, id int64) (*domain.House, error)
	Create(ctx context.Context, house domain.House) (int64, error)
	// Delete удаляет объявление с фотографиями. domain.ErrListingNotFound, если его нет.
	Delete(ctx context.Context, id int64) error
}
