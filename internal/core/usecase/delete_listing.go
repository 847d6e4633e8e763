package usecase

import (
	"context"
	"fmt"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
)

type DeleteListingUseCase struct {
	listings      port.ListingRepositoryPort
	favoritesRepo port.FavoritesRepositoryPort
	images        port.ImageStoragePort
}

func NewDeleteListingUseCase(listings port.ListingRepositoryPort, favoritesRepo port.FavoritesRepositoryPort, images port.ImageStoragePort) *DeleteListingUseCase {
	return &DeleteListingUseCase{
		listings:      listings,
		favoritesRepo: favoritesRepo,
		images:        images,
	}
}

// Execute удаляет объявление вместе с отметками избранного и файлами фотографий.
// Удалять может владелец или администратор, иначе domain.ErrForbidden.
func (uc *DeleteListingUseCase) Execute(ctx context.Context, user domain.User, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteListing",
		"user_id":    user.ID,
		"listing_id": id,
	})
	ucLogger.Info("Use case started", nil)

	house, err := uc.listings.GetByID(ctx, id)
	if err != nil {
		ucLogger.Warn("Failed to get listing", port.Fields{"error": err.Error()})
		return err
	}

	if !user.CanDelete(*house) {
		ucLogger.Warn("User is not allowed to delete this listing", nil)
		return domain.ErrForbidden
	}

	// Шаг 1: отметки избранного, затем само объявление
	if err := uc.favoritesRepo.RemoveAllForHouse(ctx, id); err != nil {
		ucLogger.Error("Failed to remove favorites of listing", err, nil)
		return fmt.Errorf("failed to remove favorites: %w", err)
	}
	if err := uc.listings.Delete(ctx, id); err != nil {
		ucLogger.Error("Failed to delete listing", err, nil)
		return err
	}

	// Шаг 2: файлы. Объявление уже удалено, поэтому ошибки только логируются.
	files := append([]string(nil), house.Images...)
	if house.Image != "" {
		files = append(files, house.Image)
	}
	for _, name := range files {
		if err := uc.images.DeleteImage(ctx, name); err != nil {
			ucLogger.Warn("Failed to delete image file", port.Fields{"file": name, "error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"files_deleted": len(files)})
	return nil
}
