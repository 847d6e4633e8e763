package usecase

import (
	"context"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/port"
)

type AddToFavoritesUseCase struct {
	favoritesRepo port.FavoritesRepositoryPort
	listings      port.ListingRepositoryPort
}

func NewAddToFavoritesUseCase(favoritesRepo port.FavoritesRepositoryPort, listings port.ListingRepositoryPort) *AddToFavoritesUseCase {
	return &AddToFavoritesUseCase{
		favoritesRepo: favoritesRepo,
		listings:      listings,
	}
}

// Execute возвращает domain.ErrListingNotFound для несуществующего объявления
// и domain.ErrAlreadyFavorite для повторного добавления.
func (uc *AddToFavoritesUseCase) Execute(ctx context.Context, userID, houseID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "AddToFavorites",
		"user_id":  userID,
		"house_id": houseID,
	})
	ucLogger.Info("Use case started", nil)

	if _, err := uc.listings.GetByID(ctx, houseID); err != nil {
		ucLogger.Warn("Listing lookup failed", port.Fields{"error": err.Error()})
		return err
	}

	if err := uc.favoritesRepo.Add(ctx, userID, houseID); err != nil {
		ucLogger.Warn("Repository returned an error", port.Fields{"error": err.Error()})
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
