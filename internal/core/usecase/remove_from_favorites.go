package usecase

import (
	"context"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
)

type RemoveFromFavoritesUseCase struct {
	favoritesRepo port.FavoritesRepositoryPort
	listings      port.ListingRepositoryPort
}

func NewRemoveFromFavoritesUseCase(favoritesRepo port.FavoritesRepositoryPort, listings port.ListingRepositoryPort) *RemoveFromFavoritesUseCase {
	return &RemoveFromFavoritesUseCase{
		favoritesRepo: favoritesRepo,
		listings:      listings,
	}
}

func (uc *RemoveFromFavoritesUseCase) Execute(ctx context.Context, userID, houseID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "RemoveFromFavorites",
		"user_id":  userID,
		"house_id": houseID,
	})
	ucLogger.Info("Use case started", nil)

	if _, err := uc.listings.GetByID(ctx, houseID); err != nil {
		ucLogger.Warn("Listing lookup failed", port.Fields{"error": err.Error()})
		return err
	}

	removed, err := uc.favoritesRepo.Remove(ctx, userID, houseID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}
	if !removed {
		ucLogger.Warn("Listing was not in favorites", nil)
		return domain.ErrNotFavorite
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
