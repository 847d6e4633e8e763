package usecase

import (
	"context"
	"fmt"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/port"
)

type GetUserFavoritesIdsUseCase struct {
	favoritesRepo port.FavoritesRepositoryPort
}

func NewGetUserFavoritesIdsUseCase(favoritesRepo port.FavoritesRepositoryPort) *GetUserFavoritesIdsUseCase {
	return &GetUserFavoritesIdsUseCase{favoritesRepo: favoritesRepo}
}

func (uc *GetUserFavoritesIdsUseCase) Execute(ctx context.Context, userID int64) ([]int64, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetUserFavoritesIds",
		"user_id":  userID,
	})

	ids, err := uc.favoritesRepo.FindFavoriteIDsByUser(ctx, userID)
	if err != nil {
		ucLogger.Error("Failed to get favorite IDs from repository", err, nil)
		return nil, fmt.Errorf("failed to get favorite IDs: %w", err)
	}
	return ids, nil
}

// Contains - есть ли объявление в избранном пользователя.
func (uc *GetUserFavoritesIdsUseCase) Contains(ctx context.Context, userID, houseID int64) (bool, error) {
	ids, err := uc.Execute(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == houseID {
			return true, nil
		}
	}
	return false, nil
}
