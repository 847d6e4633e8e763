package usecase

import (
	"context"
	"errors"
	"fmt"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
)

type GetProfileUseCase struct {
	listings      port.ListingRepositoryPort
	favoritesRepo port.FavoritesRepositoryPort
}

func NewGetProfileUseCase(listings port.ListingRepositoryPort, favoritesRepo port.FavoritesRepositoryPort) *GetProfileUseCase {
	return &GetProfileUseCase{
		listings:      listings,
		favoritesRepo: favoritesRepo,
	}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, user domain.User) (*domain.Profile, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetProfile",
		"user_id":  user.ID,
	})

	houses, err := uc.listings.FindByOwner(ctx, user.ID)
	if err != nil {
		ucLogger.Error("Failed to load own listings", err, nil)
		return nil, fmt.Errorf("failed to load own listings: %w", err)
	}

	ids, err := uc.favoritesRepo.FindFavoriteIDsByUser(ctx, user.ID)
	if err != nil {
		ucLogger.Error("Failed to load favorite IDs", err, nil)
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	favorites := make([]domain.House, 0, len(ids))
	for _, id := range ids {
		house, err := uc.listings.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrListingNotFound) {
				continue
			}
			ucLogger.Error("Failed to load favorite listing", err, port.Fields{"house_id": id})
			return nil, fmt.Errorf("failed to load favorite listing %d: %w", id, err)
		}
		favorites = append(favorites, *house)
	}

	ucLogger.Debug("Profile loaded", port.Fields{"houses": len(houses), "favorites": len(favorites)})
	return &domain.Profile{User: user, Houses: houses, Favorites: favorites}, nil
}
