package usecase

import (
	"context"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
)

type GetListingUseCase struct {
	repo port.ListingRepositoryPort
}

func NewGetListingUseCase(repo port.ListingRepositoryPort) *GetListingUseCase {
	return &GetListingUseCase{repo: repo}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, id int64) (*domain.ListingDetails, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetListing",
		"listing_id": id,
	})

	house, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		ucLogger.Warn("Failed to get listing", port.Fields{"error": err.Error()})
		return nil, err
	}

	details := &domain.ListingDetails{House: *house, Similar: []domain.House{}}

	// Блок "похожие" необязателен: ошибка хранилища не ломает страницу
	others, err := uc.repo.FindByLocation(ctx, "")
	if err != nil {
		ucLogger.Warn("Failed to load similar listings", port.Fields{"error": err.Error()})
		return details, nil
	}
	for _, h := range others {
		if len(details.Similar) == domain.SimilarListingsLimit {
			break
		}
		if h.ID != id {
			details.Similar = append(details.Similar, h)
		}
	}
	return details, nil
}
