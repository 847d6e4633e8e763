package usecase

import (
	"context"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
	"strconv"
	"strings"
)

const (
	invalidMinPriceWarning = "Invalid minimum price"
	invalidMaxPriceWarning = "Invalid maximum price"
)

type SearchListingsUseCase struct {
	repo port.ListingRepositoryPort
}

func NewSearchListingsUseCase(repo port.ListingRepositoryPort) *SearchListingsUseCase {
	return &SearchListingsUseCase{repo: repo}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error) {
	filters = filters.Normalize()

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":      "SearchListings",
		"city":          filters.City,
		"property_type": filters.PropertyType,
		"min_price":     filters.MinPrice,
		"max_price":     filters.MaxPrice,
	})
	ucLogger.Info("Use case started", nil)

	// Фильтр по городу выполняет хранилище, остальные - здесь
	houses, err := uc.repo.FindByLocation(ctx, filters.City)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}
	ucLogger.Debug("Listings after city filter", port.Fields{"count": len(houses)})

	result := &domain.SearchResult{Query: filters.Description()}

	if filters.PropertyType != "" {
		houses = filterHouses(houses, func(h domain.House) bool {
			return strings.EqualFold(h.PropertyType, filters.PropertyType)
		})
	}

	if filters.MinPrice != "" {
		if minPrice, err := parseFilterPrice(filters.MinPrice); err != nil {
			result.Warnings = append(result.Warnings, invalidMinPriceWarning)
		} else {
			houses = filterHouses(houses, func(h domain.House) bool { return h.PriceAsFloat() >= minPrice })
		}
	}

	if filters.MaxPrice != "" {
		if maxPrice, err := parseFilterPrice(filters.MaxPrice); err != nil {
			result.Warnings = append(result.Warnings, invalidMaxPriceWarning)
		} else {
			houses = filterHouses(houses, func(h domain.House) bool { return h.PriceAsFloat() <= maxPrice })
		}
	}

	result.Houses = houses
	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found": len(houses),
		"warnings":    len(result.Warnings),
	})
	return result, nil
}

func parseFilterPrice(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
}

func filterHouses(houses []domain.House, keep func(domain.House) bool) []domain.House {
	out := make([]domain.House, 0, len(houses))
	for _, h := range houses {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}
