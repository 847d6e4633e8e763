package usecase

import (
	"context"
	"fmt"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
	"listing-portal/internal/pricefmt"
	"strconv"
	"time"
)

type CreateListingUseCase struct {
	repo      port.ListingRepositoryPort
	images    port.ImageStoragePort
	estimator *EstimatePriceUseCase
}

func NewCreateListingUseCase(repo port.ListingRepositoryPort, images port.ImageStoragePort, estimator *EstimatePriceUseCase) *CreateListingUseCase {
	return &CreateListingUseCase{
		repo:      repo,
		images:    images,
		estimator: estimator,
	}
}

func (uc *CreateListingUseCase) Execute(ctx context.Context, input domain.CreateListingInput) (*domain.CreateListingResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateListing",
		"title":    input.House.Title,
	})
	ucLogger.Info("Use case started", nil)

	house := input.House
	result := &domain.CreateListingResult{}

	// Шаг 1: сохраняем обложку и фото интерьера. Неподходящие файлы пропускаем.
	if input.Cover != nil {
		name, err := uc.images.SaveImage(ctx, *input.Cover)
		if err != nil {
			ucLogger.Warn("Cover image skipped", port.Fields{"file": input.Cover.Filename, "error": err.Error()})
			result.SkippedFiles = append(result.SkippedFiles, input.Cover.Filename)
		} else {
			house.Image = name
		}
	}

	for _, upload := range input.InteriorImages {
		name, err := uc.images.SaveImage(ctx, upload)
		if err != nil {
			ucLogger.Warn("Interior image skipped", port.Fields{"file": upload.Filename, "error": err.Error()})
			result.SkippedFiles = append(result.SkippedFiles, upload.Filename)
			continue
		}
		house.Images = append(house.Images, name)
	}

	// Шаг 2: оценка цены, если заполнены признаки
	flashText := "Property added successfully!"
	if input.Features != nil && uc.estimator != nil {
		price, err := uc.estimator.EstimateFeatures(ctx, *input.Features)
		if err != nil {
			ucLogger.Warn("Price estimate for new listing failed", port.Fields{"error": err.Error()})
		} else {
			result.PredictedPrice = &price
			flashText = fmt.Sprintf("Property added successfully! Predicted price was $%s", pricefmt.Money(price))
		}
	}

	// Цена владельца важнее оценки, если она вообще похожа на число
	if _, err := domain.ParsePrice(house.Price); err != nil && result.PredictedPrice != nil {
		ucLogger.Debug("Using predicted price for listing", port.Fields{"entered_price": house.Price})
		house.Price = strconv.FormatFloat(*result.PredictedPrice, 'f', -1, 64)
	}

	// Шаг 3: сохраняем объявление
	house.CreatedAt = time.Now().UTC()
	id, err := uc.repo.Create(ctx, house)
	if err != nil {
		ucLogger.Error("Failed to save listing", err, nil)
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}
	house.ID = id

	result.House = house
	result.Flash = domain.NewFlashMessage(domain.FlashSuccess, flashText, time.Now())

	ucLogger.Info("Use case finished successfully", port.Fields{
		"listing_id":    id,
		"images_saved":  len(house.Images),
		"files_skipped": len(result.SkippedFiles),
	})
	return result, nil
}
