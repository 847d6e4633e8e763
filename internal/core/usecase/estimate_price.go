package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstimatePriceUseCase обслуживает эндпоинт /predict_price.
type EstimatePriceUseCase struct {
	estimator port.PriceEstimatorPort // может быть nil, тогда сразу используется fallback
	fallback  port.PriceEstimatorPort
	events    port.PredictionEventsPort // может быть nil
}

func NewEstimatePriceUseCase(estimator, fallback port.PriceEstimatorPort, events port.PredictionEventsPort) (*EstimatePriceUseCase, error) {
	if fallback == nil {
		return nil, fmt.Errorf("fallback estimator cannot be nil")
	}
	return &EstimatePriceUseCase{
		estimator: estimator,
		fallback:  fallback,
		events:    events,
	}, nil
}

// Execute разбирает сырые значения формы в признаки и оценивает цену.
func (uc *EstimatePriceUseCase) Execute(ctx context.Context, raw map[string]json.RawMessage) (float64, error) {
	features, err := FeaturesFromRaw(raw)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to parse house features", port.Fields{"error": err.Error()})
		return 0, err
	}
	return uc.EstimateFeatures(ctx, features)
}

// EstimateFeatures оценивает цену и округляет ее до центов.
func (uc *EstimatePriceUseCase) EstimateFeatures(ctx context.Context, features domain.HouseFeatures) (float64, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":     "EstimatePrice",
		"overall_qual": features.OverallQual,
		"gr_liv_area":  features.GrLivArea,
	})

	used := uc.fallback
	var price float64
	var err error

	if uc.estimator != nil {
		price, err = uc.estimator.Estimate(ctx, features)
		if err == nil && !isFinite(price) {
			err = fmt.Errorf("estimator returned non-finite price %v", price)
		}
		if err == nil {
			used = uc.estimator
		} else {
			ucLogger.Warn("Primary estimator failed, using fallback", port.Fields{
				"estimator": uc.estimator.Name(),
				"error":     err.Error(),
			})
		}
	}

	if used == uc.fallback {
		price, err = uc.fallback.Estimate(ctx, features)
		if err == nil && !isFinite(price) {
			err = fmt.Errorf("estimator returned non-finite price %v", price)
		}
		if err != nil {
			ucLogger.Error("Fallback estimator failed", err, nil)
			return 0, fmt.Errorf("%w: %v", domain.ErrEstimateFailed, err)
		}
	}

	rounded := RoundToCents(price)
	ucLogger.Info("Price estimated", port.Fields{"estimator": used.Name(), "price": rounded})

	if uc.events != nil {
		event := domain.PricePredictedEvent{
			EventID:    uuid.New(),
			Features:   features,
			Price:      rounded,
			Estimator:  used.Name(),
			OccurredAt: time.Now().UTC(),
		}
		// Публикация не должна ломать ответ пользователю
		if err := uc.events.PublishPricePredicted(ctx, event); err != nil {
			ucLogger.Warn("Failed to publish price predicted event", port.Fields{"error": err.Error()})
		}
	}

	return rounded, nil
}

// RoundToCents округляет цену до двух знаков после запятой. NaN и бесконечности возвращаются как есть.
func RoundToCents(price float64) float64 {
	if !isFinite(price) {
		return price
	}
	v, _ := decimal.NewFromFloat(price).Round(2).Float64()
	return v
}

// FeaturesFromRaw повторяет правила приведения формы: целые признаки - это int(float(x)),
// отсутствующие или null значения равны нулю.
func FeaturesFromRaw(raw map[string]json.RawMessage) (domain.HouseFeatures, error) {
	overallQual, err := rawFloat(raw, "overall_qual")
	if err != nil {
		return domain.HouseFeatures{}, err
	}
	grLivArea, err := rawFloat(raw, "gr_liv_area")
	if err != nil {
		return domain.HouseFeatures{}, err
	}
	totalBath, err := rawFloat(raw, "total_bath")
	if err != nil {
		return domain.HouseFeatures{}, err
	}
	totalSF, err := rawFloat(raw, "total_sf")
	if err != nil {
		return domain.HouseFeatures{}, err
	}
	houseAge, err := rawFloat(raw, "house_age")
	if err != nil {
		return domain.HouseFeatures{}, err
	}
	remodelAge, err := rawFloat(raw, "remodel_age")
	if err != nil {
		return domain.HouseFeatures{}, err
	}

	return domain.NewHouseFeatures(
		int(overallQual),
		grLivArea,
		totalBath,
		totalSF,
		int(houseAge),
		int(remodelAge),
	), nil
}

func rawFloat(raw map[string]json.RawMessage, key string) (float64, error) {
	msg, ok := raw[key]
	if !ok || len(msg) == 0 || string(msg) == "null" {
		return 0, nil
	}

	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || !isFinite(v) {
			return 0, fmt.Errorf("could not convert %s value %q to float", key, s)
		}
		return v, nil
	}

	var v float64
	if err := json.Unmarshal(msg, &v); err != nil {
		return 0, fmt.Errorf("%s must be a number or a numeric string", key)
	}
	return v, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
