package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"listing-portal/internal/core/domain"
)

type fakeEstimator struct {
	name  string
	price float64
	err   error
	calls int
}

func (f *fakeEstimator) Estimate(context.Context, domain.HouseFeatures) (float64, error) {
	f.calls++
	return f.price, f.err
}

func (f *fakeEstimator) Name() string { return f.name }

type fakeEvents struct {
	events []domain.PricePredictedEvent
	err    error
}

func (f *fakeEvents) PublishPricePredicted(_ context.Context, event domain.PricePredictedEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func rawFeatures(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("bad test body: %v", err)
	}
	return raw
}

func TestFeaturesFromRaw(t *testing.T) {
	raw := rawFeatures(t, `{"overall_qual":"7.9","gr_liv_area":" 1800 ","total_bath":2.5,"total_sf":"2600","house_age":null}`)

	f, err := FeaturesFromRaw(raw)
	if err != nil {
		t.Fatalf("FeaturesFromRaw: %v", err)
	}
	if f.OverallQual != 7 {
		t.Errorf("OverallQual = %d, want truncated 7", f.OverallQual)
	}
	if f.GrLivArea != 1800 || f.TotalBath != 2.5 || f.TotalSF != 2600 {
		t.Errorf("unexpected features %+v", f)
	}
	if f.HouseAge != 0 || f.RemodelAge != 0 {
		t.Errorf("null and missing values should be zero, got %+v", f)
	}
	if f.OverallQualGrLivArea != 7*1800 {
		t.Errorf("OverallQualGrLivArea = %v", f.OverallQualGrLivArea)
	}

	if _, err := FeaturesFromRaw(rawFeatures(t, `{"overall_qual":"seven"}`)); err == nil {
		t.Error("expected error for non-numeric string")
	}
	if _, err := FeaturesFromRaw(rawFeatures(t, `{"total_sf":true}`)); err == nil {
		t.Error("expected error for boolean value")
	}
}

func TestEstimatePricePrimaryAndFallback(t *testing.T) {
	ctx := context.Background()
	features := domain.NewHouseFeatures(7, 1800, 2.5, 2600, 12, 5)

	t.Run("primary estimator rounds to cents", func(t *testing.T) {
		primary := &fakeEstimator{name: "model", price: 212345.6789}
		fallback := &fakeEstimator{name: "heuristic", price: 1}
		events := &fakeEvents{}
		uc, err := NewEstimatePriceUseCase(primary, fallback, events)
		if err != nil {
			t.Fatal(err)
		}

		price, err := uc.EstimateFeatures(ctx, features)
		if err != nil {
			t.Fatalf("EstimateFeatures: %v", err)
		}
		if price != 212345.68 {
			t.Errorf("price = %v, want 212345.68", price)
		}
		if fallback.calls != 0 {
			t.Error("fallback should not run when primary succeeds")
		}
		if len(events.events) != 1 || events.events[0].Estimator != "model" || events.events[0].Price != 212345.68 {
			t.Errorf("events = %+v", events.events)
		}
	})

	t.Run("primary failure uses fallback", func(t *testing.T) {
		primary := &fakeEstimator{name: "model", err: errors.New("timeout")}
		fallback := &fakeEstimator{name: "heuristic", price: 435000}
		events := &fakeEvents{}
		uc, _ := NewEstimatePriceUseCase(primary, fallback, events)

		price, err := uc.EstimateFeatures(ctx, features)
		if err != nil || price != 435000 {
			t.Fatalf("price = %v, err = %v", price, err)
		}
		if events.events[0].Estimator != "heuristic" {
			t.Errorf("event estimator = %q", events.events[0].Estimator)
		}
	})

	t.Run("nil primary goes straight to fallback", func(t *testing.T) {
		fallback := &fakeEstimator{name: "heuristic", price: 100}
		uc, _ := NewEstimatePriceUseCase(nil, fallback, nil)

		if price, err := uc.EstimateFeatures(ctx, features); err != nil || price != 100 {
			t.Fatalf("price = %v, err = %v", price, err)
		}
	})

	t.Run("fallback failure is an estimate error", func(t *testing.T) {
		fallback := &fakeEstimator{name: "heuristic", err: errors.New("broken")}
		uc, _ := NewEstimatePriceUseCase(nil, fallback, nil)

		if _, err := uc.EstimateFeatures(ctx, features); !errors.Is(err, domain.ErrEstimateFailed) {
			t.Fatalf("err = %v, want ErrEstimateFailed", err)
		}
	})

	t.Run("publish failure does not fail the estimate", func(t *testing.T) {
		fallback := &fakeEstimator{name: "heuristic", price: 5}
		events := &fakeEvents{err: errors.New("broker down")}
		uc, _ := NewEstimatePriceUseCase(nil, fallback, events)

		if price, err := uc.EstimateFeatures(ctx, features); err != nil || price != 5 {
			t.Fatalf("price = %v, err = %v", price, err)
		}
	})
}

func TestEstimatePriceExecuteRejectsBadFeature(t *testing.T) {
	fallback := &fakeEstimator{name: "heuristic", price: 1}
	uc, _ := NewEstimatePriceUseCase(nil, fallback, nil)

	if _, err := uc.Execute(context.Background(), rawFeatures(t, `{"gr_liv_area":"big"}`)); err == nil {
		t.Fatal("expected parse error")
	}
	if fallback.calls != 0 {
		t.Error("estimator must not run on unparsable input")
	}
}

func TestFeaturesFromRawRejectsNonFinite(t *testing.T) {
	for _, v := range []string{"NaN", "inf", "-Inf", "1e400"} {
		raw := rawFeatures(t, `{"gr_liv_area":"`+v+`"}`)
		if _, err := FeaturesFromRaw(raw); err == nil {
			t.Errorf("gr_liv_area %q: expected error", v)
		}
	}
}

func TestEstimatePriceNonFiniteResult(t *testing.T) {
	ctx := context.Background()

	// 1e307 конечно, но эвристика переполняется до +Inf
	uc, _ := NewEstimatePriceUseCase(nil, &heuristicLike{}, nil)
	_, err := uc.Execute(ctx, rawFeatures(t, `{"gr_liv_area":"1e307"}`))
	if !errors.Is(err, domain.ErrEstimateFailed) {
		t.Fatalf("err = %v, want ErrEstimateFailed", err)
	}

	primary := &fakeEstimator{name: "model", price: math.NaN()}
	fallback := &fakeEstimator{name: "heuristic", price: 42}
	events := &fakeEvents{}
	uc, _ = NewEstimatePriceUseCase(primary, fallback, events)
	price, err := uc.EstimateFeatures(ctx, domain.NewHouseFeatures(5, 1000, 1, 1000, 1, 1))
	if err != nil || price != 42 {
		t.Fatalf("NaN from primary should fall back: price = %v, err = %v", price, err)
	}
	if events.events[0].Estimator != "heuristic" {
		t.Errorf("event estimator = %q", events.events[0].Estimator)
	}
}

type heuristicLike struct{}

func (heuristicLike) Estimate(_ context.Context, f domain.HouseFeatures) (float64, error) {
	return domain.HeuristicPrice(f), nil
}

func (heuristicLike) Name() string { return "heuristic" }

func TestNewEstimatePriceUseCaseRequiresFallback(t *testing.T) {
	if _, err := NewEstimatePriceUseCase(&fakeEstimator{}, nil, nil); err == nil {
		t.Fatal("expected error without fallback")
	}
}

func TestRoundToCents(t *testing.T) {
	cases := map[float64]float64{
		1.005:    1.01,
		2.004:    2,
		250000:   250000,
		-3.14159: -3.14,
		123.4567: 123.46,
	}
	for in, want := range cases {
		if got := RoundToCents(in); got != want {
			t.Errorf("RoundToCents(%v) = %v, want %v", in, got, want)
		}
	}
	if got := RoundToCents(math.Inf(1)); !math.IsInf(got, 1) {
		t.Errorf("RoundToCents(+Inf) = %v", got)
	}
}
