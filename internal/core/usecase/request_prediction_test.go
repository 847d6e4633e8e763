package usecase

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"listing-portal/internal/adapters/pagestate"
	"listing-portal/internal/core/domain"
)

type predictorFunc func(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResult, error)

func (f predictorFunc) Predict(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResult, error) {
	return f(ctx, req)
}

func filledInputs() map[domain.FieldID]string {
	return map[domain.FieldID]string{
		domain.FieldOverallQual: "7",
		domain.FieldGrLivArea:   "1800",
		domain.FieldTotalBath:   "2.5",
		domain.FieldTotalSF:     "2600",
		domain.FieldHouseAge:    "12",
		domain.FieldRemodelAge:  "5",
		domain.FieldPrice:       "",
	}
}

func TestRequestPredictionSuccess(t *testing.T) {
	var calls int
	var sent domain.PredictionRequest
	uc := NewRequestPredictionUseCase(predictorFunc(func(_ context.Context, req domain.PredictionRequest) (domain.PredictionResult, error) {
		calls++
		sent = req
		return domain.PricePredicted("287500"), nil
	}))

	inputs := filledInputs()
	inputs[domain.FieldGrLivArea] = " 1800 "
	page := pagestate.New(inputs)

	outcome, err := uc.Execute(context.Background(), page)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if calls != 1 {
		t.Fatalf("predictor called %d times, want 1", calls)
	}
	if sent.GrLivArea != " 1800 " || sent.TotalBath != "2.5" {
		t.Errorf("values must be sent verbatim, got %+v", sent)
	}
	if outcome.Notice != "" || outcome.Result == nil || outcome.Result.Price != "287500" {
		t.Errorf("outcome = %+v", outcome)
	}

	snap := page.Snapshot()
	if !snap.ResultBox.Visible || snap.ResultBox.Text != "Predicted Price: € 287500" {
		t.Errorf("result box = %+v", snap.ResultBox)
	}
	if snap.Inputs["price"] != "287500" {
		t.Errorf("price input = %q", snap.Inputs["price"])
	}
	if len(snap.Notices) != 0 {
		t.Errorf("notices = %v", snap.Notices)
	}
}

func TestRequestPredictionMissingFieldsSendsNothing(t *testing.T) {
	called := false
	uc := NewRequestPredictionUseCase(predictorFunc(func(context.Context, domain.PredictionRequest) (domain.PredictionResult, error) {
		called = true
		return domain.PricePredicted("1"), nil
	}))

	for _, id := range domain.PredictionFields {
		inputs := filledInputs()
		inputs[id] = ""
		page := pagestate.New(inputs)

		_, err := uc.Execute(context.Background(), page)
		var predErr *domain.PredictionError
		if !errors.As(err, &predErr) || predErr.Kind != domain.ErrorKindValidation {
			t.Fatalf("%s empty: err = %v, want validation error", id, err)
		}
		snap := page.Snapshot()
		if len(snap.Notices) != 1 || snap.Notices[0] != domain.MissingFieldsNotice {
			t.Errorf("%s empty: notices = %v", id, snap.Notices)
		}
		if snap.ResultBox.Visible || snap.Inputs["price"] != "" {
			t.Errorf("%s empty: page mutated: %+v", id, snap)
		}
	}

	// отсутствующий элемент равен пустому значению
	inputs := filledInputs()
	delete(inputs, domain.FieldHouseAge)
	if _, err := uc.Execute(context.Background(), pagestate.New(inputs)); err == nil {
		t.Error("absent element should fail validation")
	}

	if called {
		t.Error("predictor must not be called when a field is empty")
	}
}

func TestRequestPredictionFailureNotices(t *testing.T) {
	cases := []struct {
		name   string
		result domain.PredictionResult
		err    error
		kind   domain.ErrorKind
		notice string
	}{
		{
			name:   "transport",
			err:    errors.New("connection refused"),
			kind:   domain.ErrorKindTransport,
			notice: "Error contacting prediction API: connection refused",
		},
		{
			name:   "protocol",
			err:    &domain.PredictionError{Kind: domain.ErrorKindProtocol, StatusCode: 500, Status: "Internal Server Error", Body: "boom"},
			kind:   domain.ErrorKindProtocol,
			notice: "Prediction API returned 500 Internal Server Error: boom",
		},
		{
			name:   "parse",
			err:    &domain.PredictionError{Kind: domain.ErrorKindParse, Body: "<html>"},
			kind:   domain.ErrorKindParse,
			notice: "Failed to parse JSON from prediction API: <html>",
		},
		{
			name:   "semantic with message",
			result: domain.PredictionFailed("model offline"),
			kind:   domain.ErrorKindSemantic,
			notice: "Prediction failed: model offline",
		},
		{
			name:   "semantic without message",
			result: domain.PredictionFailed(""),
			kind:   domain.ErrorKindSemantic,
			notice: "Prediction failed: Unknown error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewRequestPredictionUseCase(predictorFunc(func(context.Context, domain.PredictionRequest) (domain.PredictionResult, error) {
				return tc.result, tc.err
			}))
			page := pagestate.New(filledInputs())

			outcome, err := uc.Execute(context.Background(), page)
			var predErr *domain.PredictionError
			if !errors.As(err, &predErr) || predErr.Kind != tc.kind {
				t.Fatalf("err = %v, want kind %s", err, tc.kind)
			}
			if outcome.Notice != tc.notice {
				t.Errorf("notice = %q, want %q", outcome.Notice, tc.notice)
			}
			snap := page.Snapshot()
			if len(snap.Notices) != 1 || snap.Notices[0] != tc.notice {
				t.Errorf("page notices = %v", snap.Notices)
			}
			if snap.ResultBox.Visible || snap.Inputs["price"] != "" {
				t.Error("failure must not touch the result box or price input")
			}
		})
	}
}

func TestRequestPredictionAbsentElements(t *testing.T) {
	uc := NewRequestPredictionUseCase(predictorFunc(func(context.Context, domain.PredictionRequest) (domain.PredictionResult, error) {
		return domain.PricePredicted("100"), nil
	}))

	noBox := pagestate.New(filledInputs(), pagestate.WithoutResultBox())
	if _, err := uc.Execute(context.Background(), noBox); err != nil {
		t.Fatalf("Execute without result box: %v", err)
	}
	if noBox.Snapshot().Inputs["price"] != "100" {
		t.Error("price input should still be filled")
	}

	inputs := filledInputs()
	delete(inputs, domain.FieldPrice)
	noPrice := pagestate.New(inputs)
	if _, err := uc.Execute(context.Background(), noPrice); err != nil {
		t.Fatalf("Execute without price input: %v", err)
	}
	if box := noPrice.Snapshot().ResultBox; !box.Visible || box.Text != "Predicted Price: € 100" {
		t.Errorf("result box = %+v", box)
	}
}

func TestRequestPredictionIsIdempotent(t *testing.T) {
	uc := NewRequestPredictionUseCase(predictorFunc(func(context.Context, domain.PredictionRequest) (domain.PredictionResult, error) {
		return domain.PricePredicted("250000.5"), nil
	}))
	page := pagestate.New(filledInputs())

	uc.Execute(context.Background(), page)
	first := page.Snapshot()
	uc.Execute(context.Background(), page)
	second := page.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("page changed between identical submissions:\n%+v\n%+v", first, second)
	}
}

func TestRequestPredictionDiscardsStaleResponse(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	call := 0

	uc := NewRequestPredictionUseCase(predictorFunc(func(context.Context, domain.PredictionRequest) (domain.PredictionResult, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		if n == 1 {
			close(entered)
			<-release
			return domain.PredictionFailed("old response"), nil
		}
		return domain.PricePredicted("2"), nil
	}))
	page := pagestate.New(filledInputs())

	firstDone := make(chan *domain.PredictionOutcome)
	go func() {
		outcome, _ := uc.Execute(context.Background(), page)
		firstDone <- outcome
	}()

	<-entered
	second, err := uc.Execute(context.Background(), page)
	if err != nil || second.Stale {
		t.Fatalf("second activation: outcome %+v, err %v", second, err)
	}

	close(release)
	first := <-firstDone
	if !first.Stale {
		t.Fatal("first response should be discarded as stale")
	}
	if first.Sequence >= second.Sequence {
		t.Errorf("sequence numbers not increasing: %d, %d", first.Sequence, second.Sequence)
	}

	snap := page.Snapshot()
	if snap.Inputs["price"] != "2" || len(snap.Notices) != 0 {
		t.Errorf("stale response touched the page: %+v", snap)
	}
}
