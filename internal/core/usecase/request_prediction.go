package usecase

import (
	"context"
	"errors"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
	"sync"
	"sync/atomic"
)

// RequestPredictionUseCase связывает нажатие кнопки предсказания с удаленным
// эндпоинтом и отражает результат на странице.
type RequestPredictionUseCase struct {
	predictor port.PricePredictorPort

	// latest - номер последнего нажатия. Ответы более старых нажатий отбрасываются.
	latest  atomic.Uint64
	applyMu sync.Mutex
}

func NewRequestPredictionUseCase(predictor port.PricePredictorPort) *RequestPredictionUseCase {
	return &RequestPredictionUseCase{predictor: predictor}
}

// Execute возвращает итог всегда; ошибка не nil, если поток завершился уведомлением об ошибке.
func (uc *RequestPredictionUseCase) Execute(ctx context.Context, page port.PageElements) (*domain.PredictionOutcome, error) {
	seq := uc.latest.Add(1)

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "RequestPrediction",
		"request_seq": seq,
	})

	// 1. Читаем поля формы. Отсутствующий элемент дает пустое значение.
	req := uc.gatherInputs(page, ucLogger)
	outcome := &domain.PredictionOutcome{Sequence: seq, Request: req}

	// 2. Проверяем заполненность до любого сетевого вызова.
	if missing := req.MissingFields(); len(missing) > 0 {
		outcome.Err = &domain.PredictionError{Kind: domain.ErrorKindValidation, Missing: missing}
		ucLogger.Warn("Prediction fields are incomplete", port.Fields{"missing": fieldNames(missing)})

		uc.applyMu.Lock()
		defer uc.applyMu.Unlock()
		outcome.Notice = outcome.Err.Notice()
		page.Notify(outcome.Notice)
		return outcome, outcome.Err
	}

	ucLogger.Info("Sending prediction request", nil)

	// 3. Один запрос без повторов.
	result, err := uc.predictor.Predict(ctx, req)

	uc.applyMu.Lock()
	defer uc.applyMu.Unlock()

	if latest := uc.latest.Load(); latest != seq {
		outcome.Stale = true
		ucLogger.Warn("Discarding stale prediction response", port.Fields{"latest_seq": latest})
		return outcome, nil
	}

	if err != nil {
		var predErr *domain.PredictionError
		if !errors.As(err, &predErr) {
			predErr = &domain.PredictionError{Kind: domain.ErrorKindTransport, Err: err}
		}
		outcome.Err = predErr
		outcome.Notice = predErr.Notice()
		logPredictionError(ucLogger, predErr)
		page.Notify(outcome.Notice)
		return outcome, predErr
	}

	outcome.Result = &result
	if !result.Succeeded() {
		predErr := &domain.PredictionError{Kind: domain.ErrorKindSemantic, Body: result.Message}
		outcome.Err = predErr
		outcome.Notice = predErr.Notice()
		logPredictionError(ucLogger, predErr)
		page.Notify(outcome.Notice)
		return outcome, predErr
	}

	// 4. Показываем блок с ценой и переносим цену в поле объявления.
	if box, ok := page.ResultBox(); ok {
		box.Show()
		box.SetText(result.DisplayText())
	} else {
		ucLogger.Warn("Result box element is absent, predicted price not displayed", nil)
	}

	if priceInput, ok := page.Input(domain.FieldPrice); ok {
		priceInput.SetValue(result.Price)
	} else {
		ucLogger.Warn("Price input is absent, predicted price not copied", nil)
	}

	ucLogger.Info("Prediction applied to page", port.Fields{"predicted_price": result.Price})
	return outcome, nil
}

func (uc *RequestPredictionUseCase) gatherInputs(page port.PageElements, logger port.LoggerPort) domain.PredictionRequest {
	values := make(map[domain.FieldID]string, len(domain.PredictionFields))
	for _, id := range domain.PredictionFields {
		input, ok := page.Input(id)
		if !ok {
			logger.Warn("Prediction input element is absent", port.Fields{"field": string(id)})
			values[id] = ""
			continue
		}
		values[id] = input.Value()
	}
	return domain.NewPredictionRequest(values)
}

func logPredictionError(logger port.LoggerPort, perr *domain.PredictionError) {
	fields := port.Fields{"error_kind": string(perr.Kind)}
	if perr.StatusCode != 0 {
		fields["status_code"] = perr.StatusCode
		fields["status_text"] = perr.Status
	}
	if perr.Body != "" {
		fields["body"] = perr.Body
	}
	logger.Error("Prediction request failed", perr, fields)
}

func fieldNames(ids []domain.FieldID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return names
}
