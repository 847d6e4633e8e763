package prediction_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// PredictPricePath - путь эндпоинта предсказания.
const PredictPricePath = "/predict_price"

// Client - клиент эндпоинта предсказания цены.
type Client struct {
	baseURL    string // например, "http://localhost:8080"
	httpClient *http.Client
}

// NewClient - конструктор. timeout == 0 означает таймауты транспорта по умолчанию.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Predict реализует порт PricePredictorPort.
func (c *Client) Predict(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "PredictionAPIClient",
		"method":    "Predict",
	})

	// 1. Формируем тело запроса
	reqBody, err := json.Marshal(predictPriceRequest{
		OverallQual: req.OverallQual,
		GrLivArea:   req.GrLivArea,
		TotalBath:   req.TotalBath,
		TotalSF:     req.TotalSF,
		HouseAge:    req.HouseAge,
		RemodelAge:  req.RemodelAge,
	})
	if err != nil {
		return domain.PredictionResult{}, &domain.PredictionError{Kind: domain.ErrorKindTransport, Err: fmt.Errorf("failed to marshal request body: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PredictPricePath, bytes.NewReader(reqBody))
	if err != nil {
		return domain.PredictionResult{}, &domain.PredictionError{Kind: domain.ErrorKindTransport, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		httpReq.Header.Set("X-Trace-ID", traceID)
	}

	// 2. Выполняем запрос
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		clientLogger.Debug("Transport failure", port.Fields{"error": err.Error()})
		return domain.PredictionResult{}, &domain.PredictionError{Kind: domain.ErrorKindTransport, Err: err}
	}
	defer resp.Body.Close()

	// 3. Читаем тело один раз: оно нужно и для разбора, и для сообщений об ошибках
	body, readErr := io.ReadAll(resp.Body)

	// 4. Неуспешный статус
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := string(body)
		if readErr != nil {
			text = domain.NoBodyPlaceholder
		}
		return domain.PredictionResult{}, &domain.PredictionError{
			Kind:       domain.ErrorKindProtocol,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       text,
		}
	}

	if readErr != nil {
		return domain.PredictionResult{}, &domain.PredictionError{
			Kind:       domain.ErrorKindParse,
			StatusCode: resp.StatusCode,
			Body:       domain.NoBodyPlaceholder,
			Err:        fmt.Errorf("failed to read response body: %w", readErr),
		}
	}

	// 5. Разбираем JSON. Любой корректный JSON принимается, не-объект
	// просто не содержит predicted_price.
	var anyBody interface{}
	if err := json.Unmarshal(body, &anyBody); err != nil {
		return domain.PredictionResult{}, &domain.PredictionError{
			Kind:       domain.ErrorKindParse,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        err,
		}
	}

	var dto predictPriceResponse
	if _, isObject := anyBody.(map[string]interface{}); isObject {
		_ = json.Unmarshal(body, &dto)
	}

	result := decodeResult(dto)
	clientLogger.Debug("Prediction response decoded", port.Fields{"succeeded": result.Succeeded()})
	return result, nil
}

// decodeResult: непустое predicted_price означает успех, даже если в ответе есть и error.
// Пустыми считаются null, false, 0 и пустая строка.
func decodeResult(dto predictPriceResponse) domain.PredictionResult {
	if price, ok := truthyText(dto.PredictedPrice); ok {
		return domain.PricePredicted(price)
	}
	if msg, ok := truthyText(dto.Error); ok {
		return domain.PredictionFailed(msg)
	}
	return domain.PredictionFailed("")
}

// truthyText - текст значения JSON: строка без кавычек, остальное как есть.
func truthyText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "", "null", "false", `""`:
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil && f == 0 {
		return "", false
	}
	return string(raw), true
}

// statusText возвращает текст статуса без числового кода.
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
