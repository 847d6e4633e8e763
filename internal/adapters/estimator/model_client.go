package estimator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
	"math"
	"net/http"
	"strings"
	"time"
)

type modelResponse struct {
	Price *float64 `json:"price"`
}

// ModelClient обращается к внешнему сервису модели: POST {baseURL}/predict с признаками дома.
type ModelClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewModelClient(baseURL string, timeout time.Duration) *ModelClient {
	return &ModelClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ModelClient) Name() string {
	return "model-service"
}

func (c *ModelClient) Estimate(ctx context.Context, features domain.HouseFeatures) (float64, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ModelClient",
		"method":    "Estimate",
	})

	body, err := json.Marshal(features)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call model service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("model service returned non-200 status: %d, body: %s", resp.StatusCode, string(bodyBytes))
		logger.Error("Received non-OK response from model service", err, port.Fields{"status_code": resp.StatusCode})
		return 0, err
	}

	var out modelResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode model response: %w", err)
	}
	if out.Price == nil || math.IsNaN(*out.Price) || math.IsInf(*out.Price, 0) {
		return 0, fmt.Errorf("model response has no usable price")
	}

	logger.Debug("Model estimate received", port.Fields{"price": *out.Price})
	return *out.Price, nil
}
