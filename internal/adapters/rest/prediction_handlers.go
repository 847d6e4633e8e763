package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"listing-portal/internal/adapters/pagestate"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/contracts"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
	"listing-portal/internal/core/port/usecases_port"
)

const maxJSONBodyBytes = 1 << 20

type PredictionHandler struct {
	estimateUC usecases_port.EstimatePriceUseCasePort
	flows      *PredictionFlows
}

func NewPredictionHandler(estimateUC usecases_port.EstimatePriceUseCasePort, flows *PredictionFlows) *PredictionHandler {
	return &PredictionHandler{
		estimateUC: estimateUC,
		flows:      flows,
	}
}

// PredictPrice обрабатывает POST /predict_price
func (h *PredictionHandler) PredictPrice(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "PredictPrice"})

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err != nil {
		logger.Warn("Failed to read request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := contracts.Validate(contracts.PredictPriceRequest, body); err != nil {
		logger.Warn("Request body rejected by schema", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	price, err := h.estimateUC.Execute(r.Context(), raw)
	if err != nil {
		// Семантическая ошибка передается в теле, статус остается 200
		logger.Error("Price estimate failed", err, nil)
		RespondWithJSON(w, http.StatusOK, PredictPriceResponse{Error: err.Error()})
		return
	}

	RespondWithJSON(w, http.StatusOK, PredictPriceResponse{PredictedPrice: &price})
}

// RunPredictionFlow обрабатывает POST /api/v1/predictions: нажатие кнопки
// предсказания на странице с переданным состоянием формы.
func (h *PredictionHandler) RunPredictionFlow(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RunPredictionFlow"})

	var req PredictionFlowRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)).Decode(&req); err != nil {
		logger.Warn("Invalid prediction flow request", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	inputs := make(map[domain.FieldID]string, len(req.Inputs))
	for k, v := range req.Inputs {
		inputs[domain.FieldID(k)] = v
	}
	var opts []pagestate.Option
	if req.ResultBox != nil && !*req.ResultBox {
		opts = append(opts, pagestate.WithoutResultBox())
	}
	page := pagestate.New(inputs, opts...)

	flow := h.flows.For(SessionFromContext(r.Context()))
	outcome, err := flow.Execute(r.Context(), page)
	if outcome == nil {
		logger.Error("Prediction flow returned no outcome", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Prediction flow failed")
		return
	}

	resp := PredictionFlowResponse{
		Sequence: outcome.Sequence,
		Stale:    outcome.Stale,
		Notice:   outcome.Notice,
		Page:     page.Snapshot(),
	}
	var predErr *domain.PredictionError
	if errors.As(err, &predErr) {
		resp.ErrorKind = string(predErr.Kind)
	}
	if outcome.Result != nil && outcome.Result.Succeeded() {
		resp.Price = outcome.Result.Price
	}

	RespondWithJSON(w, http.StatusOK, resp)
}
