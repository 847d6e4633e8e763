package rest

import (
	"net/http"
	"time"

	"listing-portal/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type FlashHandler struct {
	store port.FlashStorePort
	now   func() time.Time
}

func NewFlashHandler(store port.FlashStorePort) *FlashHandler {
	return &FlashHandler{store: store, now: time.Now}
}

// List обрабатывает GET /flash
func (h *FlashHandler) List(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	msgs := h.store.Active(SessionFromContext(r.Context()), now)

	resp := make([]FlashResponse, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, toFlashResponse(m, now))
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// Dismiss обрабатывает DELETE /flash/{id}
func (h *FlashHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid flash message ID format")
		return
	}
	if !h.store.Dismiss(SessionFromContext(r.Context()), id, h.now()) {
		WriteJSONError(w, http.StatusNotFound, "Flash message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
