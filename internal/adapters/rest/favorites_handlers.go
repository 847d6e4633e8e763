package rest

import (
	"errors"
	"net/http"
	"strconv"

	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
	"listing-portal/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type FavoritesHandler struct {
	addUC    usecases_port.AddToFavoritesUseCasePort
	removeUC usecases_port.RemoveFromFavoritesUseCasePort
	idsUC    usecases_port.GetUserFavoritesIdsUseCasePort
}

func NewFavoritesHandler(
	addUC usecases_port.AddToFavoritesUseCasePort,
	removeUC usecases_port.RemoveFromFavoritesUseCasePort,
	idsUC usecases_port.GetUserFavoritesIdsUseCasePort,
) *FavoritesHandler {
	return &FavoritesHandler{
		addUC:    addUC,
		removeUC: removeUC,
		idsUC:    idsUC,
	}
}

// Status обрабатывает GET /houses/{id}/favorite. Для анонима всегда false.
func (h *FavoritesHandler) Status(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FavoriteStatus"})

	houseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		RespondWithJSON(w, http.StatusOK, FavoriteStatusResponse{IsFavorite: false})
		return
	}

	ok, err := h.idsUC.Contains(r.Context(), user.ID, houseID)
	if err != nil {
		logger.Error("Get favorite IDs use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to check favorites")
		return
	}
	RespondWithJSON(w, http.StatusOK, FavoriteStatusResponse{IsFavorite: ok})
}

// Add обрабатывает POST /houses/{id}/favorite
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddToFavorites"})

	houseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		RespondWithJSON(w, http.StatusUnauthorized, FavoriteActionResponse{Message: "Please login to add favorites"})
		return
	}

	err = h.addUC.Execute(r.Context(), user.ID, houseID)
	switch {
	case err == nil:
		RespondWithJSON(w, http.StatusOK, FavoriteActionResponse{Success: true, Message: "Added to favorites"})
	case errors.Is(err, domain.ErrListingNotFound):
		RespondWithJSON(w, http.StatusNotFound, FavoriteActionResponse{Message: "Property not found"})
	case errors.Is(err, domain.ErrAlreadyFavorite):
		RespondWithJSON(w, http.StatusConflict, FavoriteActionResponse{Message: "Already in favorites"})
	default:
		logger.Error("Add to favorites use case failed", err, nil)
		RespondWithJSON(w, http.StatusInternalServerError, FavoriteActionResponse{Message: "Failed to add to favorites"})
	}
}

// Remove обрабатывает DELETE /houses/{id}/favorite
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RemoveFromFavorites"})

	houseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		RespondWithJSON(w, http.StatusUnauthorized, FavoriteActionResponse{Message: "Please login"})
		return
	}

	err = h.removeUC.Execute(r.Context(), user.ID, houseID)
	switch {
	case err == nil:
		RespondWithJSON(w, http.StatusOK, FavoriteActionResponse{Success: true, Message: "Removed from favorites"})
	case errors.Is(err, domain.ErrListingNotFound):
		RespondWithJSON(w, http.StatusNotFound, FavoriteActionResponse{Message: "Property not found"})
	case errors.Is(err, domain.ErrNotFavorite):
		RespondWithJSON(w, http.StatusConflict, FavoriteActionResponse{Message: "Not in favorites"})
	default:
		logger.Error("Remove from favorites use case failed", err, nil)
		RespondWithJSON(w, http.StatusInternalServerError, FavoriteActionResponse{Message: "Failed to remove from favorites"})
	}
}
