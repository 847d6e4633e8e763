package rest

import (
	"net/http"

	"listing-portal/internal/adapters/preferences"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port/usecases_port"
)

type PreferencesHandler struct {
	themeUC usecases_port.ThemeUseCasePort
}

func NewPreferencesHandler(themeUC usecases_port.ThemeUseCasePort) *PreferencesHandler {
	return &PreferencesHandler{themeUC: themeUC}
}

// GetTheme обрабатывает GET /preferences/theme
func (h *PreferencesHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme := h.themeUC.Current(r.Context(), preferences.NewCookieStore(w, r))
	RespondWithJSON(w, http.StatusOK, toThemeResponse(theme))
}

// ToggleTheme обрабатывает POST /preferences/theme/toggle
func (h *PreferencesHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme := h.themeUC.Toggle(r.Context(), preferences.NewCookieStore(w, r))
	RespondWithJSON(w, http.StatusOK, toThemeResponse(theme))
}

// UIBehavior обрабатывает GET /ui/behavior
func (h *PreferencesHandler) UIBehavior(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, UIBehaviorResponse{
		CardHoverLift:      domain.CardHoverLift,
		AnchorScrollOffset: domain.AnchorScrollOffset,
		Reveal: RevealOptionsResponse{
			Threshold:  domain.RevealThreshold,
			RootMargin: domain.RevealRootMargin,
			Selectors:  domain.RevealSelectors,
		},
		InputFilledColor:    domain.InputFilledColor,
		InputEmptyColor:     domain.InputEmptyColor,
		FlashAutoDismissMs:  domain.FlashAutoDismissAfter.Milliseconds(),
		FlashFadeOutMs:      domain.FlashFadeOut.Milliseconds(),
		InteriorImagesField: domain.InteriorImagesField,
		ImageAccept:         domain.ImageAccept,
		MaxUploadBytes:      domain.MaxUploadBytes,
	})
}
