package rest

import (
	"errors"
	"net/http"
	"time"

	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
	"listing-portal/internal/core/port/usecases_port"
)

type AccountsHandler struct {
	registerUC usecases_port.RegisterUserUseCasePort
	loginUC    usecases_port.LoginUserUseCasePort
	sessionUC  usecases_port.SessionUserUseCasePort
	profileUC  usecases_port.GetProfileUseCasePort
	flashes    port.FlashStorePort
	now        func() time.Time
}

func NewAccountsHandler(
	registerUC usecases_port.RegisterUserUseCasePort,
	loginUC usecases_port.LoginUserUseCasePort,
	sessionUC usecases_port.SessionUserUseCasePort,
	profileUC usecases_port.GetProfileUseCasePort,
	flashes port.FlashStorePort,
) *AccountsHandler {
	return &AccountsHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		sessionUC:  sessionUC,
		profileUC:  profileUC,
		flashes:    flashes,
		now:        time.Now,
	}
}

// flashError кладет уведомление в сессию и отвечает той же ошибкой.
func (h *AccountsHandler) flashError(w http.ResponseWriter, r *http.Request, status int, category domain.FlashCategory, text string) {
	h.flashes.Push(SessionFromContext(r.Context()), domain.NewFlashMessage(category, text, h.now()))
	WriteJSONError(w, status, text)
}

// Register обрабатывает POST /register (форма username, email, password, confirm_password)
func (h *AccountsHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	input := domain.RegistrationInput{
		Username:        r.FormValue("username"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	user, err := h.registerUC.Execute(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIncompleteSignup):
			WriteJSONError(w, http.StatusBadRequest, "Username, email and password are required")
		case errors.Is(err, domain.ErrPasswordMismatch):
			h.flashError(w, r, http.StatusBadRequest, domain.FlashDanger, "Passwords do not match!")
		case errors.Is(err, domain.ErrUsernameInUse):
			h.flashError(w, r, http.StatusConflict, domain.FlashDanger, "Username already exists!")
		case errors.Is(err, domain.ErrEmailInUse):
			h.flashError(w, r, http.StatusConflict, domain.FlashDanger, "Email already exists!")
		default:
			logger.Error("Register user use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	flash := domain.NewFlashMessage(domain.FlashSuccess, "Registration successful! Please login.", h.now())
	h.flashes.Push(SessionFromContext(r.Context()), flash)
	RespondWithJSON(w, http.StatusCreated, AccountResponse{
		User:  toUserResponse(*user),
		Flash: toFlashResponse(flash, h.now()),
	})
}

// Login обрабатывает POST /login (форма username, password)
func (h *AccountsHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	user, err := h.loginUC.Execute(r.Context(), SessionFromContext(r.Context()), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.flashError(w, r, http.StatusUnauthorized, domain.FlashDanger, "Invalid username or password")
			return
		}
		logger.Error("Login user use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	flash := domain.NewFlashMessage(domain.FlashSuccess, "Login successful!", h.now())
	h.flashes.Push(SessionFromContext(r.Context()), flash)
	RespondWithJSON(w, http.StatusOK, AccountResponse{
		User:  toUserResponse(*user),
		Flash: toFlashResponse(flash, h.now()),
	})
}

// Logout обрабатывает POST /logout
func (h *AccountsHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessionUC.Logout(r.Context(), SessionFromContext(r.Context()))

	flash := domain.NewFlashMessage(domain.FlashInfo, "You have been logged out", h.now())
	h.flashes.Push(SessionFromContext(r.Context()), flash)
	RespondWithJSON(w, http.StatusOK, toFlashResponse(flash, h.now()))
}

// Profile обрабатывает GET /profile: свои объявления и избранное
func (h *AccountsHandler) Profile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Profile"})

	user := UserFromContext(r.Context())
	if user == nil {
		h.flashError(w, r, http.StatusUnauthorized, domain.FlashWarning, "Please login to access this page.")
		return
	}

	profile, err := h.profileUC.Execute(r.Context(), *user)
	if err != nil {
		logger.Error("Get profile use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	RespondWithJSON(w, http.StatusOK, ProfileResponse{
		User:      toUserResponse(profile.User),
		Houses:    toHouseResponses(profile.Houses),
		Favorites: toHouseResponses(profile.Favorites),
	})
}
