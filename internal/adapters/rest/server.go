package rest

import (
	"context"
	"fmt"
	core_port "listing-portal/internal/core/port"
	"listing-portal/internal/core/port/usecases_port"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers - все обработчики HTTP API.
type Handlers struct {
	Prediction  *PredictionHandler
	Listings    *ListingsHandler
	Flash       *FlashHandler
	Preferences *PreferencesHandler
	Accounts    *AccountsHandler
	Favorites   *FavoritesHandler
	// SessionUser определяет вошедшего пользователя для AuthMiddleware
	SessionUser usecases_port.SessionUserUseCasePort
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
	// UploadDir раздается по /uploads/, пусто - не раздается
	UploadDir string
}

// Server - REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter собирает маршруты. Вынесен отдельно для тестов через httptest.
func NewRouter(cfg ServerConfig, handlers Handlers, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	// сессия до логгера, чтобы session_id попадал в каждую запись
	r.Use(middleware.RealIP, SessionMiddleware, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(AuthMiddleware(handlers.SessionUser))

	// Эндпоинт оценки, к которому обращается кнопка предсказания
	r.Post("/predict_price", handlers.Prediction.PredictPrice)
	r.Post("/api/v1/predictions", handlers.Prediction.RunPredictionFlow)

	r.Get("/search", handlers.Listings.Search)
	r.Post("/ai_description", handlers.Listings.Describe)
	r.Route("/houses", func(r chi.Router) {
		r.Get("/", handlers.Listings.Search)
		r.Post("/", handlers.Listings.CreateListing)
		r.Get("/{id}", handlers.Listings.GetListing)
		r.Delete("/{id}", handlers.Listings.DeleteListing)

		r.Get("/{id}/favorite", handlers.Favorites.Status)
		r.Post("/{id}/favorite", handlers.Favorites.Add)
		r.Delete("/{id}/favorite", handlers.Favorites.Remove)
	})

	r.Post("/register", handlers.Accounts.Register)
	r.Post("/login", handlers.Accounts.Login)
	r.Post("/logout", handlers.Accounts.Logout)
	r.Get("/profile", handlers.Accounts.Profile)

	r.Route("/flash", func(r chi.Router) {
		r.Get("/", handlers.Flash.List)
		r.Delete("/{id}", handlers.Flash.Dismiss)
	})

	r.Get("/preferences/theme", handlers.Preferences.GetTheme)
	r.Post("/preferences/theme/toggle", handlers.Preferences.ToggleTheme)
	r.Get("/ui/behavior", handlers.Preferences.UIBehavior)

	if cfg.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	return r
}

// NewServer создает новый экземпляр сервера.
func NewServer(cfg ServerConfig, handlers Handlers, baseLogger core_port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, handlers, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(core_port.Fields{"component": "rest_server"}),
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
