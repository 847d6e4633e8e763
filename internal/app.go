package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"listing-portal/internal/adapters/estimator"
	logger_adapter "listing-portal/internal/adapters/logger"
	"listing-portal/internal/adapters/memory"
	postgres_adapter "listing-portal/internal/adapters/postgres"
	"listing-portal/internal/adapters/prediction_client"
	rabbitmq_adapter "listing-portal/internal/adapters/rabbitmq"
	"listing-portal/internal/adapters/rest"
	"listing-portal/internal/adapters/storage"
	"listing-portal/internal/configs"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/port"
	"listing-portal/internal/core/port/usecases_port"
	"listing-portal/internal/core/usecase"
	fluentlogger "listing-portal/pkg/fluent_logger"
	"listing-portal/pkg/postgres"
	"listing-portal/pkg/rabbitmq/rabbitmq_common"
	"listing-portal/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	connManager    *rabbitmq_common.ConnectionManager
	eventsProducer *rabbitmq_producer.Publisher

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	// --- 2. ХРАНИЛИЩЕ ОБЪЯВЛЕНИЙ И ПОЛЬЗОВАТЕЛЕЙ ---
	var listings port.ListingRepositoryPort
	var users port.UserRepositoryPort
	var favorites port.FavoritesRepositoryPort
	if appConfig.Database.URL != "" {
		initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		dbPool, err := postgres.NewClient(initCtx, postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		application.dbPool = dbPool
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		if err := postgres_adapter.EnsureSchema(initCtx, dbPool); err != nil {
			appLogger.Error("Failed to prepare listings schema", err, nil)
			application.closeResources()
			return nil, err
		}

		repo, err := postgres_adapter.NewPostgresListingRepository(dbPool)
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to create postgres listing repository: %w", err)
		}
		listings = repo

		userRepo, err := postgres_adapter.NewPostgresUserRepository(dbPool)
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to create postgres user repository: %w", err)
		}
		users = userRepo

		favoritesRepo, err := postgres_adapter.NewPostgresFavoritesRepository(dbPool)
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to create postgres favorites repository: %w", err)
		}
		favorites = favoritesRepo
	} else {
		appLogger.Warn("DATABASE_URL is not set, listings and users are kept in memory", nil)
		listings = memory.NewListingRepository()
		users = memory.NewUserRepository()
		favorites = memory.NewFavoritesRepository()
	}

	images, err := storage.NewDiskImageStorage(appConfig.Rest.UploadDir)
	if err != nil {
		appLogger.Error("Failed to prepare upload directory", err, nil)
		application.closeResources()
		return nil, err
	}

	// --- 3. СОБЫТИЯ ПРЕДСКАЗАНИЙ ---
	var predictionEvents port.PredictionEventsPort
	if appConfig.RabbitMQ.Enabled {
		connManager, err := rabbitmq_common.NewManager(
			rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})),
		)
		if err != nil {
			appLogger.Error("Failed to connect to RabbitMQ", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		application.connManager = connManager

		producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			ExchangeName:             appConfig.RabbitMQ.PredictionsExchange,
			ExchangeType:             "topic",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
		}, connManager)
		if err != nil {
			appLogger.Error("Failed to create RabbitMQ producer", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create RabbitMQ producer: %w", err)
		}
		application.eventsProducer = producer

		eventsAdapter, err := rabbitmq_adapter.NewPredictionEventsAdapter(producer, appConfig.RabbitMQ.PredictionsRoutingKey)
		if err != nil {
			application.closeResources()
			return nil, err
		}
		predictionEvents = eventsAdapter
		appLogger.Info("Prediction events will be published to RabbitMQ", port.Fields{
			"exchange":    appConfig.RabbitMQ.PredictionsExchange,
			"routing_key": appConfig.RabbitMQ.PredictionsRoutingKey,
		})
	}

	// --- 4. USE CASES ---
	var primaryEstimator port.PriceEstimatorPort
	if appConfig.Prediction.ModelServiceURL != "" {
		primaryEstimator = estimator.NewModelClient(appConfig.Prediction.ModelServiceURL, appConfig.Prediction.ModelTimeout)
	}
	estimateUC, err := usecase.NewEstimatePriceUseCase(primaryEstimator, estimator.NewHeuristicEstimator(), predictionEvents)
	if err != nil {
		application.closeResources()
		return nil, err
	}

	registerUC := usecase.NewRegisterUserUseCase(users)
	if appConfig.Admin.Password != "" {
		seedCtx, cancel := context.WithTimeout(contextkeys.ContextWithLogger(context.Background(), appLogger), 15*time.Second)
		_, err := registerUC.EnsureAdmin(seedCtx, appConfig.Admin.Username, appConfig.Admin.Email, appConfig.Admin.Password)
		cancel()
		if err != nil {
			appLogger.Error("Failed to create admin user", err, nil)
			application.closeResources()
			return nil, err
		}
	}

	authSessions := memory.NewAuthSessionStore()
	sessionUC := usecase.NewSessionUserUseCase(users, authSessions)

	flashes := memory.NewFlashStore()
	predictor := prediction_client.NewClient(appConfig.Prediction.ServiceURL, appConfig.Prediction.ClientTimeout)
	flows := rest.NewPredictionFlows(func() usecases_port.RequestPredictionUseCasePort {
		return usecase.NewRequestPredictionUseCase(predictor)
	})

	handlers := rest.Handlers{
		Prediction: rest.NewPredictionHandler(estimateUC, flows),
		Listings: rest.NewListingsHandler(
			usecase.NewSearchListingsUseCase(listings),
			usecase.NewGetListingUseCase(listings),
			usecase.NewCreateListingUseCase(listings, images, estimateUC),
			usecase.NewDeleteListingUseCase(listings, favorites, images),
			flashes,
		),
		Flash:       rest.NewFlashHandler(flashes),
		Preferences: rest.NewPreferencesHandler(usecase.NewThemeUseCase()),
		Accounts: rest.NewAccountsHandler(
			registerUC,
			usecase.NewLoginUserUseCase(users, authSessions),
			sessionUC,
			usecase.NewGetProfileUseCase(listings, favorites),
			flashes,
		),
		Favorites: rest.NewFavoritesHandler(
			usecase.NewAddToFavoritesUseCase(favorites, listings),
			usecase.NewRemoveFromFavoritesUseCase(favorites, listings),
			usecase.NewGetUserFavoritesIdsUseCase(favorites),
		),
		SessionUser: sessionUC,
	}

	application.apiServer = rest.NewServer(rest.ServerConfig{
		Port:               appConfig.Rest.PORT,
		CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
		UploadDir:          images.Dir(),
	}, handlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return application, nil
}

// Run запускает сервер и ждет сигнала завершения.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(contextkeys.ContextWithLogger(ctx, a.logger)); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.closeResources()
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
		return err
	}
}

// closeResources закрывает все, что успело открыться. Безопасен при частичной инициализации.
func (a *App) closeResources() {
	if a.eventsProducer != nil {
		if err := a.eventsProducer.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ producer", err, nil)
		}
		a.eventsProducer = nil
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		a.connManager = nil
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
		a.dbPool = nil
	}
	a.logger.Info("Resources released.", nil)
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent уже может быть недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
		a.fluentClient = nil
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
