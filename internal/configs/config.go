package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DBconfig struct {
	URL string // пустой URL - объявления хранятся в памяти
}

type RESTconfig struct {
	PORT               string
	CORSAllowedOrigins []string
	UploadDir          string
}

type PredictionConfig struct {
	// ServiceURL - база для POST /predict_price в потоке предсказания.
	// По умолчанию сервис обращается сам к себе.
	ServiceURL    string
	ClientTimeout time.Duration // 0 - без таймаута
	// ModelServiceURL - внешняя модель; пусто - только эвристика
	ModelServiceURL string
	ModelTimeout    time.Duration
}

type RabbitMQConfig struct {
	Enabled               bool
	URL                   string
	PredictionsExchange   string
	PredictionsRoutingKey string
}

// AdminConfig - администратор, создаваемый при старте. Пустой пароль - не создается.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Database     DBconfig
	Rest         RESTconfig
	Prediction   PredictionConfig
	RabbitMQ     RabbitMQConfig
	Admin        AdminConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из .env (если он есть) и переменных окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "listing-portal")

	cfg.Database.URL = os.Getenv("DATABASE_URL")

	cfg.Rest.PORT = getEnvAsString("PORT", "8080")
	cfg.Rest.UploadDir = getEnvAsString("UPLOAD_DIR", "static/uploads")
	cfg.Rest.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	cfg.Prediction.ServiceURL = getEnvAsString("PREDICTION_SERVICE_URL", "http://localhost:"+cfg.Rest.PORT)
	cfg.Prediction.ClientTimeout = getEnvAsDuration("PREDICTION_CLIENT_TIMEOUT", 0)
	cfg.Prediction.ModelServiceURL = os.Getenv("MODEL_SERVICE_URL")
	cfg.Prediction.ModelTimeout = getEnvAsDuration("MODEL_CLIENT_TIMEOUT", 5*time.Second)

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			log.Println("WARNING: RABBITMQ_ENABLED is true, but RABBITMQ_URL is not set. Disabling prediction events.")
			cfg.RabbitMQ.Enabled = false
		}
		cfg.RabbitMQ.PredictionsExchange = getEnvAsString("PREDICTIONS_EXCHANGE", "predictions_exchange")
		cfg.RabbitMQ.PredictionsRoutingKey = getEnvAsString("PREDICTIONS_ROUTING_KEY", "price.predicted")
	}

	cfg.Admin.Username = getEnvAsString("ADMIN_USERNAME", "admin")
	cfg.Admin.Email = getEnvAsString("ADMIN_EMAIL", "admin@example.com")
	cfg.Admin.Password = os.Getenv("ADMIN_PASSWORD")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration понимает "30s", "1m" и целое число секунд.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(valStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(valStr)
	if err != nil || d < 0 {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration. Using default value: %s\n", key, valStr, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList разбирает список через запятую.
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
