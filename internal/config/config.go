package config

import (
	"os"
	"strconv"
	"time"

	"taskflow/internal/logger"

	"github.com/joho/godotenv"
)

// Backend names accepted in STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	AppPort        string
	StorageBackend string
	DatabaseURL    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit  int
	APIRateWindow time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment (.env is honored if present).
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	backend := os.Getenv("STORAGE_BACKEND")
	if backend == "" {
		backend = BackendMemory
	}
	if backend != BackendMemory && backend != BackendPostgres {
		logger.Fatal("unknown STORAGE_BACKEND", "backend", backend)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if backend == BackendPostgres && dbURL == "" {
		logger.Fatal("DATABASE_URL is not set (required for postgres backend)")
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	return &Config{
		AppPort:        port,
		StorageBackend: backend,
		DatabaseURL:    dbURL,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		APIRateLimit:   apiRateLimit,
		APIRateWindow:  apiRateWindow,
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogJSON:        os.Getenv("LOG_JSON") == "true",
	}
}
