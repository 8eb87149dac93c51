package config

import (
	"os"
	"strconv"
	"time"

	"matchday/internal/cache"
	"matchday/internal/database"
	"matchday/internal/messaging"
	"matchday/internal/search"
)

// Config содержит конфигурацию приложения
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// Directory with the static demo page; empty disables static serving
	StaticDir string

	Database      database.Config
	NATS          messaging.Config
	Valkey        cache.Config
	Elasticsearch search.Config
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		StaticDir: getEnv("STATIC_DIR", ""),

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "app"),
			Password:           getEnv("DB_PASSWORD", "pass"),
			DBName:             getEnv("DB_NAME", "football"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", ""),
			ClusterID: getEnv("NATS_CLUSTER_ID", "matchday"),
			ClientID:  getEnv("NATS_CLIENT_ID", "matchday-api"),
		},

		Valkey: cache.Config{
			Addr:      getEnv("VALKEY_ADDR", ""),
			Password:  getEnv("VALKEY_PASSWORD", ""),
			EventsTTL: time.Duration(getEnvInt("CACHE_EVENTS_TTL_SEC", 60)) * time.Second,
			SeatsTTL:  time.Duration(getEnvInt("CACHE_SEATS_TTL_SEC", 3)) * time.Second,
		},

		Elasticsearch: search.Config{
			URL:        getEnv("ELASTICSEARCH_URL", ""),
			Username:   getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:   getEnv("ELASTICSEARCH_PASSWORD", ""),
			Index:      getEnv("ELASTICSEARCH_INDEX", "matchday-events"),
			MaxRetries: getEnvInt("ELASTICSEARCH_MAX_RETRIES", 3),
		},
	}
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленное значение переменной окружения
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
