package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer    string        // Optional: issuer claim for session tokens (default: hearback)
	JWTSecret string        // Required: HMAC secret for session token signing
	TokenTTL  time.Duration // Optional: session token lifetime (default: 1h)

	DatabaseFile string // Optional: path to SQLite database file (default: ./hearback.db)

	TTSEngineURL string        // Optional: base URL of the speech engine (default: http://localhost:5002)
	TTSTimeout   time.Duration // Optional: per-request engine deadline (default: 60s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:    getEnvOrDefault("HEARBACK_ISSUER", "hearback"),
		JWTSecret: os.Getenv("HEARBACK_JWT_SECRET"),
		TokenTTL:  getEnvDurationOrDefault("HEARBACK_TOKEN_TTL", time.Hour),

		DatabaseFile: getEnvOrDefault("HEARBACK_DATABASE_FILE", "hearback.db"),

		TTSEngineURL: getEnvOrDefault("HEARBACK_TTS_URL", "http://localhost:5002"),
		TTSTimeout:   getEnvDurationOrDefault("HEARBACK_TTS_TIMEOUT", 60*time.Second),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accept duration strings first ("1h", "90s"), then bare seconds.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
