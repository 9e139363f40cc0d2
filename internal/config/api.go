package config

import (
	"fmt"
	"net/url"
	"time"
)

// APIConfig holds runtime configuration for the API service.
// It is built once at process start and passed by value into constructors.
type APIConfig struct {
	Environment   string
	Addr          string
	DatabaseURL   string
	DBHost        string
	DBPort        int
	DBUser        string
	DBPassword    string
	DBName        string
	MigrationsDir string

	ModelProvider     string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string
	OpenRouterReferer string
	OpenRouterTitle   string
	GeminiAPIKey      string
	GeminiModel       string
	ModelMaxAttempts  int
	ModelBackoff      time.Duration
	ModelTimeout      time.Duration

	GeocoderBaseURL string

	RateLimitRedisAddr string
	RateLimitRedisPass string
	RateLimitRedisDB   int
}

// LoadAPIConfig constructs an APIConfig from environment variables.
func LoadAPIConfig() APIConfig {
	return APIConfig{
		Environment:   GetString("APP_ENV", "development"),
		Addr:          GetString("API_ADDR", ":5000"),
		DatabaseURL:   GetString("DATABASE_URL", ""),
		DBHost:        GetString("DB_HOST", "localhost"),
		DBPort:        GetInt("DB_PORT", 5432),
		DBUser:        GetString("DB_USER", "yojana"),
		DBPassword:    GetString("DB_PASSWORD", "yojana"),
		DBName:        GetString("DB_NAME", "yojana"),
		MigrationsDir: GetString("DB_MIGRATIONS_DIR", "db/migrations"),

		ModelProvider:     GetString("MODEL_PROVIDER", "openrouter"),
		OpenRouterAPIKey:  GetString("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: GetString("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		OpenRouterModel:   GetString("OPENROUTER_MODEL", "google/gemini-2.0-flash-001"),
		OpenRouterReferer: GetString("OPENROUTER_REFERER", "http://localhost:3000"),
		OpenRouterTitle:   GetString("OPENROUTER_TITLE", "YojanaSaathi"),
		GeminiAPIKey:      GetString("GEMINI_API_KEY", ""),
		GeminiModel:       GetString("GEMINI_MODEL", "gemini-2.0-flash"),
		ModelMaxAttempts:  GetInt("MODEL_MAX_ATTEMPTS", 1),
		ModelBackoff:      time.Duration(GetInt("MODEL_BACKOFF_MS", 500)) * time.Millisecond,
		ModelTimeout:      time.Duration(GetInt("MODEL_TIMEOUT_SECONDS", 0)) * time.Second,

		GeocoderBaseURL: GetString("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),

		RateLimitRedisAddr: GetString("RATE_LIMIT_REDIS_ADDR", ""),
		RateLimitRedisPass: GetString("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:   GetInt("RATE_LIMIT_REDIS_DB", 0),
	}
}

// DatabaseDSN returns DATABASE_URL when set, otherwise a DSN assembled from
// the host/user/password/name/port tuple.
func (c APIConfig) DatabaseDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.DBUser),
		url.QueryEscape(c.DBPassword),
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
