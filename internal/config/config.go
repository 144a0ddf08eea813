package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// City index sources
const (
	SourceFile = "file"
	SourceDB   = "db"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string `validate:"required"` // "development", "production", etc.

	// Server
	ServerAddr string `validate:"required"`
	BaseURL    string `validate:"required,url"`

	// City index
	CitySource     string        `validate:"oneof=file db"`
	CitiesFile     string        `validate:"required_if=CitySource file"`
	QgramSize      int           `validate:"gte=1,lte=8"`
	SuggestLimit   int           `validate:"gte=1,lte=100"`
	ReloadInterval time.Duration // 0 disables periodic reloads

	// TLS
	TLSEnabled  bool
	TLSCertFile string `validate:"required_if=TLSEnabled true"`
	TLSKeyFile  string `validate:"required_if=TLSEnabled true"`

	// Database
	DatabaseURL string `validate:"required_if=CitySource db"`

	// Redis, used for the suggestion cache and limiter storage when set
	RedisURL string
	CacheTTL time.Duration

	// Maps
	MapsURL string `validate:"required,url"`

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Rate limiting
	RateLimit int `validate:"gte=0"` // requests per minute per IP, 0 disables

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "City Search"
	SiteTagline string // env: SITE_TAGLINE, default: "Find a city, open it on the map"

	// Widget settings file
	ConfigFile string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:            getEnv("ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":3000"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:3000"),
		CitySource:     getEnv("CITY_SOURCE", SourceFile),
		CitiesFile:     getEnv("CITIES_FILE", "cities.tsv"),
		QgramSize:      getEnvInt("QGRAM_SIZE", 3),
		SuggestLimit:   getEnvInt("SUGGEST_LIMIT", 10),
		ReloadInterval: getEnvDuration("RELOAD_INTERVAL", 0),
		TLSEnabled:     getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		CacheTTL:       getEnvDuration("CACHE_TTL", 10*time.Minute),
		MapsURL:        getEnv("MAPS_URL", "http://google.com/maps?q="),
		CORSOrigins:    getEnv("CORS_ORIGINS", ""),
		RateLimit:      getEnvInt("RATE_LIMIT", 100),

		SiteTitle:   getEnv("SITE_TITLE", "City Search"),
		SiteTagline: getEnv("SITE_TAGLINE", "Find a city, open it on the map"),
		ConfigFile:  getEnv("CONFIG_FILE", "config.yaml"),
	}
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// UseDatabase returns true if a database connection is configured.
func (c *Config) UseDatabase() bool {
	return c.DatabaseURL != ""
}

// UseRedis returns true if a redis server is configured.
func (c *Config) UseRedis() bool {
	return c.RedisURL != ""
}
