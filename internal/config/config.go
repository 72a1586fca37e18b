package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string
	AutoMigrate  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int
	// Bootstrap admin account, created on start when both are set.
	AdminEmail    string
	AdminPassword string

	BusinessTimezone string
	BusinessLat      float64
	BusinessLng      float64
	TaxRate          float64
	DepositRate      float64

	GeocoderAPIKey  string
	GeocoderBaseURL string
	GeocodeCacheTTL time.Duration

	UploadDir      string
	IdempotencyTTL time.Duration

	// Requests allowed per client IP within RateLimitWindow on quote and booking writes.
	RateLimit       int
	RateLimitWindow time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.String("error", err.Error()))
	}

	cfg := &Config{}
	var err error

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}
	if cfg.AutoMigrate, err = getEnvAsBool("AUTO_MIGRATE", true); err != nil {
		return nil, err
	}

	// Redis is optional; an empty address disables caching and rate limiting.
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12); err != nil {
		return nil, err
	}
	cfg.AdminEmail = getEnv("ADMIN_EMAIL", "")
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "")

	cfg.BusinessTimezone = getEnv("BUSINESS_TIMEZONE", "America/Detroit")
	if _, err := time.LoadLocation(cfg.BusinessTimezone); err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE: %w", err)
	}
	// Defaults point at the warehouse in Sterling Heights, MI.
	if cfg.BusinessLat, err = getEnvAsFloat("BUSINESS_LAT", 42.5803); err != nil {
		return nil, err
	}
	if cfg.BusinessLng, err = getEnvAsFloat("BUSINESS_LNG", -83.0302); err != nil {
		return nil, err
	}
	if cfg.TaxRate, err = getEnvAsFloat("TAX_RATE", 0.08); err != nil {
		return nil, err
	}
	if cfg.DepositRate, err = getEnvAsFloat("DEPOSIT_RATE", 0.30); err != nil {
		return nil, err
	}
	if cfg.TaxRate < 0 || cfg.TaxRate > 1 || cfg.DepositRate < 0 || cfg.DepositRate > 1 {
		return nil, fmt.Errorf("TAX_RATE and DEPOSIT_RATE must be between 0 and 1")
	}

	cfg.GeocoderAPIKey = getEnv("GEOCODER_API_KEY", "")
	cfg.GeocoderBaseURL = getEnv("GEOCODER_BASE_URL", "https://maps.googleapis.com/maps/api/geocode/json")
	if cfg.GeocodeCacheTTL, err = getEnvAsDuration("GEOCODE_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	cfg.UploadDir = getEnv("UPLOAD_DIR", "./uploads")
	if cfg.IdempotencyTTL, err = getEnvAsDuration("IDEMPOTENCY_TTL", 72*time.Hour); err != nil {
		return nil, err
	}

	if cfg.RateLimit, err = getEnvAsInt("RATE_LIMIT", 30); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}
	return val, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid number: %w", key, valStr, err)
	}
	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}
	return val, nil
}

// getEnvAsDuration parses values like "15m" or "1h".
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}
	return val, nil
}
