package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Redis backs the token blacklist. Empty RedisAddr disables it.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// RabbitMQ carries booking lifecycle events. Empty AMQPURL disables it.
	AMQPURL      string
	AMQPExchange string

	// Omise credentials for card charges and refunds.
	OmisePublicKey  string
	OmiseSecretKey  string
	PaymentCurrency string

	// Directory for uploaded parking spot photos.
	UploadDir string

	// How often the expired-booking sweeper runs.
	BookingSweepInterval time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "15m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Redis (optional, token blacklist degrades gracefully without it)
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	// RabbitMQ (optional, lifecycle events are skipped without it)
	cfg.AMQPURL = getEnv("AMQP_URL", "")
	cfg.AMQPExchange = getEnv("AMQP_EXCHANGE", "carparkly.events")

	// Omise keys are required, payments are core to the marketplace
	cfg.OmisePublicKey = os.Getenv("OMISE_PUBLIC_KEY")
	if cfg.OmisePublicKey == "" {
		return nil, fmt.Errorf("OMISE_PUBLIC_KEY is required")
	}
	cfg.OmiseSecretKey = os.Getenv("OMISE_SECRET_KEY")
	if cfg.OmiseSecretKey == "" {
		return nil, fmt.Errorf("OMISE_SECRET_KEY is required")
	}
	cfg.PaymentCurrency = getEnv("PAYMENT_CURRENCY", "thb")

	// Upload directory for spot photos (default: ./upload)
	cfg.UploadDir = getEnv("UPLOAD_DIR", "upload")

	// Sweep interval for expired pending bookings (default: 1m)
	sweepStr := getEnv("BOOKING_SWEEP_INTERVAL", "1m")
	sweep, err := time.ParseDuration(sweepStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_SWEEP_INTERVAL: %w", err)
	}
	cfg.BookingSweepInterval = sweep

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
// It returns the default value if the variable is not set.
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
