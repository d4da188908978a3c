// Package config reads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port            string `env:"PORT,default=8080"`
	SecretKey       string `env:"SECRET_KEY"`
	CookieSecure    bool   `env:"COOKIE_SECURE,default=false"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE,default=es"`
	Timezone        string `env:"TZ,default=UTC"`

	DBDriver       string `env:"DB_DRIVER,default=sqlite"`
	DBPath         string `env:"DB_PATH,default=data/vitalmente.db"`
	DBDSN          string `env:"DB_DSN"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS,default=0"`

	LogLevel      string `env:"LOG_LEVEL,default=info"`
	LogFormat     string `env:"LOG_FORMAT,default=text"`
	LogstashAddr  string `env:"LOGSTASH_ADDR"`
	LogstashLabel string `env:"LOGSTASH_TYPE,default=vitalmente"`

	PaymentGatewayURL    string `env:"PAYMENT_GATEWAY_URL"`
	PaymentGatewayAPIKey string `env:"PAYMENT_GATEWAY_API_KEY"`
	PaymentWebhookSecret string `env:"PAYMENT_WEBHOOK_SECRET"`
	PaymentReturnURL     string `env:"PAYMENT_RETURN_URL,default=http://localhost:8080/api/payments/return"`
	PaymentCurrency      string `env:"PAYMENT_CURRENCY,default=USD"`

	SeedCatalog    bool   `env:"SEED_CATALOG,default=false"`
	ExpirySchedule string `env:"EXPIRY_SCHEDULE,default=@every 1h"`

	RateLimitPerSecond float64       `env:"RATE_LIMIT_PER_SECOND,default=5"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST,default=10"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Load reads an optional .env file and decodes the environment into Config.
// Variables already present in the environment take precedence over the file.
func Load(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}

	cfg := Config{}
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles(envFiles []string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	existing := make([]string, 0, len(envFiles))
	for _, path := range envFiles {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func (cfg *Config) normalize() error {
	secret, err := ValidateSecretKey(cfg.SecretKey)
	if err != nil {
		return err
	}
	cfg.SecretKey = secret

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	switch cfg.DBDriver {
	case "sqlite":
		if strings.TrimSpace(cfg.DBPath) == "" {
			return errors.New("DB_PATH is required for sqlite")
		}
	case "postgres", "postgresql":
		cfg.DBDriver = "postgres"
		if strings.TrimSpace(cfg.DBDSN) == "" {
			return errors.New("DB_DSN is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	cfg.PaymentCurrency = strings.ToUpper(strings.TrimSpace(cfg.PaymentCurrency))
	if len(cfg.PaymentCurrency) != 3 {
		return fmt.Errorf("PAYMENT_CURRENCY must be a 3-letter code, got %q", cfg.PaymentCurrency)
	}
	if cfg.RateLimitPerSecond <= 0 || cfg.RateLimitBurst <= 0 {
		return errors.New("rate limit settings must be positive")
	}
	return nil
}

// DatabaseDSN returns the connection string for the configured driver.
func (cfg Config) DatabaseDSN() string {
	if cfg.DBDriver == "postgres" {
		return cfg.DBDSN
	}
	return cfg.DBPath
}

// PaymentsEnabled reports whether a checkout gateway is configured.
func (cfg Config) PaymentsEnabled() bool {
	return strings.TrimSpace(cfg.PaymentGatewayURL) != "" && strings.TrimSpace(cfg.PaymentGatewayAPIKey) != ""
}

// Location resolves the configured timezone, falling back to UTC.
func (cfg Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(strings.TrimSpace(cfg.Timezone))
	if err != nil {
		return time.UTC, fmt.Errorf("invalid TZ %q: %w", cfg.Timezone, err)
	}
	return location, nil
}

func ValidateSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}
