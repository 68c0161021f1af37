package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr enables the redis locker and notification publisher. Empty
	// means a single replica with in-process locks and logged notifications.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string
	LockTTL       time.Duration

	JWTSecret string

	GatewayBaseURL     string
	GatewayAccessToken string
	GatewayCurrency    string
	GatewayTimeout     time.Duration

	// SiteURL is the storefront the gateway redirects buyers back to.
	SiteURL string
	// PublicURL is where the gateway reaches this service's webhook.
	PublicURL string

	FiscalBaseURL string
	FiscalAPIKey  string
	FiscalTimeout time.Duration

	EmitterTaxID     string
	EmitterLegalName string
	EmitterActivity  string
	EmitterAddress   string
	DocumentTimeZone string

	SnowflakeNode int64

	JobTimeout            time.Duration
	InvoiceJobSchedule    string
	InvoiceJobBatchSize   int
	InvoiceJobMaxAttempts int
	ReplayJobSchedule     string
	ReplayJobBatchSize    int
	ReplayJobMaxAttempts  int
}

// DSN is the libpq connection string of the service database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment, after loading .env when the file exists.
// Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	r := envReader{}
	config := Config{
		HTTPPort: r.str("HTTP_PORT", "8080"),
		LogLevel: r.str("LOG_LEVEL", "info"),

		DBHost:     r.str("DB_HOST", "localhost"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.str("DB_USER", "checkout"),
		DBPassword: r.str("DB_PASSWORD", ""),
		DBName:     r.str("DB_NAME", "checkout"),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),

		RedisAddr:     r.str("REDIS_ADDR", ""),
		RedisPassword: r.str("REDIS_PASSWORD", ""),
		RedisDB:       r.integer("REDIS_DB", 0),
		RedisChannel:  r.str("REDIS_NOTIFICATION_CHANNEL", "checkout.notifications"),
		LockTTL:       r.duration("LOCK_TTL", 30*time.Second),

		JWTSecret: r.str("JWT_SECRET", ""),

		GatewayBaseURL:     r.str("MERCADOPAGO_BASE_URL", "https://api.mercadopago.com"),
		GatewayAccessToken: r.str("MERCADOPAGO_ACCESS_TOKEN", ""),
		GatewayCurrency:    r.str("MERCADOPAGO_CURRENCY", "CLP"),
		GatewayTimeout:     r.duration("MERCADOPAGO_TIMEOUT", 10*time.Second),

		SiteURL:   strings.TrimRight(r.str("SITE_URL", "http://localhost:3000"), "/"),
		PublicURL: strings.TrimRight(r.str("PUBLIC_URL", "http://localhost:8080"), "/"),

		FiscalBaseURL: r.str("FISCAL_BASE_URL", ""),
		FiscalAPIKey:  r.str("FISCAL_API_KEY", ""),
		FiscalTimeout: r.duration("FISCAL_TIMEOUT", 15*time.Second),

		EmitterTaxID:     r.str("EMITTER_TAX_ID", ""),
		EmitterLegalName: r.str("EMITTER_LEGAL_NAME", ""),
		EmitterActivity:  r.str("EMITTER_ACTIVITY", ""),
		EmitterAddress:   r.str("EMITTER_ADDRESS", ""),
		DocumentTimeZone: r.str("DOCUMENT_TIME_ZONE", "America/Santiago"),

		SnowflakeNode: int64(r.integer("SNOWFLAKE_NODE", 1)),

		JobTimeout:            r.duration("JOB_TIMEOUT", 2*time.Minute),
		InvoiceJobSchedule:    r.str("INVOICE_JOB_SCHEDULE", "*/30 * * * * *"),
		InvoiceJobBatchSize:   r.integer("INVOICE_JOB_BATCH_SIZE", 50),
		InvoiceJobMaxAttempts: r.integer("INVOICE_JOB_MAX_ATTEMPTS", 20),
		ReplayJobSchedule:     r.str("REPLAY_JOB_SCHEDULE", "0 * * * * *"),
		ReplayJobBatchSize:    r.integer("REPLAY_JOB_BATCH_SIZE", 50),
		ReplayJobMaxAttempts:  r.integer("REPLAY_JOB_MAX_ATTEMPTS", 10),
	}

	if err := errors.Join(append(r.errs, config.validate())...); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) validate() error {
	var problems []error
	required := map[string]string{
		"JWT_SECRET":               c.JWTSecret,
		"MERCADOPAGO_ACCESS_TOKEN": c.GatewayAccessToken,
		"FISCAL_BASE_URL":          c.FiscalBaseURL,
		"EMITTER_TAX_ID":           c.EmitterTaxID,
		"EMITTER_LEGAL_NAME":       c.EmitterLegalName,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, fmt.Errorf("%s is required", key))
		}
	}
	return errors.Join(problems...)
}

// envReader collects parse errors so every bad variable is reported at once.
type envReader struct {
	errs []error
}

func (r *envReader) str(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func (r *envReader) integer(key string, fallback int) int {
	value := r.str(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return parsed
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	value := r.str(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return parsed
}
