package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// - optional secrets (provider key, cron secret hash) are checked where they are used,
//   so a missing value surfaces as a 503 on the affected endpoint instead of a boot failure
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Booking BookingConfig
	Payment PaymentConfig
	Jobs    JobsConfig
	Mail    MailConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Idempotent-Replayed"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Africa/Lagos"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"3600"` // 1*60*60
	// File enables a rotating log file next to stdout when set.
	File       string `envconfig:"LOG_FILE"`
	MaxSizeMB  int    `envconfig:"LOG_FILE_MAX_SIZE_MB" default:"50"`
	MaxBackups int    `envconfig:"LOG_FILE_MAX_BACKUPS" default:"5"`
}

type JWTConfig struct {
	Secret     string `envconfig:"JWT_SECRET" required:"true"`
	CookieName string `envconfig:"JWT_COOKIE_NAME" default:"access_token"`
}

type BookingConfig struct {
	HoldTTL          time.Duration `envconfig:"BOOKING_HOLD_TTL" default:"30m"`
	DefaultTimezone  string        `envconfig:"BOOKING_DEFAULT_TIMEZONE" default:"Africa/Lagos"`
	IdempotencyTTL   time.Duration `envconfig:"BOOKING_IDEMPOTENCY_TTL" default:"24h"`
	AvailabilitySpan int           `envconfig:"BOOKING_AVAILABILITY_MAX_DAYS" default:"730"`
}

type PaymentConfig struct {
	Provider      string        `envconfig:"PAYMENT_PROVIDER" default:"paystack"`
	SecretKey     string        `envconfig:"PAYSTACK_SECRET_KEY"`
	BaseURL       string        `envconfig:"PAYSTACK_BASE_URL" default:"https://api.paystack.co"`
	CallbackURL   string        `envconfig:"PAYSTACK_CALLBACK_URL"`
	Timeout       time.Duration `envconfig:"PAYSTACK_TIMEOUT" default:"10s"`
	BreakerTrips  uint32        `envconfig:"PAYSTACK_BREAKER_TRIPS" default:"5"`
	BreakerWindow time.Duration `envconfig:"PAYSTACK_BREAKER_OPEN_FOR" default:"30s"`
}

type JobsConfig struct {
	SecretHash        string        `envconfig:"CRON_SECRET_HASH"`
	ExpireBatchSize   int           `envconfig:"JOBS_EXPIRE_BATCH_SIZE" default:"100"`
	ReconcileBatch    int           `envconfig:"JOBS_RECONCILE_BATCH_SIZE" default:"50"`
	ReconcileSLA      time.Duration `envconfig:"JOBS_RECONCILE_SLA" default:"15m"`
	ReconcileLookback time.Duration `envconfig:"JOBS_RECONCILE_LOOKBACK" default:"72h"`
	VerifyTimeout     time.Duration `envconfig:"JOBS_VERIFY_TIMEOUT" default:"8s"`
	PayoutBatchSize   int           `envconfig:"JOBS_PAYOUT_BATCH_SIZE" default:"100"`
	NotifyBatchSize   int           `envconfig:"JOBS_NOTIFY_BATCH_SIZE" default:"50"`
	NotifyMaxAttempts int32         `envconfig:"JOBS_NOTIFY_MAX_ATTEMPTS" default:"5"`
}

type MailConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	User     string `envconfig:"SMTP_USER"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM" default:"bookings@shortlet.local"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c MailConfig) Enabled() bool {
	return c.Host != ""
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Africa/Lagos",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 3600,
		},
		JWT: JWTConfig{
			Secret:     "test-secret",
			CookieName: "access_token",
		},
		Booking: BookingConfig{
			HoldTTL:          30 * time.Minute,
			DefaultTimezone:  "Africa/Lagos",
			IdempotencyTTL:   24 * time.Hour,
			AvailabilitySpan: 730,
		},
		Payment: PaymentConfig{
			Provider:      "paystack",
			BaseURL:       "http://127.0.0.1:0",
			Timeout:       2 * time.Second,
			BreakerTrips:  5,
			BreakerWindow: time.Second,
		},
		Jobs: JobsConfig{
			ExpireBatchSize:   100,
			ReconcileBatch:    50,
			ReconcileSLA:      15 * time.Minute,
			ReconcileLookback: 72 * time.Hour,
			VerifyTimeout:     time.Second,
			PayoutBatchSize:   100,
			NotifyBatchSize:   50,
			NotifyMaxAttempts: 5,
		},
	}
}
