package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"orderflow/internal/jobs"
	"orderflow/internal/pkg/errs"

	"github.com/joho/godotenv"
)

// Notifier kinds.
const (
	NotifierLog   = "log"
	NotifierRedis = "redis"
)

const (
	defaultHTTPPort            = "8080"
	defaultDBSslMode           = "disable"
	defaultRelayBatchSize      = 50
	defaultMaxDeliveryAttempts = 5
	defaultLogLevel            = "info"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisURL     string
	NotifierKind string

	RelaySchedule       string
	RelayBatchSize      int
	MaxDeliveryAttempts int

	LogLevel string
}

// LoadConfig reads envFile into the process environment, if it exists, and
// builds the Config from the environment. Variables already set in the
// environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	relayBatchSize, batchErr := intVariable("RELAY_BATCH_SIZE", defaultRelayBatchSize)
	maxDeliveryAttempts, attemptsErr := intVariable("MAX_DELIVERY_ATTEMPTS", defaultMaxDeliveryAttempts)
	if err := errors.Join(batchErr, attemptsErr); err != nil {
		return Config{}, err
	}

	config := Config{
		HTTPPort:            variable("HTTP_PORT", defaultHTTPPort),
		DBHost:              variable("DB_HOST", ""),
		DBPort:              variable("DB_PORT", ""),
		DBUser:              variable("DB_USER", ""),
		DBPassword:          variable("DB_PASSWORD", ""),
		DBName:              variable("DB_NAME", ""),
		DBSslMode:           variable("DB_SSLMODE", defaultDBSslMode),
		RedisURL:            variable("REDIS_URL", ""),
		NotifierKind:        variable("NOTIFIER", NotifierLog),
		RelaySchedule:       variable("RELAY_SCHEDULE", jobs.DefaultRelaySchedule),
		RelayBatchSize:      relayBatchSize,
		MaxDeliveryAttempts: maxDeliveryAttempts,
		LogLevel:            variable("LOG_LEVEL", defaultLogLevel),
	}
	return config, config.Validate()
}

func variable(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func intVariable(key string, fallback int) (int, error) {
	raw := variable(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return value, nil
}

func (c Config) Validate() error {
	var checks []error
	for key, value := range map[string]string{
		"HTTP_PORT":  c.HTTPPort,
		"DB_HOST":    c.DBHost,
		"DB_PORT":    c.DBPort,
		"DB_USER":    c.DBUser,
		"DB_NAME":    c.DBName,
		"DB_SSLMODE": c.DBSslMode,
		"NOTIFIER":   c.NotifierKind,
		"LOG_LEVEL":  c.LogLevel,
	} {
		if value == "" {
			checks = append(checks, errs.NewValueIsRequiredError(key))
		}
	}

	switch c.NotifierKind {
	case NotifierLog, "":
	case NotifierRedis:
		if c.RedisURL == "" {
			checks = append(checks, errs.NewValueIsRequiredErrorWithCause("REDIS_URL",
				errors.New("the redis notifier needs a URL")))
		}
	default:
		checks = append(checks, errs.NewValueIsInvalidErrorWithCause("NOTIFIER",
			fmt.Errorf("%q is not one of %s, %s", c.NotifierKind, NotifierLog, NotifierRedis)))
	}

	if c.RelayBatchSize < 1 {
		checks = append(checks, errs.NewValueIsOutOfRangeError("RELAY_BATCH_SIZE", c.RelayBatchSize, 1, "unbounded"))
	}
	if c.MaxDeliveryAttempts < 1 {
		checks = append(checks,
			errs.NewValueIsOutOfRangeError("MAX_DELIVERY_ATTEMPTS", c.MaxDeliveryAttempts, 1, "unbounded"))
	}
	if c.LogLevel != "" {
		if _, err := c.SlogLevel(); err != nil {
			checks = append(checks, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
		}
	}

	return errors.Join(checks...)
}

// DSN is accepted by both the pgx driver behind gorm and lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

// NewLogger writes JSON records to stdout at the configured level.
func (c Config) NewLogger() *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
