package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverBadger   = "badger"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	StoreDriver string
	BadgerPath  string

	RabbitMQURL      string
	RabbitMQExchange string

	StatsLocation         *time.Location
	PackingSessionTTL     time.Duration
	PackingExpirySchedule string

	LogLevel slog.Level
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "fulfillment")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("BADGER_PATH", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", rabbitmq.DefaultExchange)
	v.SetDefault("STATS_TIMEZONE", "UTC")
	v.SetDefault("PACKING_SESSION_TTL", "0")
	v.SetDefault("PACKING_EXPIRY_SCHEDULE", jobs.DefaultExpirySchedule)
	v.SetDefault("LOG_LEVEL", "info")
}

// LoadConfig reads envFiles (missing files are skipped) and then the process
// environment, which takes precedence.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		HTTPPort:              v.GetString("HTTP_PORT"),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		StoreDriver:           strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		BadgerPath:            v.GetString("BADGER_PATH"),
		RabbitMQURL:           v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:      v.GetString("RABBITMQ_EXCHANGE"),
		PackingExpirySchedule: v.GetString("PACKING_EXPIRY_SCHEDULE"),
	}

	var err error
	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverBadger:
	default:
		err = errors.Join(err, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q",
			StoreDriverPostgres, StoreDriverBadger, cfg.StoreDriver))
	}

	loc, locErr := time.LoadLocation(v.GetString("STATS_TIMEZONE"))
	if locErr != nil {
		err = errors.Join(err, fmt.Errorf("STATS_TIMEZONE: %w", locErr))
	}
	cfg.StatsLocation = loc

	ttl, ttlErr := time.ParseDuration(v.GetString("PACKING_SESSION_TTL"))
	switch {
	case ttlErr != nil:
		err = errors.Join(err, fmt.Errorf("PACKING_SESSION_TTL: %w", ttlErr))
	case ttl < 0:
		err = errors.Join(err, fmt.Errorf("PACKING_SESSION_TTL must not be negative, got %s", ttl))
	}
	cfg.PackingSessionTTL = ttl

	if levelErr := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); levelErr != nil {
		err = errors.Join(err, fmt.Errorf("LOG_LEVEL: %w", levelErr))
	}

	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func (c Config) Jobs() jobs.Config {
	return jobs.Config{
		ExpirySchedule: c.PackingExpirySchedule,
		SessionTTL:     c.PackingSessionTTL,
	}
}
