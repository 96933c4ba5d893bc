package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"ordering/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string

	DBHost            string
	DBPort            int
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	KafkaBrokers          []string
	KafkaOrderEventsTopic string

	OtelExporterEndpoint string
	OtelExporterInsecure bool
	ServiceName          string
	ServiceVersion       string

	// OrderExpiryTTL of zero disables the expiry job.
	OrderExpirySchedule string
	OrderExpiryTTL      time.Duration
}

// LoadConfig reads envFile when it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "ordering")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_ORDER_EVENTS_TOPIC", "order-events")
	v.SetDefault("OTEL_EXPORTER_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_INSECURE", true)
	v.SetDefault("SERVICE_NAME", "ordering")
	v.SetDefault("SERVICE_VERSION", "dev")
	v.SetDefault("ORDER_EXPIRY_SCHEDULE", "0 */5 * * * *")
	v.SetDefault("ORDER_EXPIRY_TTL", 0)

	cfg := Config{
		HTTPPort:              v.GetString("HTTP_PORT"),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetInt("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		DBMaxOpenConns:        v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:        v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime:     v.GetDuration("DB_CONN_MAX_LIFETIME"),
		KafkaBrokers:          splitList(v.GetString("KAFKA_BROKERS")),
		KafkaOrderEventsTopic: v.GetString("KAFKA_ORDER_EVENTS_TOPIC"),
		OtelExporterEndpoint:  v.GetString("OTEL_EXPORTER_ENDPOINT"),
		OtelExporterInsecure:  v.GetBool("OTEL_EXPORTER_INSECURE"),
		ServiceName:           v.GetString("SERVICE_NAME"),
		ServiceVersion:        v.GetString("SERVICE_VERSION"),
		OrderExpirySchedule:   v.GetString("ORDER_EXPIRY_SCHEDULE"),
		OrderExpiryTTL:        v.GetDuration("ORDER_EXPIRY_TTL"),
	}

	if cfg.DBPort <= 0 {
		return Config{}, fmt.Errorf("DB_PORT must be positive, got %q", v.GetString("DB_PORT"))
	}
	if cfg.OrderExpiryTTL < 0 {
		return Config{}, fmt.Errorf("ORDER_EXPIRY_TTL must not be negative, got %s", cfg.OrderExpiryTTL)
	}
	return cfg, nil
}

func (c Config) Postgres() postgres.ConnConfig {
	return postgres.ConnConfig{
		Host:            c.DBHost,
		Port:            c.DBPort,
		User:            c.DBUser,
		Password:        c.DBPassword,
		DBName:          c.DBName,
		SSLMode:         c.DBSslMode,
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
