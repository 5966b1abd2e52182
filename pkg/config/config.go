package config

import (
	"errors"
	"fmt"
	"time"

	"olistInsights/domain"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Dataset  DatasetConfig
}

type AppConfig struct {
	Name        string `env:"APP_NAME" env-default:"Olist Insights"`
	Version     string `env:"APP_VERSION" env-default:"1.0.0"`
	Environment string `env:"APP_ENV" env-default:"development"`
}

type ServerConfig struct {
	Port           string        `env:"PORT" env-default:"8080"`
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" env-default:"30s"`
}

type DatabaseConfig struct {
	Host          string `env:"DB_HOST" env-default:"localhost"`
	Port          string `env:"DB_PORT" env-default:"5432"`
	User          string `env:"DB_USER" env-default:"postgres"`
	Password      string `env:"DB_PASSWORD"`
	Name          string `env:"DB_NAME" env-default:"olist"`
	SSLMode       string `env:"DB_SSL_MODE" env-default:"disable"`
	MigrationsDir string `env:"DB_MIGRATIONS_DIR" env-default:"migrations"`
	BatchSize     int    `env:"DB_BATCH_SIZE" env-default:"1000"`
}

// DSN renders the libpq keyword form accepted by both gorm and migrate.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// URL renders the postgres:// form used by golang-migrate.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// JWTConfig guards the report API. An empty secret disables authentication.
type JWTConfig struct {
	SecretKey string `env:"JWT_SECRET"`
}

type RedisConfig struct {
	RedisHost     string        `env:"REDIS_HOST"`
	RedisPort     string        `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`
	ReportTTL     time.Duration `env:"REDIS_REPORT_TTL" env-default:"1h"`
}

// Enabled reports whether a Redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.RedisHost != ""
}

type DatasetConfig struct {
	Dir        string `env:"DATASET_DIR" env-default:"data"`
	Source     string `env:"DATASET_SOURCE" env-default:"csv"`
	Engine     string `env:"REPORT_ENGINE" env-default:"memory"`
	TopN       int    `env:"REPORT_TOP_N" env-default:"10"`
	MinReviews int    `env:"REPORT_MIN_REVIEWS" env-default:"50"`
	Parallel   bool   `env:"REPORT_PARALLEL" env-default:"false"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "local", "test", "staging", "production":
	default:
		return fmt.Errorf("unknown app environment %q", c.App.Environment)
	}

	if c.Dataset.TopN <= 0 {
		return errors.New("report top n must be greater than 0")
	}

	if c.Dataset.MinReviews <= 0 {
		return errors.New("report min reviews must be greater than 0")
	}

	if c.Database.BatchSize <= 0 {
		return errors.New("database batch size must be greater than 0")
	}

	return nil
}

// MetricOptions are the ranked-metric options from the dataset section.
func (c *Config) MetricOptions() domain.MetricOptions {
	return domain.MetricOptions{
		TopN:       c.Dataset.TopN,
		MinReviews: c.Dataset.MinReviews,
	}
}

// RequireDatabase is checked only by commands that talk to Postgres.
func (c *Config) RequireDatabase() error {
	if c.Database.Password == "" {
		return errors.New("missing database password")
	}

	return nil
}
