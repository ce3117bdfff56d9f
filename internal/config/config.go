package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string  `mapstructure:"-"`   // Telegram API token loaded from environment
	API              API     `mapstructure:"api"`
	Capture          Capture `mapstructure:"capture"`
	Session          Session `mapstructure:"session"`
	DB               DB      `mapstructure:"database"`
	Metrics          Metrics `mapstructure:"metrics"`
}

// API describes the remote quiz service.
type API struct {
	BaseURL       string        `mapstructure:"-"`              // loaded from QUIZ_API_URL
	Timeout       time.Duration `mapstructure:"timeout"`        // deadline for plain CRUD calls
	SubmitTimeout time.Duration `mapstructure:"submit_timeout"` // deadline for one answer upload
}

// Capture configures the camera backend and the per-answer sampling.
type Capture struct {
	Count       int           `mapstructure:"count"`        // frames per answered question
	Interval    time.Duration `mapstructure:"interval"`     // delay between two capture attempts
	Backend     string        `mapstructure:"backend"`      // "snapshot", "directory" or "none"
	SnapshotURL string        `mapstructure:"snapshot_url"` // still-image URL for the snapshot backend
	Directory   string        `mapstructure:"directory"`    // frames directory for the directory backend
}

// Session configures the lifetime of in-memory quiz sessions.
type Session struct {
	IdleTTL   time.Duration `mapstructure:"idle_ttl"`   // sessions idle longer than this are abandoned
	SweepSpec string        `mapstructure:"sweep_spec"` // cron spec of the idle sweep
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Metrics configures the Prometheus endpoint. Empty Addr disables it.
type Metrics struct {
	Addr string `mapstructure:"addr"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// A missing .env is fine, real deployments pass variables directly.
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("api.submit_timeout", "10s")
	v.SetDefault("capture.count", 3)
	v.SetDefault("capture.interval", "1s")
	v.SetDefault("capture.backend", "none")
	v.SetDefault("capture.snapshot_url", "")
	v.SetDefault("capture.directory", "")
	v.SetDefault("session.idle_ttl", "2h")
	v.SetDefault("session.sweep_spec", "@every 1m")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("metrics.addr", ":9090")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("quiz_api_url", "QUIZ_API_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.API.BaseURL = strings.TrimRight(v.GetString("quiz_api_url"), "/")
	if cfg.API.BaseURL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Capture.Backend {
	case "none":
	case "snapshot":
		if c.Capture.SnapshotURL == "" {
			return errors.New("capture.snapshot_url is required for the snapshot backend")
		}
	case "directory":
		if c.Capture.Directory == "" {
			return errors.New("capture.directory is required for the directory backend")
		}
	default:
		return fmt.Errorf("unknown capture backend: %q", c.Capture.Backend)
	}

	if c.Capture.Count < 0 {
		return fmt.Errorf("capture.count must not be negative, got %d", c.Capture.Count)
	}

	return nil
}
