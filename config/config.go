package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds application configuration, read from the environment.
type Config struct {
	DatabaseURL  string        `env:"DATABASE_URL"`
	Port         string        `env:"PORT"          envDefault:"5000"`
	StoreKind    string        `env:"STORE_KIND"    envDefault:"postgres"`
	QueryTimeout time.Duration `env:"QUERY_TIMEOUT" envDefault:"30s"`

	LogLevel      string `env:"LOG_LEVEL"       envDefault:"info"`
	LogColored    bool   `env:"LOG_COLORED"     envDefault:"true"`
	LogTimeFormat string `env:"LOG_TIME_FORMAT" envDefault:"15:04:05"`

	ImportFile      string `env:"IMPORT_FILE"       envDefault:"./data/sales.csv"`
	ImportBatchSize int    `env:"IMPORT_BATCH_SIZE" envDefault:"1000"`
	ImportStrict    bool   `env:"IMPORT_STRICT"     envDefault:"false"`
	ImportDelimiter string `env:"IMPORT_DELIMITER"  envDefault:","`

	PushgatewayURL string `env:"PUSHGATEWAY_URL"`
}

// Load reads a .env file if present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded, using environment variables")
	}
	return FromEnv()
}

// FromEnv parses and validates the environment without touching .env files.
func FromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that have no usable default.
func (c Config) Validate() error {
	var errs []error
	switch c.StoreKind {
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is not set"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_KIND %q", c.StoreKind))
	}
	if c.ImportBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("IMPORT_BATCH_SIZE must be > 0, got %d", c.ImportBatchSize))
	}
	if utf8.RuneCountInString(c.ImportDelimiter) != 1 {
		errs = append(errs, fmt.Errorf("IMPORT_DELIMITER must be a single character, got %q", c.ImportDelimiter))
	}
	return errors.Join(errs...)
}

// Delimiter returns the import field separator.
func (c Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.ImportDelimiter)
	return r
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
