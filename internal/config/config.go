package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Config holds runtime settings read from the environment (and an optional .env file)
type Config struct {
	Language          string        `env:"PHONEFINDER_LANGUAGE" envDefault:"en"`
	SpamNoise         bool          `env:"PHONEFINDER_SPAM_NOISE" envDefault:"false"`
	HighSpamThreshold float64       `env:"PHONEFINDER_HIGH_SPAM_THRESHOLD" envDefault:"0.7"`
	SeedDemo          bool          `env:"PHONEFINDER_SEED_DEMO" envDefault:"true"`
	ExportDir         string        `env:"PHONEFINDER_EXPORT_DIR" envDefault:"."`
	MetadataCacheTTL  time.Duration `env:"PHONEFINDER_METADATA_CACHE_TTL" envDefault:"10m"`
	LogLevel          string        `env:"PHONEFINDER_LOG_LEVEL" envDefault:"warn"`
	LogFile           string        `env:"PHONEFINDER_LOG_FILE"`
}

// Load reads .env if present (silently ignored if not found) and parses the environment
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that struct tags cannot express
func (c Config) Validate() error {
	if c.HighSpamThreshold < 0 || c.HighSpamThreshold > 1 {
		return fmt.Errorf("PHONEFINDER_HIGH_SPAM_THRESHOLD must be within [0,1], got %v", c.HighSpamThreshold)
	}
	if c.MetadataCacheTTL < 0 {
		return fmt.Errorf("PHONEFINDER_METADATA_CACHE_TTL must not be negative, got %v", c.MetadataCacheTTL)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("PHONEFINDER_LOG_LEVEL: %w", err)
	}
	return nil
}

// NewLogger builds the application logger. The returned closer releases the log file, if any.
func (c Config) NewLogger() (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "phonefinder",
	})
	return logger, closer, nil
}
