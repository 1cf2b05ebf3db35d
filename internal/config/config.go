package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Google GoogleConfig `yaml:"google" mapstructure:"google"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// GoogleConfig holds Google Maps Platform credentials and endpoints.
type GoogleConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	PlacesURL   string  `yaml:"places_url" mapstructure:"places_url"`
	GeocodeURL  string  `yaml:"geocode_url" mapstructure:"geocode_url"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the per-request HTTP timeout. Zero means none.
func (g GoogleConfig) Timeout() time.Duration {
	if g.TimeoutSecs <= 0 {
		return 0
	}
	return time.Duration(g.TimeoutSecs) * time.Second
}

// SearchConfig configures the nearby venue search.
type SearchConfig struct {
	Keyword     string `yaml:"keyword" mapstructure:"keyword"`
	PageDelayMS int    `yaml:"page_delay_ms" mapstructure:"page_delay_ms"`
}

// PageDelay returns the wait between result pages.
func (s SearchConfig) PageDelay() time.Duration {
	return time.Duration(s.PageDelayMS) * time.Millisecond
}

// StoreConfig configures the run history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, config file and environment.
func Load() (*Config, error) {
	// .env is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: read .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("VENUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("google.key", "")
	v.SetDefault("google.places_url", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("google.geocode_url", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("google.rate_limit", 0.0)
	v.SetDefault("google.timeout_secs", 0)
	v.SetDefault("search.keyword", "restaurant")
	v.SetDefault("search.page_delay_ms", 2000)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "venues.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode needs before it runs.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "find":
		if c.Google.Key == "" {
			errs = append(errs, "google.key is required (VENUE_GOOGLE_KEY)")
		}
		if c.Search.PageDelayMS < 0 {
			errs = append(errs, "search.page_delay_ms must be >= 0")
		}
		if c.Google.RateLimit < 0 {
			errs = append(errs, "google.rate_limit must be >= 0")
		}
	case "runs":
		if c.Store.Driver == "none" {
			errs = append(errs, "run history is disabled (store.driver is none)")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Store.Driver {
	case "sqlite", "postgres", "none":
	default:
		errs = append(errs, fmt.Sprintf("store.driver %q is not supported", c.Store.Driver))
	}
	if c.Store.Driver == "postgres" && c.Store.DatabaseURL == "" {
		errs = append(errs, "store.database_url is required for postgres")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
