package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/nfrund/ytu/internal/pubsub"
)

// Config holds all configuration for the application.
type Config struct {
	Addr          string `toml:"addr" validate:"required,hostname_port"`
	SessionSecret string `toml:"session_secret" validate:"required,min=16"`
	// CatalogPath points at an external catalog.yaml. Empty serves the
	// embedded catalog.
	CatalogPath string `toml:"catalog_path"`
	HotReload   bool   `toml:"hot_reload"`
	// Debounce is the resize debounce of dimension observers.
	Debounce  Duration `toml:"debounce" validate:"gte=0"`
	LogFormat string   `toml:"log_format" validate:"oneof=text json"`
	LogLevel  string   `toml:"log_level" validate:"oneof=debug info warn error"`
	// MaxSessions caps concurrent live sessions; 0 is unlimited.
	MaxSessions int `toml:"max_sessions" validate:"gte=0"`

	Tracing pubsub.TracingConfig `toml:"tracing"`
}

// Duration lets TOML files write durations as strings ("200ms").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Addr:          ":8080",
		SessionSecret: "ytu-development-secret",
		Debounce:      Duration(200 * time.Millisecond),
		LogFormat:     "text",
		LogLevel:      "info",
		Tracing:       pubsub.DefaultTracingConfig(),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// New loads configuration: defaults, then the TOML file (path argument or
// YTU_CONFIG), then environment variables. A .env file is loaded first when
// present.
func New(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv("YTU_CONFIG")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("YTU_ADDR", &c.Addr)
	str("YTU_SESSION_SECRET", &c.SessionSecret)
	str("YTU_CATALOG_PATH", &c.CatalogPath)
	str("LOG_FORMAT", &c.LogFormat)
	str("LOG_LEVEL", &c.LogLevel)
	str("YTU_ZIPKIN_URL", &c.Tracing.ZipkinURL)

	var errs []error
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}
	boolean("YTU_HOT_RELOAD", &c.HotReload)
	boolean("YTU_TRACING", &c.Tracing.Enabled)

	if v, ok := lookup("YTU_DEBOUNCE"); ok && v != "" {
		if err := c.Debounce.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("YTU_DEBOUNCE: %w", err))
		}
	}
	if v, ok := lookup("YTU_MAX_SESSIONS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("YTU_MAX_SESSIONS: %w", err))
		} else {
			c.MaxSessions = n
		}
	}
	return errors.Join(errs...)
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.HotReload && c.CatalogPath == "" {
		return errors.New("invalid config: hot_reload needs catalog_path")
	}
	return nil
}
