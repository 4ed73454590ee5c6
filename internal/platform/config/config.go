// Package config loads process configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"todo_backend/internal/platform/password"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config is the full server configuration.
type Config struct {
	Port string `env:"PORT" envDefault:"3000"`

	JWTSecret    string   `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiresIn TokenTTL `env:"JWT_EXPIRES_IN" envDefault:"1d"`
	BcryptCost   int      `env:"BCRYPT_COST" envDefault:"10"`

	StoreDriver      string        `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseDSN      string        `env:"DATABASE_DSN"`
	DBConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"60s"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// TokenTTL is a token lifetime. Besides Go durations ("90m") it accepts a
// day count ("7d") and bare seconds ("3600").
type TokenTTL time.Duration

// Duration returns the lifetime as a time.Duration.
func (t TokenTTL) Duration() time.Duration {
	return time.Duration(t)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TokenTTL) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	d, err := parseTTL(s)
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("token lifetime must be positive: %q", s)
	}
	*t = TokenTTL(d)
	return nil
}

func parseTTL(s string) (time.Duration, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.ParseInt(days, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q: %w", s, err)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid token lifetime %q: %w", s, err)
	}
	return d, nil
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that struct tags cannot express.
func (c Config) Validate() error {
	var errs []error

	if c.BcryptCost < password.MinCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be at least %d, got %d", password.MinCost, c.BcryptCost))
	}

	switch c.StoreDriver {
	case StoreMemory:
	case StoreSQLite, StorePostgres:
		if c.DatabaseDSN == "" {
			errs = append(errs, fmt.Errorf("DATABASE_DSN is required for STORE_DRIVER=%s", c.StoreDriver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
