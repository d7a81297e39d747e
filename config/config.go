// Package config defines the amortizer service configuration and its
// validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Config is the root configuration. Fields come from a TOML file and may be
// overridden by AMORTIZER_* environment variables.
type Config struct {
	LogLevel  string          `toml:"log_level"`
	Server    ServerConfig    `toml:"server"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Cache     CacheConfig     `toml:"cache"`
	Redis     RedisConfig     `toml:"redis"`
	Curves    CurvesConfig    `toml:"curves"`
	Limits    LimitsConfig    `toml:"limits"`
}

type ServerConfig struct {
	Port            int      `toml:"port"`
	ReadTimeout     duration `toml:"read_timeout"`
	WriteTimeout    duration `toml:"write_timeout"`
	IdleTimeout     duration `toml:"idle_timeout"`
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// RateLimitConfig allows Capacity requests per client per Window.
type RateLimitConfig struct {
	Capacity int      `toml:"capacity"`
	Window   duration `toml:"window"`
}

// CacheConfig selects where computed schedules are cached.
type CacheConfig struct {
	Backend string   `toml:"backend"` // memory | redis
	TTL     duration `toml:"ttl"`
}

type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
	KeyPrefix  string `toml:"key_prefix"`
}

// CurvesConfig points at the forward curve tables loaded at startup. An
// empty ReloadCron disables periodic reloading.
type CurvesConfig struct {
	OneMonth   string `toml:"one_month"`
	ThreeMonth string `toml:"three_month"`
	ReloadCron string `toml:"reload_cron"`
}

type LimitsConfig struct {
	MaxNotional          float64 `toml:"max_notional"`
	MaxRatePercent       float64 `toml:"max_rate_percent"`
	MaxAmortizationYears int     `toml:"max_amortization_years"`
}

// duration wraps time.Duration so TOML strings like "10m" decode.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config that runs a local server with an in-memory cache
// and no curve files.
func Defaults() Config {
	return Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     duration{15 * time.Second},
			WriteTimeout:    duration{15 * time.Second},
			IdleTimeout:     duration{60 * time.Second},
			ShutdownTimeout: duration{10 * time.Second},
		},
		RateLimit: RateLimitConfig{
			Capacity: 60,
			Window:   duration{time.Minute},
		},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     duration{10 * time.Minute},
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			PoolSize:   10,
			MaxRetries: 3,
			KeyPrefix:  "amortizer:",
		},
		Curves: CurvesConfig{
			ReloadCron: "0 0 6 * * *",
		},
		Limits: LimitsConfig{
			MaxNotional:          1_000_000_000,
			MaxRatePercent:       1000,
			MaxAmortizationYears: 50,
		},
	}
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validBackends = map[string]bool{
	"memory": true,
	"redis":  true,
}

// Validate returns a combined error describing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout.Duration <= 0 || c.Server.WriteTimeout.Duration <= 0 {
		errs = append(errs, "server: read_timeout and write_timeout must be positive")
	}

	if c.RateLimit.Capacity < 1 {
		errs = append(errs, "rate_limit: capacity must be >= 1")
	}
	if c.RateLimit.Window.Duration <= 0 {
		errs = append(errs, "rate_limit: window must be positive")
	}

	if !validBackends[strings.ToLower(c.Cache.Backend)] {
		errs = append(errs, fmt.Sprintf("cache: unknown backend %q (valid: memory, redis)", c.Cache.Backend))
	}
	if c.Cache.TTL.Duration <= 0 {
		errs = append(errs, "cache: ttl must be positive")
	}
	if strings.EqualFold(c.Cache.Backend, "redis") {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty when cache.backend is redis")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	}

	if c.Curves.ReloadCron != "" {
		if _, err := cron.NewParser(cronFields).Parse(c.Curves.ReloadCron); err != nil {
			errs = append(errs, fmt.Sprintf("curves: invalid reload_cron %q: %v", c.Curves.ReloadCron, err))
		}
	}

	if c.Limits.MaxNotional <= 0 {
		errs = append(errs, "limits: max_notional must be positive")
	}
	if c.Limits.MaxRatePercent <= 0 {
		errs = append(errs, "limits: max_rate_percent must be positive")
	}
	if c.Limits.MaxAmortizationYears < 1 {
		errs = append(errs, "limits: max_amortization_years must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// cronFields matches cron.WithSeconds, which the curve reloader uses.
const cronFields = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.Redis.Password != "" {
		c.Redis.Password = "***"
	}
	return c
}
