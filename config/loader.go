package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load merges the TOML file at path over Defaults and applies AMORTIZER_*
// environment overrides. A missing file keeps the defaults. The result is
// not validated; call Validate.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.LogLevel, "AMORTIZER_LOG_LEVEL")

	setInt(&cfg.Server.Port, "AMORTIZER_SERVER_PORT")
	setDuration(&cfg.Server.ReadTimeout, "AMORTIZER_SERVER_READ_TIMEOUT")
	setDuration(&cfg.Server.WriteTimeout, "AMORTIZER_SERVER_WRITE_TIMEOUT")
	setDuration(&cfg.Server.IdleTimeout, "AMORTIZER_SERVER_IDLE_TIMEOUT")
	setDuration(&cfg.Server.ShutdownTimeout, "AMORTIZER_SERVER_SHUTDOWN_TIMEOUT")

	setInt(&cfg.RateLimit.Capacity, "AMORTIZER_RATE_LIMIT_CAPACITY")
	setDuration(&cfg.RateLimit.Window, "AMORTIZER_RATE_LIMIT_WINDOW")

	setStr(&cfg.Cache.Backend, "AMORTIZER_CACHE_BACKEND")
	setDuration(&cfg.Cache.TTL, "AMORTIZER_CACHE_TTL")

	setStr(&cfg.Redis.Addr, "AMORTIZER_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "AMORTIZER_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "AMORTIZER_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "AMORTIZER_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "AMORTIZER_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "AMORTIZER_REDIS_TLS_ENABLED")
	setStr(&cfg.Redis.KeyPrefix, "AMORTIZER_REDIS_KEY_PREFIX")

	setStr(&cfg.Curves.OneMonth, "AMORTIZER_CURVES_ONE_MONTH")
	setStr(&cfg.Curves.ThreeMonth, "AMORTIZER_CURVES_THREE_MONTH")
	setStr(&cfg.Curves.ReloadCron, "AMORTIZER_CURVES_RELOAD_CRON")

	setFloat64(&cfg.Limits.MaxNotional, "AMORTIZER_LIMITS_MAX_NOTIONAL")
	setFloat64(&cfg.Limits.MaxRatePercent, "AMORTIZER_LIMITS_MAX_RATE_PERCENT")
	setInt(&cfg.Limits.MaxAmortizationYears, "AMORTIZER_LIMITS_MAX_AMORTIZATION_YEARS")
}

// Typed env-var helpers. Each only mutates the target when the variable is
// set, non-empty and parses.

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
