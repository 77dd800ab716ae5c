package config

import (
	"os"
	"strconv"
	"time"
)

// EnvPrefix prefixes every application environment variable.
const EnvPrefix = "ALLOCDASH_"

// applyEnv overrides cfg with any set environment variables.
func applyEnv(cfg *Config) {
	setString(&cfg.Mode, EnvPrefix+"MODE")
	setString(&cfg.PathPattern, EnvPrefix+"PATH_PATTERN")
	setString(&cfg.SupplyPolicy, EnvPrefix+"SUPPLY_POLICY")
	setString(&cfg.DefaultPeriod, EnvPrefix+"DEFAULT_PERIOD")

	setString(&cfg.Source.Kind, EnvPrefix+"SOURCE_KIND")
	setString(&cfg.Source.Dir, EnvPrefix+"RESULTS_DIR")
	setString(&cfg.Source.BaseURL, EnvPrefix+"BASE_URL")
	setString(&cfg.Source.PostgresDSN, "POSTGRES_DSN")
	setString(&cfg.Source.ClickHouseDSN, "CLICKHOUSE_DSN")
	setDuration(&cfg.Source.Timeout, EnvPrefix+"SOURCE_TIMEOUT")

	setString(&cfg.Server.ListenAddr, EnvPrefix+"LISTEN_ADDR")
	setFloat(&cfg.Server.AskRate, EnvPrefix+"ASK_RATE")
	setInt(&cfg.Server.AskBurst, EnvPrefix+"ASK_BURST")
	setString(&cfg.Server.StaticDir, EnvPrefix+"STATIC_DIR")

	setString(&cfg.Ask.Endpoint, EnvPrefix+"ASK_ENDPOINT")
	setDuration(&cfg.Ask.Timeout, EnvPrefix+"ASK_TIMEOUT")

	setString(&cfg.Log.Level, EnvPrefix+"LOG_LEVEL")
	setString(&cfg.Log.Format, EnvPrefix+"LOG_FORMAT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Malformed numeric values are ignored and the previous value kept.
func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
