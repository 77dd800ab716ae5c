// Package config loads dashboard settings from a YAML file, an optional
// .env file and ALLOCDASH_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/metrics"
	"allocation-dashboard/internal/source"
)

// Modes.
const (
	ModeCompare = "compare"
	ModeSingle  = "single"
)

// Defaults.
const (
	DefaultPathPattern   = "results/{strategy}_hour_{period}.csv"
	DefaultResultsDir    = "."
	DefaultListenAddr    = ":8080"
	DefaultSourceTimeout = 10 * time.Second
	DefaultAskTimeout    = 15 * time.Second
	DefaultAskRate       = 2.0
	DefaultAskBurst      = 5
	DefaultShutdown      = 15 * time.Second
	DefaultPeriod        = "1"
)

var (
	ErrInvalidMode     = errors.New("config: mode must be compare or single")
	ErrStrategyCount   = errors.New("config: strategy count does not match mode")
	ErrInvalidStrategy = errors.New("config: strategy tag is required")
	ErrInvalidSource   = errors.New("config: invalid source")
	ErrInvalidPattern  = errors.New("config: path pattern must contain {strategy} and {period}")
)

// Config is the full application configuration.
type Config struct {
	Mode          string            `yaml:"mode"`
	Strategies    []domain.Strategy `yaml:"strategies"`
	PathPattern   string            `yaml:"path_pattern"`
	SupplyPolicy  string            `yaml:"supply_policy"` // empty selects the mode default
	DefaultPeriod string            `yaml:"default_period"`

	Source SourceConfig `yaml:"source"`
	Server ServerConfig `yaml:"server"`
	Ask    AskConfig    `yaml:"ask"`
	Log    LogConfig    `yaml:"log"`
}

// SourceConfig selects where datasets are fetched from.
type SourceConfig struct {
	Kind          string        `yaml:"kind"`
	Dir           string        `yaml:"dir"`
	BaseURL       string        `yaml:"base_url"`
	PostgresDSN   string        `yaml:"postgres_dsn"`
	ClickHouseDSN string        `yaml:"clickhouse_dsn"`
	Timeout       time.Duration `yaml:"timeout"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr"`
	AskRate         float64       `yaml:"ask_rate"` // questions per second
	AskBurst        int           `yaml:"ask_burst"`
	StaticDir       string        `yaml:"static_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AskConfig configures the remote question-answering client.
type AskConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// Default returns the built-in configuration: a Quantum versus Classic
// comparison over CSV files in the working directory.
func Default() *Config {
	return &Config{
		Mode:          ModeCompare,
		PathPattern:   DefaultPathPattern,
		DefaultPeriod: DefaultPeriod,
		Source: SourceConfig{
			Kind:    source.KindFile,
			Dir:     DefaultResultsDir,
			Timeout: DefaultSourceTimeout,
		},
		Server: ServerConfig{
			ListenAddr:      DefaultListenAddr,
			AskRate:         DefaultAskRate,
			AskBurst:        DefaultAskBurst,
			ShutdownTimeout: DefaultShutdown,
		},
		Ask: AskConfig{Timeout: DefaultAskTimeout},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// Load builds the configuration. path may be empty. envFiles are loaded
// with godotenv when present; missing files are skipped. Variables already
// set in the environment win over .env values.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	applyEnv(cfg)

	cfg.fillStrategies()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillStrategies applies the default strategies for the mode when none are set.
func (c *Config) fillStrategies() {
	if len(c.Strategies) > 0 {
		return
	}
	switch c.Mode {
	case ModeSingle:
		c.Strategies = []domain.Strategy{domain.StrategyQuantum}
	default:
		c.Strategies = []domain.Strategy{domain.StrategyQuantum, domain.StrategyClassic}
	}
}

// StrategyCount returns 1 or 2 according to the mode.
func (c *Config) StrategyCount() int {
	if c.Mode == ModeSingle {
		return 1
	}
	return 2
}

// Policy returns the configured supply policy, or "" for the mode default.
func (c *Config) Policy() metrics.SupplyPolicy {
	return metrics.SupplyPolicy(c.SupplyPolicy)
}

// SourceOptions converts the source section for source.Open.
func (c *Config) SourceOptions() source.Options {
	return source.Options{
		Kind:          c.Source.Kind,
		Dir:           c.Source.Dir,
		BaseURL:       c.Source.BaseURL,
		PostgresDSN:   c.Source.PostgresDSN,
		ClickHouseDSN: c.Source.ClickHouseDSN,
		Timeout:       c.Source.Timeout,
	}
}

// Validate checks mode, strategies, pattern, supply policy and source.
func (c *Config) Validate() error {
	if c.Mode != ModeCompare && c.Mode != ModeSingle {
		return fmt.Errorf("%w: got %q", ErrInvalidMode, c.Mode)
	}
	if len(c.Strategies) != c.StrategyCount() {
		return fmt.Errorf("%w: mode %s needs %d, got %d", ErrStrategyCount, c.Mode, c.StrategyCount(), len(c.Strategies))
	}
	for _, s := range c.Strategies {
		if strings.TrimSpace(s.Tag) == "" {
			return ErrInvalidStrategy
		}
	}
	if !strings.Contains(c.PathPattern, "{strategy}") || !strings.Contains(c.PathPattern, "{period}") {
		return ErrInvalidPattern
	}
	if c.SupplyPolicy != "" {
		if _, err := metrics.ParseSupplyPolicy(c.SupplyPolicy); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return c.Source.validate()
}

func (s SourceConfig) validate() error {
	switch s.Kind {
	case source.KindFile:
		if s.Dir == "" {
			return fmt.Errorf("%w: file source needs dir", ErrInvalidSource)
		}
	case source.KindHTTP:
		if s.BaseURL == "" {
			return fmt.Errorf("%w: http source needs base_url", ErrInvalidSource)
		}
	case source.KindPostgres:
		if s.PostgresDSN == "" {
			return fmt.Errorf("%w: postgres source needs postgres_dsn", ErrInvalidSource)
		}
	case source.KindClickHouse:
		if s.ClickHouseDSN == "" {
			return fmt.Errorf("%w: clickhouse source needs clickhouse_dsn", ErrInvalidSource)
		}
	case source.KindMemory:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSource, s.Kind)
	}
	return nil
}
