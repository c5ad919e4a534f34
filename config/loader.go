package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading with environment overrides
type Loader struct {
	validation bool
	envPrefix  string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		validation: true,
		envPrefix:  "WORDMILL",
	}
}

// EnableValidation enables or disables configuration validation
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// Load returns the default configuration with environment overrides applied.
// Used when no config file is supplied on the command line.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()
	l.applyEnvOverrides(cfg)

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// LoadFile loads configuration from a single JSON or YAML file, layered over
// the defaults, with environment overrides applied last.
func (l *Loader) LoadFile(path string) (*Config, error) {
	data, err := safeReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .json, .yaml, or .yml)", filepath.Ext(path))
	}

	l.applyEnvOverrides(cfg)

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides
func (l *Loader) applyEnvOverrides(cfg *Config) {
	// Runner overrides
	if val := l.getEnvInt("WORKERS"); val != nil {
		cfg.Runner.Workers = *val
	}
	if val := l.getEnvInt("QUEUE_SIZE"); val != nil {
		cfg.Runner.QueueSize = *val
	}
	if val := l.getEnvInt("COPIES"); val != nil {
		cfg.Runner.Copies = *val
	}

	// Reporter overrides
	if val := l.getEnvBool("REPORT_ENABLED"); val != nil {
		cfg.Reporter.Enabled = *val
	}
	if val := l.getEnvDuration("REPORT_INTERVAL"); val != nil {
		cfg.Reporter.Interval = Duration(*val)
	}
	if val := l.getEnvInt("REPORT_BACKLOG"); val != nil {
		cfg.Reporter.Backlog = *val
	}

	// Metrics overrides
	if val := l.getEnvBool("METRICS_ENABLED"); val != nil {
		cfg.Metrics.Enabled = *val
	}
	if val := l.getEnvInt("METRICS_PORT"); val != nil {
		cfg.Metrics.Port = *val
	}
	if val := os.Getenv(l.envPrefix + "_METRICS_PATH"); val != "" {
		cfg.Metrics.Path = val
	}

	// Shutdown overrides
	if val := os.Getenv(l.envPrefix + "_SIGNALS"); val != "" {
		parts := strings.Split(val, ",")
		signals := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				signals = append(signals, trimmed)
			}
		}
		cfg.Shutdown.Signals = signals
	}
	if val := l.getEnvDuration("STOP_TIMEOUT"); val != nil {
		cfg.Shutdown.StopTimeout = Duration(*val)
	}
}

func (l *Loader) getEnvInt(key string) *int {
	val := os.Getenv(l.envPrefix + "_" + key)
	if val == "" {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &n
}

func (l *Loader) getEnvBool(key string) *bool {
	val := os.Getenv(l.envPrefix + "_" + key)
	if val == "" {
		return nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return nil
	}
	return &b
}

func (l *Loader) getEnvDuration(key string) *time.Duration {
	val := os.Getenv(l.envPrefix + "_" + key)
	if val == "" {
		return nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return nil
	}
	return &d
}
