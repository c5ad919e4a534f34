package config

import (
	"errors"
	"fmt"
	"strings"
)

// knownSignals lists the termination signal names a configuration may use.
// Mapping names to concrete os.Signal values happens in the command wiring;
// the validator only guards against typos at load time.
var knownSignals = map[string]bool{
	"SIGINT":  true,
	"SIGTERM": true,
	"SIGQUIT": true,
	"SIGHUP":  true,
}

// NormalizeSignal returns the canonical "SIGXXX" form of a signal name.
// Accepts lowercase and prefix-less forms ("int", "term").
func NormalizeSignal(name string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if s == "" {
		return "", errors.New("empty signal name")
	}
	if !strings.HasPrefix(s, "SIG") {
		s = "SIG" + s
	}
	if !knownSignals[s] {
		return "", fmt.Errorf("unknown signal %q", name)
	}
	return s, nil
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Runner.Workers < 0 {
		return fmt.Errorf("runner.workers must not be negative, got %d", c.Runner.Workers)
	}
	if c.Runner.QueueSize < 0 {
		return fmt.Errorf("runner.queue_size must not be negative, got %d", c.Runner.QueueSize)
	}
	if c.Runner.Copies < 1 {
		return fmt.Errorf("runner.copies must be at least 1, got %d", c.Runner.Copies)
	}

	if c.Reporter.Enabled {
		if c.Reporter.Interval <= 0 {
			return errors.New("reporter.interval must be positive when the reporter is enabled")
		}
		if c.Reporter.Backlog < 1 {
			return fmt.Errorf("reporter.backlog must be at least 1, got %d", c.Reporter.Backlog)
		}
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port must be in 1-65535, got %d", c.Metrics.Port)
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			return fmt.Errorf("metrics.path must start with '/', got %q", c.Metrics.Path)
		}
	}

	if len(c.Shutdown.Signals) == 0 {
		return errors.New("shutdown.signals must name at least one signal")
	}
	for i, name := range c.Shutdown.Signals {
		normalized, err := NormalizeSignal(name)
		if err != nil {
			return fmt.Errorf("shutdown.signals[%d]: %w", i, err)
		}
		c.Shutdown.Signals[i] = normalized
	}
	if c.Shutdown.StopTimeout <= 0 {
		return errors.New("shutdown.stop_timeout must be positive")
	}

	return nil
}
