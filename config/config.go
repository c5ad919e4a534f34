package config

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when a field is absent from the file, the
// environment, and the command line.
const (
	DefaultQueueSize   = 256
	DefaultCopies      = 1
	DefaultInterval    = 4 * time.Second
	DefaultBacklog     = 100
	DefaultMetricsPort = 9090
	DefaultMetricsPath = "/metrics"
	DefaultStopTimeout = 30 * time.Second
)

// Duration wraps time.Duration so config files can carry human-readable
// values ("4s", "250ms") in both JSON and YAML. Bare numbers are read as
// nanoseconds for compatibility with marshaled time.Duration values.
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the human-readable form.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return d.assign(v)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return d.assign(v)
}

func (d *Duration) assign(v any) error {
	switch val := v.(type) {
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", val, err)
		}
		*d = Duration(parsed)
		return nil
	case float64:
		*d = Duration(time.Duration(val))
		return nil
	case int:
		*d = Duration(time.Duration(val))
		return nil
	case int64:
		*d = Duration(time.Duration(val))
		return nil
	default:
		return fmt.Errorf("invalid duration value of type %T", v)
	}
}

// Config represents the complete application configuration
type Config struct {
	Version  string         `json:"version,omitempty" yaml:"version,omitempty"`
	Runner   RunnerConfig   `json:"runner" yaml:"runner"`
	Reporter ReporterConfig `json:"reporter" yaml:"reporter"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
	Shutdown ShutdownConfig `json:"shutdown" yaml:"shutdown"`
}

// RunnerConfig sizes the worker pool and the task fan-out.
type RunnerConfig struct {
	Workers   int `json:"workers" yaml:"workers"`       // 0 = one per logical CPU
	QueueSize int `json:"queue_size" yaml:"queue_size"` // pending-task queue capacity
	Copies    int `json:"copies" yaml:"copies"`         // tasks submitted per input file
}

// ReporterConfig controls the periodic status reporter.
type ReporterConfig struct {
	Enabled  bool     `json:"enabled" yaml:"enabled"`
	Interval Duration `json:"interval" yaml:"interval"`
	Backlog  int      `json:"backlog" yaml:"backlog"` // retained completion records
}

// MetricsConfig controls the operational HTTP server.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Port    int    `json:"port" yaml:"port"`
	Path    string `json:"path" yaml:"path"`
}

// ShutdownConfig controls termination signal handling.
type ShutdownConfig struct {
	Signals     []string `json:"signals" yaml:"signals"`
	StopTimeout Duration `json:"stop_timeout" yaml:"stop_timeout"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() *Config {
	return &Config{
		Runner: RunnerConfig{
			Workers:   0, // resolved to runtime.NumCPU() at pool construction
			QueueSize: DefaultQueueSize,
			Copies:    DefaultCopies,
		},
		Reporter: ReporterConfig{
			Enabled:  true,
			Interval: Duration(DefaultInterval),
			Backlog:  DefaultBacklog,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    DefaultMetricsPort,
			Path:    DefaultMetricsPath,
		},
		Shutdown: ShutdownConfig{
			Signals:     []string{"SIGINT", "SIGTERM"},
			StopTimeout: Duration(DefaultStopTimeout),
		},
	}
}

// EffectiveWorkers resolves the configured worker count, falling back to the
// number of logical CPUs when unset.
func (c *Config) EffectiveWorkers() int {
	if c.Runner.Workers > 0 {
		return c.Runner.Workers
	}
	return runtime.NumCPU()
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return &Config{}
	}

	// Use JSON marshaling/unmarshaling for deep copy
	data, err := json.Marshal(c)
	if err != nil {
		// Fallback to shallow copy if marshaling fails
		copied := *c
		return &copied
	}

	var clone Config
	if err := json.Unmarshal(data, &clone); err != nil {
		// Fallback to shallow copy if unmarshaling fails
		copied := *c
		return &copied
	}

	return &clone
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
