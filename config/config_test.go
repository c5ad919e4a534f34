package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Test basic config structure
func TestConfig_Structure(t *testing.T) {
	cfg := &Config{
		Version: "1.0.0",
		Runner: RunnerConfig{
			Workers:   4,
			QueueSize: 128,
			Copies:    2,
		},
		Reporter: ReporterConfig{
			Enabled:  true,
			Interval: Duration(4 * time.Second),
			Backlog:  50,
		},
	}

	assert.Equal(t, 4, cfg.Runner.Workers)
	assert.Equal(t, 2, cfg.Runner.Copies)
	assert.Equal(t, 4*time.Second, cfg.Reporter.Interval.Std())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0, cfg.Runner.Workers)
	assert.Equal(t, DefaultQueueSize, cfg.Runner.QueueSize)
	assert.Equal(t, DefaultCopies, cfg.Runner.Copies)
	assert.True(t, cfg.Reporter.Enabled)
	assert.Equal(t, DefaultInterval, cfg.Reporter.Interval.Std())
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, []string{"SIGINT", "SIGTERM"}, cfg.Shutdown.Signals)

	require.NoError(t, cfg.Validate())
}

func TestConfig_EffectiveWorkers(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, runtime.NumCPU(), cfg.EffectiveWorkers())

	cfg.Runner.Workers = 3
	assert.Equal(t, 3, cfg.EffectiveWorkers())
}

// Test loading config from JSON file
func TestLoader_LoadJSON(t *testing.T) {
	testConfig := `{
		"version": "1.2.0",
		"runner": {
			"workers": 8,
			"queue_size": 512,
			"copies": 4
		},
		"reporter": {
			"enabled": true,
			"interval": "2s",
			"backlog": 25
		},
		"metrics": {
			"enabled": true,
			"port": 9191,
			"path": "/metrics"
		},
		"shutdown": {
			"signals": ["SIGINT", "SIGTERM", "SIGQUIT"],
			"stop_timeout": "10s"
		}
	}`

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.json")
	err := os.WriteFile(configFile, []byte(testConfig), 0644)
	require.NoError(t, err)

	loader := NewLoader()
	cfg, err := loader.LoadFile(configFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "1.2.0", cfg.Version)
	assert.Equal(t, 8, cfg.Runner.Workers)
	assert.Equal(t, 512, cfg.Runner.QueueSize)
	assert.Equal(t, 4, cfg.Runner.Copies)
	assert.Equal(t, 2*time.Second, cfg.Reporter.Interval.Std())
	assert.Equal(t, 25, cfg.Reporter.Backlog)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9191, cfg.Metrics.Port)
	assert.Equal(t, []string{"SIGINT", "SIGTERM", "SIGQUIT"}, cfg.Shutdown.Signals)
	assert.Equal(t, 10*time.Second, cfg.Shutdown.StopTimeout.Std())
}

// Test loading config from YAML file
func TestLoader_LoadYAML(t *testing.T) {
	testConfig := `
version: "1.2.0"
runner:
  workers: 6
  copies: 2
reporter:
  enabled: true
  interval: 500ms
  backlog: 10
shutdown:
  signals: [int, term]
  stop_timeout: 5s
`

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configFile, []byte(testConfig), 0644)
	require.NoError(t, err)

	loader := NewLoader()
	cfg, err := loader.LoadFile(configFile)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Runner.Workers)
	assert.Equal(t, 2, cfg.Runner.Copies)
	// Fields absent from the file keep their defaults
	assert.Equal(t, DefaultQueueSize, cfg.Runner.QueueSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Reporter.Interval.Std())
	// Validation normalizes signal names
	assert.Equal(t, []string{"SIGINT", "SIGTERM"}, cfg.Shutdown.Signals)
}

func TestLoader_UnsupportedExtension(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.toml")
	err := os.WriteFile(configFile, []byte("workers = 4"), 0644)
	require.NoError(t, err)

	loader := NewLoader()
	_, err = loader.LoadFile(configFile)
	assert.Error(t, err)
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoader_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.json")
	err := os.WriteFile(configFile, []byte(`{"runner": {`), 0644)
	require.NoError(t, err)

	loader := NewLoader()
	_, err = loader.LoadFile(configFile)
	assert.Error(t, err)
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("WORDMILL_WORKERS", "12")
	t.Setenv("WORDMILL_COPIES", "3")
	t.Setenv("WORDMILL_REPORT_INTERVAL", "1s")
	t.Setenv("WORDMILL_METRICS_ENABLED", "true")
	t.Setenv("WORDMILL_SIGNALS", "SIGINT, SIGQUIT")

	loader := NewLoader()
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Runner.Workers)
	assert.Equal(t, 3, cfg.Runner.Copies)
	assert.Equal(t, time.Second, cfg.Reporter.Interval.Std())
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, []string{"SIGINT", "SIGQUIT"}, cfg.Shutdown.Signals)
}

func TestLoader_EnvOverrideIgnoresGarbage(t *testing.T) {
	t.Setenv("WORDMILL_WORKERS", "not-a-number")

	loader := NewLoader()
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Runner.Workers)
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runner.Workers = 7
	cfg.Shutdown.Signals = []string{"SIGINT"}

	clone := cfg.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, cfg.Runner.Workers, clone.Runner.Workers)

	// Mutating the clone must not touch the original
	clone.Runner.Workers = 1
	clone.Shutdown.Signals[0] = "SIGTERM"
	assert.Equal(t, 7, cfg.Runner.Workers)
	assert.Equal(t, "SIGINT", cfg.Shutdown.Signals[0])
}

func TestDuration_JSONRoundTrip(t *testing.T) {
	type holder struct {
		D Duration `json:"d"`
	}

	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"d": "1m30s"}`), &h))
	assert.Equal(t, 90*time.Second, h.D.Std())

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d": "1m30s"}`, string(data))

	// Bare numbers are nanoseconds
	require.NoError(t, json.Unmarshal([]byte(`{"d": 1000000000}`), &h))
	assert.Equal(t, time.Second, h.D.Std())

	// Invalid strings are rejected
	assert.Error(t, json.Unmarshal([]byte(`{"d": "fast"}`), &h))
}

func TestDuration_YAMLRoundTrip(t *testing.T) {
	type holder struct {
		D Duration `yaml:"d"`
	}

	var h holder
	require.NoError(t, yaml.Unmarshal([]byte("d: 250ms"), &h))
	assert.Equal(t, 250*time.Millisecond, h.D.Std())

	data, err := yaml.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, "d: 250ms\n", string(data))

	require.NoError(t, yaml.Unmarshal([]byte("d: 1000000000"), &h))
	assert.Equal(t, time.Second, h.D.Std())

	assert.Error(t, yaml.Unmarshal([]byte("d: fast"), &h))
}

func TestConfig_String(t *testing.T) {
	out := DefaultConfig().String()
	assert.Contains(t, out, `"runner"`)
	assert.Contains(t, out, `"queue_size": 256`)
}
