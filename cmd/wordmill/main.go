// Package main implements the entry point for the wordmill runner.
// Wordmill counts line, word, and per-word frequencies in text files on a
// bounded worker pool, with cooperative signal-driven cancellation and a
// periodic status reporter.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/c360/wordmill/config"
	"github.com/c360/wordmill/health"
	"github.com/c360/wordmill/metric"
	"github.com/c360/wordmill/monitor"
	"github.com/c360/wordmill/pkg/worker"
	"github.com/c360/wordmill/registry"
	"github.com/c360/wordmill/reporter"
	"github.com/c360/wordmill/task"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "wordmill"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	// Run application with proper error handling
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	// Parse and validate CLI flags
	cliCfg, logger, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	// Load and validate configuration
	cfg, err := initializeConfiguration(cliCfg)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	return runTasks(context.Background(), cfg, cliCfg, logger)
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, *slog.Logger, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting wordmill",
		"version", Version,
		"build_time", BuildTime,
		"files", len(cliCfg.Files),
	)

	return cliCfg, logger, false, nil
}

// initializeConfiguration loads configuration and applies flag overrides
func initializeConfiguration(cliCfg *CLIConfig) (*config.Config, error) {
	loader := config.NewLoader()
	loader.EnableValidation(false)

	var cfg *config.Config
	var err error
	if cliCfg.ConfigPath != "" {
		cfg, err = loader.LoadFile(cliCfg.ConfigPath)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// CLI flags take precedence over file and environment values
	if cliCfg.Workers > 0 {
		cfg.Runner.Workers = cliCfg.Workers
	}
	if cliCfg.Copies > 0 {
		cfg.Runner.Copies = cliCfg.Copies
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// signalsByName maps canonical signal names to their os.Signal values.
var signalsByName = map[string]os.Signal{
	"SIGINT":  syscall.SIGINT,
	"SIGTERM": syscall.SIGTERM,
	"SIGQUIT": syscall.SIGQUIT,
	"SIGHUP":  syscall.SIGHUP,
}

// terminationSignals resolves configured signal names to os.Signal values.
func terminationSignals(names []string) ([]os.Signal, error) {
	out := make([]os.Signal, 0, len(names))
	for _, name := range names {
		canonical, err := config.NormalizeSignal(name)
		if err != nil {
			return nil, fmt.Errorf("resolve signal %q: %w", name, err)
		}
		sig, ok := signalsByName[canonical]
		if !ok {
			return nil, fmt.Errorf("unsupported signal %q", name)
		}
		out = append(out, sig)
	}
	return out, nil
}

// startMetricsServer builds and starts the operational HTTP server, or
// returns nil when metrics are disabled. A server that fails after startup
// is logged and marked unhealthy, never fatal.
func startMetricsServer(
	cfg *config.Config,
	metricsRegistry *metric.MetricsRegistry,
	healthMon *health.Monitor,
	rep *reporter.Reporter,
) *metric.Server {
	if !cfg.Metrics.Enabled || cfg.Metrics.Port == 0 {
		slog.Debug("Metrics server disabled")
		return nil
	}

	server := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, metricsRegistry,
		metric.WithRoute("/health", health.Handler(healthMon, appName)),
		metric.WithRoute("/status", rep.Handler()),
	)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
			healthMon.UpdateUnhealthy("metrics-server", err.Error())
		}
	}()

	healthMon.UpdateHealthy("metrics-server", fmt.Sprintf("listening on :%d", cfg.Metrics.Port))
	slog.Info("Metrics server started",
		"port", cfg.Metrics.Port,
		"path", cfg.Metrics.Path,
	)
	return server
}

// runTasks wires the runner together, submits the tasks, and joins on their
// completion. It returns nil for both full and cancelled runs; cancellation
// is a normal outcome.
func runTasks(ctx context.Context, cfg *config.Config, cliCfg *CLIConfig, logger *slog.Logger) error {
	started := time.Now()

	metricsRegistry := metric.NewMetricsRegistry()
	core := metricsRegistry.CoreMetrics()
	healthMon := health.NewMonitor()
	taskRegistry := registry.New()

	rep, err := reporter.New(taskRegistry, logger,
		reporter.WithInterval(cfg.Reporter.Interval.Std()),
		reporter.WithBacklog(cfg.Reporter.Backlog),
		reporter.WithMetricsRegistry(metricsRegistry),
	)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	server := startMetricsServer(cfg, metricsRegistry, healthMon, rep)

	// Termination signals feed the monitor through a plain channel; the
	// monitor itself never touches os/signal.
	signals, err := terminationSignals(cfg.Shutdown.Signals)
	if err != nil {
		return fmt.Errorf("configure signals: %w", err)
	}
	notify := make(chan os.Signal, 1)
	signal.Notify(notify, signals...)
	defer signal.Stop(notify)

	mon, err := monitor.New(taskRegistry, notify, logger,
		monitor.WithMetricsRegistry(metricsRegistry),
	)
	if err != nil {
		return fmt.Errorf("create monitor: %w", err)
	}

	// taskCtx short-circuits tasks still queued when a signal arrives. The
	// pool's own context must outlive Wait(), so it is never cancelled here.
	taskCtx, cancelQueued := context.WithCancel(ctx)
	defer cancelQueued()

	pool := worker.NewPool(cfg.EffectiveWorkers(), cfg.Runner.QueueSize,
		func(_ context.Context, workerID int, tk *task.Task) {
			core.RecordTaskStarted()
			rep.Record(tk.Run(taskCtx, workerID))
		},
		worker.WithMetricsRegistry[*task.Task](metricsRegistry, "wordmill_pool"),
	)

	if err := pool.Start(ctx); err != nil {
		return fmt.Errorf("start worker pool: %w", err)
	}
	healthMon.UpdateHealthy("worker-pool", fmt.Sprintf("%d workers running", cfg.EffectiveWorkers()))

	if err := mon.Start(ctx); err != nil {
		return fmt.Errorf("start cancellation monitor: %w", err)
	}
	healthMon.UpdateHealthy("cancel-monitor", "waiting for termination signals")

	// Once the monitor has dispatched cancellations, stop feeding queued
	// tasks into full runs.
	go func() {
		<-mon.Done()
		if mon.Cause() != nil {
			cancelQueued()
		}
	}()

	if cfg.Reporter.Enabled {
		if err := rep.Start(ctx); err != nil {
			return fmt.Errorf("start status reporter: %w", err)
		}
		healthMon.UpdateHealthy("status-reporter", fmt.Sprintf("reporting every %s", cfg.Reporter.Interval))
	} else {
		healthMon.UpdateHealthy("status-reporter", "periodic reporting disabled")
	}

	if err := submitTasks(pool, taskRegistry, cfg, cliCfg.Files, logger); err != nil {
		return err
	}

	// Join: Wait returns once every task recorded a completion, whether it
	// ran in full, failed, or was cancelled.
	pool.Wait()
	logger.Info("All tasks finished")

	return shutdownRuntime(cfg, rep, mon, pool, server, healthMon, logger, started)
}

// submitTasks fans the input files out into copies x files tasks.
func submitTasks(
	pool *worker.Pool[*task.Task],
	taskRegistry *registry.Registry,
	cfg *config.Config,
	files []string,
	logger *slog.Logger,
) error {
	total := 0
	for i := 0; i < cfg.Runner.Copies; i++ {
		for _, path := range files {
			tk := task.New(path, taskRegistry, logger)
			if err := pool.Submit(tk); err != nil {
				return fmt.Errorf("submit task for %s: %w", path, err)
			}
			total++
		}
	}

	logger.Info("All tasks submitted",
		"tasks", total,
		"files", len(files),
		"copies", cfg.Runner.Copies,
	)
	return nil
}

// shutdownRuntime releases the monitor, drains the pool and reporter, logs
// the final summary, and stops the HTTP server last so /status stays
// observable through the drain.
func shutdownRuntime(
	cfg *config.Config,
	rep *reporter.Reporter,
	mon *monitor.Monitor,
	pool *worker.Pool[*task.Task],
	server *metric.Server,
	healthMon *health.Monitor,
	logger *slog.Logger,
	started time.Time,
) error {
	// Release the monitor if no signal ever arrived, then join it.
	mon.Stop()
	<-mon.Done()

	stopTimeout := cfg.Shutdown.StopTimeout.Std()
	if err := pool.Stop(stopTimeout); err != nil {
		logger.Warn("Worker pool stop timed out", "error", err)
		healthMon.UpdateDegraded("worker-pool", "stop timed out")
	}
	if err := rep.Stop(stopTimeout); err != nil {
		logger.Warn("Status reporter stop timed out", "error", err)
	}

	completed, cancelled, failed := rep.Totals()
	logger.Info("Run complete",
		"completed", completed,
		"cancelled", cancelled,
		"failed", failed,
		"cause", causeName(mon),
		"elapsed", time.Since(started),
	)

	if server != nil {
		if err := server.Stop(); err != nil {
			logger.Warn("Metrics server stop failed", "error", err)
		}
	}

	return nil
}

// causeName renders the monitor's triggering signal for the summary line.
func causeName(mon *monitor.Monitor) string {
	if cause := mon.Cause(); cause != nil {
		return cause.String()
	}
	return "none"
}
