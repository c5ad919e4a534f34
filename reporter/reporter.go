package reporter

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360/wordmill/errors"
	"github.com/c360/wordmill/metric"
	"github.com/c360/wordmill/pkg/buffer"
	"github.com/c360/wordmill/registry"
	"github.com/c360/wordmill/task"
)

const (
	// DefaultInterval is how often the reporter logs a status snapshot.
	DefaultInterval = 4 * time.Second

	// DefaultBacklog is how many finished-task results the reporter retains.
	DefaultBacklog = 100
)

// Reporter periodically logs what every worker is doing and retains a
// bounded backlog of finished-task results. It is the sink the pool
// processor hands each Result to, and it feeds the /status endpoint.
//
// Record works from construction on; Start only turns on the periodic
// status ticks. Stopping the reporter halts the ticks but keeps the
// backlog readable.
type Reporter struct {
	registry *registry.Registry
	logger   *slog.Logger
	interval time.Duration

	backlogCap      int
	backlog         buffer.Buffer[task.Result]
	metrics         *metric.Metrics
	metricsRegistry *metric.MetricsRegistry

	completed atomic.Int64
	cancelled atomic.Int64
	failed    atomic.Int64

	mu      sync.Mutex
	started bool
	stopped bool

	done chan struct{}
	quit chan struct{}
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithInterval overrides the status tick interval. Non-positive values
// keep the default.
func WithInterval(d time.Duration) Option {
	return func(r *Reporter) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithBacklog overrides the backlog capacity. Non-positive values keep the
// default.
func WithBacklog(n int) Option {
	return func(r *Reporter) {
		if n > 0 {
			r.backlogCap = n
		}
	}
}

// WithMetricsRegistry enables task-outcome counters and backlog metrics.
func WithMetricsRegistry(reg *metric.MetricsRegistry) Option {
	return func(r *Reporter) {
		if reg != nil {
			r.metricsRegistry = reg
			r.metrics = reg.CoreMetrics()
		}
	}
}

// New creates a reporter over the given registry. The registry is required;
// a nil logger falls back to slog.Default().
func New(reg *registry.Registry, logger *slog.Logger, opts ...Option) (*Reporter, error) {
	if reg == nil {
		return nil, errors.WrapFatal(errors.ErrNilRegistry, "Reporter", "New", "registry is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Reporter{
		registry:   reg,
		logger:     logger,
		interval:   DefaultInterval,
		backlogCap: DefaultBacklog,
		done:       make(chan struct{}),
		quit:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	bufOpts := []buffer.Option[task.Result]{
		buffer.WithOverflowPolicy[task.Result](buffer.DropOldest),
	}
	if r.metricsRegistry != nil {
		bufOpts = append(bufOpts, buffer.WithMetrics[task.Result](r.metricsRegistry, "reporter_backlog"))
	}

	backlog, err := buffer.NewCircularBuffer(r.backlogCap, bufOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "Reporter", "New", "backlog creation")
	}
	r.backlog = backlog

	return r, nil
}

// Start spawns the periodic status loop. It returns an error when called
// more than once.
func (r *Reporter) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return errors.Wrap(errors.ErrAlreadyStarted, "Reporter", "Start", "start")
	}
	r.started = true

	r.logger.Info("Status reporter started", "interval", r.interval, "backlog", r.backlogCap)
	go r.loop(ctx)
	return nil
}

func (r *Reporter) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.quit:
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

// tick logs one line per running task plus a header with the snapshot size.
func (r *Reporter) tick() {
	rows := r.Running()

	if r.metrics != nil {
		r.metrics.RecordRunningTasks(len(rows))
	}

	r.logger.Info("Status report",
		"running", len(rows),
		"completed", r.completed.Load(),
		"cancelled", r.cancelled.Load(),
		"failed", r.failed.Load(),
	)
	for _, row := range rows {
		r.logger.Info("Task running",
			"task_id", row.TaskID,
			"worker_id", row.WorkerID,
			"elapsed_seconds", row.ElapsedSeconds,
			"lines", row.Lines,
		)
	}
}

// Record stores one finished-task result in the backlog and bumps the
// outcome counters. Safe to call from any worker at any time, including
// after Stop.
func (r *Reporter) Record(res task.Result) {
	switch res.Outcome {
	case task.OutcomeCompleted:
		r.completed.Add(1)
	case task.OutcomeCancelled:
		r.cancelled.Add(1)
	case task.OutcomeFailed:
		r.failed.Add(1)
	}

	if r.metrics != nil {
		r.metrics.RecordTaskFinished(res.Outcome.String(), uint64(res.Lines), uint64(res.Words), res.Elapsed)
	}

	if err := r.backlog.Write(res); err != nil {
		r.logger.Warn("Backlog write failed", "task_id", res.TaskID, "error", err)
	}
}

// Backlog returns the retained results, oldest first.
func (r *Reporter) Backlog() []task.Result {
	return r.backlog.Items()
}

// Totals returns the finished-task counts by outcome.
func (r *Reporter) Totals() (completed, cancelled, failed int64) {
	return r.completed.Load(), r.cancelled.Load(), r.failed.Load()
}

// Stop halts the status loop, waiting up to timeout for it to exit. It is
// idempotent and a no-op when the reporter was never started. The backlog
// stays readable after Stop.
func (r *Reporter) Stop(timeout time.Duration) error {
	r.mu.Lock()
	if !r.started || r.stopped {
		r.mu.Unlock()
		return nil
	}
	r.stopped = true
	close(r.quit)
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-time.After(timeout):
		return errors.Wrap(errors.ErrStopTimeout, "Reporter", "Stop", "loop drain")
	}
}
