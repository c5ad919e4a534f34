package monitor

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/c360/wordmill/errors"
	"github.com/c360/wordmill/metric"
	"github.com/c360/wordmill/registry"
)

// State identifies where the monitor is in its one-way lifecycle.
type State int32

const (
	// StateWaiting means the monitor is blocked on the notification channel.
	StateWaiting State = iota
	// StateNotified means a signal arrived and its cause is recorded.
	StateNotified
	// StateCancelling means cancel requests are being dispatched.
	StateCancelling
	// StateDone means the monitor goroutine has exited.
	StateDone
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateNotified:
		return "notified"
	case StateCancelling:
		return "cancelling"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Monitor watches a notification channel and, when a signal arrives,
// requests cooperative cancellation of every task registered at that
// moment. It moves WAITING -> NOTIFIED -> CANCELLING -> DONE exactly once;
// a shutdown without a signal goes straight from WAITING to DONE.
type Monitor struct {
	registry *registry.Registry
	notify   <-chan os.Signal
	logger   *slog.Logger
	metrics  *metric.Metrics

	state atomic.Int32
	cause atomic.Pointer[os.Signal]

	mu      sync.Mutex
	started bool

	done     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithMetricsRegistry enables cancellation metrics.
func WithMetricsRegistry(reg *metric.MetricsRegistry) Option {
	return func(mon *Monitor) {
		if reg != nil {
			mon.metrics = reg.CoreMetrics()
		}
	}
}

// New creates a monitor over the given registry and notification channel.
// Both are required: without them the system cannot be cancelled at all, so
// a nil value is a fatal wiring error. A nil logger falls back to
// slog.Default().
func New(reg *registry.Registry, notify <-chan os.Signal, logger *slog.Logger, opts ...Option) (*Monitor, error) {
	if reg == nil {
		return nil, errors.WrapFatal(errors.ErrNilRegistry, "Monitor", "New", "registry is required")
	}
	if notify == nil {
		return nil, errors.WrapFatal(errors.ErrNilNotify, "Monitor", "New", "notification channel is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Monitor{
		registry: reg,
		notify:   notify,
		logger:   logger,
		done:     make(chan struct{}),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Start spawns the monitor goroutine. It returns an error when called more
// than once.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return errors.Wrap(errors.ErrAlreadyStarted, "Monitor", "Start", "start")
	}
	m.started = true

	go m.run(ctx)
	return nil
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)
	defer m.state.Store(int32(StateDone))

	select {
	case sig, ok := <-m.notify:
		if !ok {
			m.logger.Info("Notification channel closed without a signal")
			return
		}
		m.cause.Store(&sig)
		m.state.Store(int32(StateNotified))
		m.logger.Info("Cancellation signal received", "signal", sig.String())
	case <-ctx.Done():
		m.logger.Info("Monitor context cancelled while waiting")
		return
	case <-m.stop:
		m.logger.Debug("Monitor released without a signal")
		return
	}

	m.state.Store(int32(StateCancelling))
	m.cancelAll()
}

// cancelAll snapshots the registry and requests cancellation of every task
// found. A task that finished between the snapshot and the request reports
// an undeliverable cancel, which is logged and skipped; the remaining tasks
// still get their requests.
func (m *Monitor) cancelAll() {
	tasks := m.registry.Snapshot()
	m.logger.Info("Requesting cancellation of running tasks", "count", len(tasks))

	delivered := 0
	for _, t := range tasks {
		ok := t.Cancel()
		if m.metrics != nil {
			m.metrics.RecordCancelRequest(ok)
		}
		if !ok {
			m.logger.Info("Cancel request not deliverable, task already finished",
				"task_id", t.ID(),
				"worker_id", t.WorkerID(),
			)
			continue
		}
		delivered++
	}

	m.logger.Info("Cancellation requests dispatched",
		"delivered", delivered,
		"undeliverable", len(tasks)-delivered,
	)
}

// State returns the monitor's current lifecycle state.
func (m *Monitor) State() State {
	return State(m.state.Load())
}

// Cause returns the signal that triggered cancellation, or nil while the
// monitor has not been notified.
func (m *Monitor) Cause() os.Signal {
	if p := m.cause.Load(); p != nil {
		return *p
	}
	return nil
}

// Done returns a channel closed when the monitor goroutine exits.
func (m *Monitor) Done() <-chan struct{} {
	return m.done
}

// Stop releases a monitor that is still waiting for a signal. It is
// idempotent and has no effect once the monitor is past WAITING.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}
