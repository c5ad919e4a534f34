package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	cerrors "github.com/c360/wordmill/errors"
	"github.com/c360/wordmill/metric"
	"github.com/c360/wordmill/registry"
	"github.com/c360/wordmill/task"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitDone(t *testing.T, m *Monitor) {
	t.Helper()
	select {
	case <-m.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Monitor did not reach DONE")
	}
}

// finishedTask runs a task to completion so that cancel requests against it
// are undeliverable.
func finishedTask(t *testing.T) *task.Task {
	t.Helper()
	path := filepath.Join(t.TempDir(), "done.txt")
	if err := os.WriteFile(path, []byte("word\n"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	tk := task.New(path, registry.New(), testLogger())
	if res := tk.Run(context.Background(), 0); res.Outcome != task.OutcomeCompleted {
		t.Fatalf("Expected completed setup task, got %s", res.Outcome)
	}
	return tk
}

func TestNew(t *testing.T) {
	notify := make(chan os.Signal, 1)
	m, err := New(registry.New(), notify, testLogger())
	if err != nil {
		t.Fatalf("Failed to create monitor: %v", err)
	}

	if m.State() != StateWaiting {
		t.Errorf("Expected initial state waiting, got %s", m.State())
	}
	if m.Cause() != nil {
		t.Errorf("Expected nil cause before notification, got %v", m.Cause())
	}
}

func TestNew_NilRegistry(t *testing.T) {
	notify := make(chan os.Signal, 1)
	_, err := New(nil, notify, testLogger())
	if err == nil {
		t.Fatal("Expected error for nil registry")
	}
	if !errors.Is(err, cerrors.ErrNilRegistry) {
		t.Errorf("Expected ErrNilRegistry, got %v", err)
	}
	if !cerrors.IsFatal(err) {
		t.Errorf("Expected fatal classification, got %v", err)
	}
}

func TestNew_NilNotify(t *testing.T) {
	_, err := New(registry.New(), nil, testLogger())
	if err == nil {
		t.Fatal("Expected error for nil notification channel")
	}
	if !errors.Is(err, cerrors.ErrNilNotify) {
		t.Errorf("Expected ErrNilNotify, got %v", err)
	}
}

func TestNew_NilLogger(t *testing.T) {
	m, err := New(registry.New(), make(chan os.Signal, 1), nil)
	if err != nil {
		t.Fatalf("Failed to create monitor with nil logger: %v", err)
	}
	if m == nil {
		t.Fatal("Expected monitor")
	}
}

func TestMonitor_StartTwice(t *testing.T) {
	m, err := New(registry.New(), make(chan os.Signal, 1), testLogger())
	if err != nil {
		t.Fatalf("Failed to create monitor: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Start(ctx); err != nil {
		t.Fatalf("Failed to start monitor: %v", err)
	}
	if err := m.Start(ctx); !errors.Is(err, cerrors.ErrAlreadyStarted) {
		t.Errorf("Expected ErrAlreadyStarted on second start, got %v", err)
	}
}

func TestMonitor_SignalCancelsRunningTasks(t *testing.T) {
	reg := registry.New()
	first := task.New("a.txt", reg, testLogger())
	second := task.New("b.txt", reg, testLogger())
	reg.Register(0, first)
	reg.Register(1, second)

	notify := make(chan os.Signal, 1)
	m, err := New(reg, notify, testLogger())
	if err != nil {
		t.Fatalf("Failed to create monitor: %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start monitor: %v", err)
	}

	notify <- syscall.SIGINT
	waitDone(t, m)

	if m.State() != StateDone {
		t.Errorf("Expected state done, got %s", m.State())
	}
	if m.Cause() != syscall.SIGINT {
		t.Errorf("Expected cause SIGINT, got %v", m.Cause())
	}
	if !first.Cancelled() {
		t.Error("Expected first task cancelled")
	}
	if !second.Cancelled() {
		t.Error("Expected second task cancelled")
	}
}

func TestMonitor_UndeliverableCancelDoesNotBlockOthers(t *testing.T) {
	reg := registry.New()
	done := finishedTask(t)
	live := task.New("live.txt", reg, testLogger())
	reg.Register(0, done)
	reg.Register(1, live)

	notify := make(chan os.Signal, 1)
	m, err := New(reg, notify, testLogger())
	if err != nil {
		t.Fatalf("Failed to create monitor: %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start monitor: %v", err)
	}

	notify <- syscall.SIGTERM
	waitDone(t, m)

	if !live.Cancelled() {
		t.Error("Expected live task cancelled despite undeliverable neighbor")
	}
	if done.Cancelled() {
		t.Error("Expected finished task to stay uncancelled")
	}
}

func TestMonitor_ContextCancelledWhileWaiting(t *testing.T) {
	reg := registry.New()
	tk := task.New("a.txt", reg, testLogger())
	reg.Register(0, tk)

	m, err := New(reg, make(chan os.Signal, 1), testLogger())
	if err != nil {
		t.Fatalf("Failed to create monitor: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Failed to start monitor: %v", err)
	}

	cancel()
	waitDone(t, m)

	if m.State() != StateDone {
		t.Errorf("Expected state done, got %s", m.State())
	}
	if m.Cause() != nil {
		t.Errorf("Expected nil cause, got %v", m.Cause())
	}
	if tk.Cancelled() {
		t.Error("Expected no cancellation on context shutdown")
	}
}

func TestMonitor_ChannelClosedWhileWaiting(t *testing.T) {
	reg := registry.New()
	tk := task.New("a.txt", reg, testLogger())
	reg.Register(0, tk)

	notify := make(chan os.Signal)
	m, err := New(reg, notify, testLogger())
	if err != nil {
		t.Fatalf("Failed to create monitor: %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start monitor: %v", err)
	}

	close(notify)
	waitDone(t, m)

	if m.State() != StateDone {
		t.Errorf("Expected state done, got %s", m.State())
	}
	if tk.Cancelled() {
		t.Error("Expected no cancellation on channel close")
	}
}

func TestMonitor_StopReleasesWaiting(t *testing.T) {
	reg := registry.New()
	tk := task.New("a.txt", reg, testLogger())
	reg.Register(0, tk)

	m, err := New(reg, make(chan os.Signal, 1), testLogger())
	if err != nil {
		t.Fatalf("Failed to create monitor: %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start monitor: %v", err)
	}

	m.Stop()
	m.Stop()
	waitDone(t, m)

	if m.State() != StateDone {
		t.Errorf("Expected state done, got %s", m.State())
	}
	if tk.Cancelled() {
		t.Error("Expected no cancellation on stop")
	}

	// Stop after DONE stays a no-op.
	m.Stop()
}

func TestMonitor_CancelMetrics(t *testing.T) {
	reg := registry.New()
	reg.Register(0, task.New("live.txt", reg, testLogger()))
	reg.Register(1, finishedTask(t))

	mreg := metric.NewMetricsRegistry()
	notify := make(chan os.Signal, 1)
	m, err := New(reg, notify, testLogger(), WithMetricsRegistry(mreg))
	if err != nil {
		t.Fatalf("Failed to create monitor: %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start monitor: %v", err)
	}

	notify <- syscall.SIGINT
	waitDone(t, m)

	delivered := testutil.ToFloat64(mreg.CoreMetrics().CancelRequests.WithLabelValues("true"))
	undelivered := testutil.ToFloat64(mreg.CoreMetrics().CancelRequests.WithLabelValues("false"))
	if delivered != 1 {
		t.Errorf("Expected 1 delivered cancel request, got %v", delivered)
	}
	if undelivered != 1 {
		t.Errorf("Expected 1 undeliverable cancel request, got %v", undelivered)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateWaiting, "waiting"},
		{StateNotified, "notified"},
		{StateCancelling, "cancelling"},
		{StateDone, "done"},
		{State(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("Expected %q for state %d, got %q", tt.want, tt.state, got)
		}
	}
}
