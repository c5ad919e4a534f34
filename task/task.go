package task

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/c360/wordmill/errors"
)

// Registrar is the slice of the task registry that a running task needs:
// announcing itself under its worker's identity and removing the entry when
// it is done.
type Registrar interface {
	// Register associates the worker identity with a running task.
	Register(workerID int, t *Task)

	// Unregister removes the association. Removing an absent identity is a no-op.
	Unregister(workerID int)
}

// Task counts word frequencies in a single text file. A task runs at most
// once, on one pool worker, and registers itself for the duration of the run
// so the cancellation monitor can reach it.
//
// The scalar progress fields (lines, words, start time, worker ID) are
// written only by the running worker and may be read from any goroutine.
// The word map is owned by the run and exposed only through Counts() after
// Done() reports true. The cancellation flag is the one field written by
// another goroutine.
type Task struct {
	id       string
	path     string
	registry Registrar
	logger   *slog.Logger

	workerID atomic.Int64
	started  atomic.Pointer[time.Time]
	ended    atomic.Pointer[time.Time]
	lines    atomic.Int64
	words    atomic.Int64

	cancelled atomic.Bool
	done      atomic.Bool

	counts map[string]int64
}

// New creates a task for the given file path. The registry receives the
// task while it runs; a nil logger falls back to slog.Default().
func New(path string, registry Registrar, logger *slog.Logger) *Task {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Task{
		id:       uuid.NewString(),
		path:     path,
		registry: registry,
		logger:   logger,
		counts:   make(map[string]int64),
	}
	t.workerID.Store(-1)
	return t
}

// Run executes the task on the calling worker and returns its Result.
//
// The file is read line by line. Empty lines are skipped without counting;
// every other line increments the line counter and adds its
// whitespace-separated words to the frequency map. After each scanned line
// the cancellation flag is checked, so a cancel request takes effect within
// one line of input. Cancellation keeps the partial counts.
func (t *Task) Run(ctx context.Context, workerID int) Result {
	t.workerID.Store(int64(workerID))

	// A shutdown that started before this task left the queue wins outright.
	if ctx.Err() != nil {
		t.logger.Info("Task cancelled before start",
			"task_id", t.id,
			"path", t.path,
			"worker_id", workerID,
		)
		return t.finish(OutcomeCancelled, nil)
	}

	file, err := os.Open(t.path)
	if err != nil {
		wrapped := errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrFileOpen, err), "Task", "Run", "open input file")
		t.logger.Error("Open input file failed",
			"task_id", t.id,
			"path", t.path,
			"worker_id", workerID,
			"error", err,
		)
		return t.finish(OutcomeFailed, wrapped)
	}
	defer file.Close()

	// Start time is visible before the registry entry, so a snapshot never
	// observes a registered task with a zero start.
	now := time.Now()
	t.started.Store(&now)

	t.registry.Register(workerID, t)
	defer t.registry.Unregister(workerID)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > 0 {
			t.countLine(line)
		}

		if t.cancelled.Load() {
			t.logger.Info("Task cancelled",
				"task_id", t.id,
				"path", t.path,
				"worker_id", workerID,
				"lines", t.lines.Load(),
				"words", t.words.Load(),
			)
			return t.finish(OutcomeCancelled, nil)
		}
	}

	if err := scanner.Err(); err != nil {
		wrapped := errors.WrapTransient(fmt.Errorf("%w: %w", errors.ErrFileRead, err), "Task", "Run", "scan input file")
		t.logger.Error("Read input file failed",
			"task_id", t.id,
			"path", t.path,
			"worker_id", workerID,
			"error", err,
		)
		return t.finish(OutcomeFailed, wrapped)
	}

	t.logger.Info("Task completed",
		"task_id", t.id,
		"path", t.path,
		"worker_id", workerID,
		"lines", t.lines.Load(),
		"words", t.words.Load(),
		"distinct_words", len(t.counts),
		"elapsed", t.Elapsed(),
	)
	return t.finish(OutcomeCompleted, nil)
}

// countLine tokenizes one non-empty line on Unicode whitespace and folds the
// words into the frequency map.
func (t *Task) countLine(line string) {
	t.lines.Add(1)

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	for _, word := range fields {
		t.counts[word]++
	}
	t.words.Add(int64(len(fields)))
}

// finish marks the task done and builds its Result from the current counters.
func (t *Task) finish(outcome Outcome, err error) Result {
	now := time.Now()
	t.ended.Store(&now)
	t.done.Store(true)

	res := Result{
		TaskID:   t.id,
		Path:     t.path,
		WorkerID: int(t.workerID.Load()),
		Outcome:  outcome,
		Lines:    t.lines.Load(),
		Words:    t.words.Load(),
		Distinct: len(t.counts),
		Elapsed:  t.Elapsed(),
		Err:      err,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// Cancel requests cooperative cancellation. The running task observes the
// request at its next per-line checkpoint. Cancel returns false when the
// task has already finished and the request cannot be delivered.
func (t *Task) Cancel() bool {
	if t.done.Load() {
		return false
	}
	t.cancelled.Store(true)
	return true
}

// ID returns the task's UUID, assigned at construction.
func (t *Task) ID() string {
	return t.id
}

// Path returns the task's input file path.
func (t *Task) Path() string {
	return t.path
}

// WorkerID returns the identity of the worker running the task, or -1 if
// the task has not started.
func (t *Task) WorkerID() int {
	return int(t.workerID.Load())
}

// Started returns when the task began reading its file, or the zero time if
// it has not reached that point.
func (t *Task) Started() time.Time {
	if p := t.started.Load(); p != nil {
		return *p
	}
	return time.Time{}
}

// Elapsed returns how long the task has been running, or the final duration
// once it is done. Zero if the task never started.
func (t *Task) Elapsed() time.Duration {
	start := t.started.Load()
	if start == nil {
		return 0
	}
	if end := t.ended.Load(); end != nil {
		return end.Sub(*start)
	}
	return time.Since(*start)
}

// Lines returns the running count of non-empty lines processed.
func (t *Task) Lines() int64 {
	return t.lines.Load()
}

// Words returns the running total of words counted.
func (t *Task) Words() int64 {
	return t.words.Load()
}

// Cancelled reports whether cancellation has been requested.
func (t *Task) Cancelled() bool {
	return t.cancelled.Load()
}

// Done reports whether Run has returned.
func (t *Task) Done() bool {
	return t.done.Load()
}

// Counts returns a copy of the word frequency map. It is meaningful only
// after Done() reports true; the map is not synchronized mid-run.
func (t *Task) Counts() map[string]int64 {
	out := make(map[string]int64, len(t.counts))
	for word, count := range t.counts {
		out[word] = count
	}
	return out
}
