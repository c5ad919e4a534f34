// Package wordmill provides a concurrent word-frequency runner for text files,
// combining a bounded worker pool with cooperative cancellation and periodic
// status reporting.
//
// # Philosophy: Small Core, Observable Edges
//
// Wordmill is built around one unit of work, the Task: read a text file line
// by line, count lines, words, and per-word frequencies, and produce a single
// Result. Everything else exists to run many Tasks at once and to make that
// execution observable and interruptible:
//
//   - Execution: a fixed-size worker pool with a bounded queue and blocking
//     submission (pkg/worker)
//   - Visibility: a registry of in-flight tasks keyed by worker identity
//     (registry), periodic status reports and an HTTP /status surface
//     (reporter), Prometheus metrics and /health (metric, health)
//   - Interruption: a signal-driven cancellation monitor that asks every
//     registered task to stop at its next line boundary (monitor)
//
// Wordmill MUST NOT contain:
//   - Retry or re-queue logic: a failed task reports a failed Result, once
//   - Partial-result persistence: counts from a cancelled task are logged,
//     not stored
//   - Hard kills: cancellation is cooperative and waits for the line
//     checkpoint
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│         cmd/wordmill               │  Flags, config, wiring,
//	│  (run, submit, drain, shutdown)    │  exit codes
//	└─────────────────────────────────────┘
//	           ↓ submits tasks to
//	┌─────────────────────────────────────┐
//	│         Worker Pool                │  N workers, bounded queue,
//	│   (pkg/worker, blocking Submit)    │  Wait() for drain
//	└─────────────────────────────────────┘
//	           ↓ each worker runs
//	┌─────────────────────────────────────┐
//	│            Task                    │  Line-by-line counting,
//	│  (register, count, checkpoint)     │  cancellation checkpoints
//	└─────────────────────────────────────┘
//	           ↕ registered in              ↓ results to
//	┌──────────────────┐      ┌──────────────────────┐
//	│     Registry     │      │      Reporter        │
//	│ worker → *Task   │      │ totals, backlog,     │
//	│ (snapshot reads) │      │ ticks, /status JSON  │
//	└──────────────────┘      └──────────────────────┘
//	           ↑ cancels via
//	┌─────────────────────────────────────┐
//	│       Cancellation Monitor          │  SIGINT/SIGTERM → Cancel()
//	│  (WAITING → NOTIFIED → … → DONE)    │  on every registered task
//	└─────────────────────────────────────┘
//
// # Lifecycle
//
// A run proceeds in phases:
//
//  1. Load configuration (file, WORDMILL_* environment, flags) and validate.
//  2. Start the metrics server (/metrics, /health, /status), worker pool,
//     cancellation monitor, and status reporter.
//  3. Submit one task per input file (times the configured copy count);
//     submission blocks when the queue is full.
//  4. Wait for the pool to drain. A termination signal during this phase
//     flips the monitor, which cancels every running task and short-circuits
//     tasks still waiting in the queue.
//  5. Stop components in reverse order and log final totals. The HTTP server
//     stops last so /status stays readable through the drain.
//
// Exit codes: 0 on a clean run (cancelled tasks included), 1 on startup or
// runtime failure, 2 on panic.
//
// # Usage
//
// Count words in files with defaults (workers = NumCPU):
//
//	./bin/wordmill corpus/*.txt
//
// Tune the pool and repeat each file four times:
//
//	./bin/wordmill --workers 8 --copies 4 big.txt
//
// Load settings from a file, override selectively:
//
//	WORDMILL_WORKERS=2 ./bin/wordmill --config wordmill.yaml notes.txt
//
// Validate configuration without running:
//
//	./bin/wordmill --config wordmill.json --validate
//
// While a run is live, inspect it:
//
//	curl localhost:9090/status   # running tasks, recent results, totals
//	curl localhost:9090/health   # component health
//	curl localhost:9090/metrics  # Prometheus metrics
//
// # What Belongs Where
//
//   - task: counting rules, Result shape, cancellation checkpoints
//   - registry: worker-keyed task registration and snapshots
//   - monitor: signal handling and the cancellation state machine
//   - reporter: totals, backlog of recent results, periodic reports, /status
//   - config: file/env/flag loading, validation, durations, signal names
//   - metric, health: Prometheus registration and component health
//   - errors: classified error wrapping shared by all packages
//   - pkg/worker, pkg/buffer: generic pool and ring buffer primitives
//
// Package boundaries run one direction: task knows nothing about the pool,
// the registry, or the reporter beyond the Registrar interface it accepts.
package wordmill
