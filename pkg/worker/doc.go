// Package worker provides a generic, thread-safe worker pool for concurrent task processing.
//
// # Overview
//
// The worker package implements a fixed-size worker pool with:
//   - Generic type support (Go 1.18+) for type-safe work processing
//   - A bounded FIFO queue with blocking submit (no work is ever dropped)
//   - Stable per-worker integer IDs passed to the processor
//   - Wait() to join on all accepted work without stopping the pool
//   - Context-aware cancellation and graceful shutdown
//   - Always-on statistics plus optional Prometheus metrics
//
// # Core Concepts
//
// Worker Pool Pattern:
//
// The pool manages a fixed number of goroutines (workers) that pull work
// items from a bounded channel (queue). Worker count defaults to the number
// of CPUs when not specified. Submissions beyond the worker count queue up
// rather than spawning goroutines, so memory and goroutine overhead stay
// fixed regardless of load.
//
// Worker Identity:
//
// Each worker owns an ID in [0, workers) for the pool's lifetime. The ID is
// passed to the processor so downstream code can attribute work to a
// specific worker:
//
//	pool := worker.NewPool(
//	    0,    // workers (0 = NumCPU)
//	    256,  // queue size
//	    func(ctx context.Context, workerID int, job Job) {
//	        log.Printf("worker %d processing job %d", workerID, job.ID)
//	    },
//	)
//
// Blocking Submit:
//
// Submit() performs a plain channel send. While the queue has room it
// returns immediately; when the queue is full it blocks until a worker
// frees a slot. Accepted work therefore runs exactly once - there is no
// drop path and no retry loop for callers to write. The trade-off is that
// Submit's latency is unbounded while workers are saturated; callers that
// need a bound should wrap Submit in a goroutine with their own deadline.
//
// Joining on Completion:
//
// Wait() blocks until every item accepted by Submit has finished
// processing. It does not stop the pool: the usual sequence is submit
// everything, Wait() for the drain, then Stop() to release the workers.
// Wait() is idempotent and returns immediately when nothing is pending.
//
// # Usage Example
//
//	pool := worker.NewPool(4, 256, processJob)
//
//	if err := pool.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, job := range jobs {
//	    if err := pool.Submit(job); err != nil {
//	        log.Printf("submit failed: %v", err)
//	    }
//	}
//
//	pool.Wait()
//	if err := pool.Stop(30 * time.Second); err != nil {
//	    log.Printf("stop: %v", err)
//	}
//
// With Prometheus metrics:
//
//	registry := metric.NewMetricsRegistry()
//
//	pool := worker.NewPool(
//	    4, 256, processJob,
//	    worker.WithMetricsRegistry[Job](registry, "wordmill_pool"),
//	)
//
//	// Metrics exposed:
//	// - wordmill_pool_queue_depth (current queue depth)
//	// - wordmill_pool_utilization (queue depth / queue size)
//	// - wordmill_pool_submitted_total (total submitted)
//	// - wordmill_pool_processed_total (total processed)
//	// - wordmill_pool_processing_duration_seconds (histogram)
//
// # Shutdown
//
// Stop(timeout) closes the queue, lets workers drain the remaining items,
// and waits up to the timeout for them to exit. ErrStopTimeout means one or
// more workers are still busy; the pool is marked stopped either way and
// repeat calls return nil. Cancelling the context passed to Start() makes
// workers exit without draining the queue - use it for abandon-everything
// shutdown, and Stop for the orderly path.
//
// # Thread Safety
//
// All public methods are safe for concurrent use. Submit, Start, and Stop
// share a lifecycle mutex; holding it through Submit's channel send means a
// send can never race Stop's close of the queue. Stats() reads atomics and
// takes no locks. Concurrent Submits serialize on the mutex, which is
// plenty for feeding file-sized work items and keeps the lifecycle rules
// easy to reason about.
//
// # Errors
//
// The worker package uses plain sentinel errors because pool errors are
// programming errors or shutdown conditions, never data-dependent:
//
//   - ErrPoolNotStarted: Submit before Start
//   - ErrPoolAlreadyStarted: Start called twice
//   - ErrPoolStopped: Submit after Stop
//   - ErrNilProcessor: validation failure at construction (panics)
//   - ErrStopTimeout: workers still busy when the Stop timeout expired
package worker
