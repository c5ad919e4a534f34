// Package buffer provides thread-safe circular buffers with configurable overflow
// policies, built-in statistics tracking, and optional Prometheus metrics integration.
//
// # Overview
//
// The buffer package implements fixed-capacity circular buffers for retaining
// bounded histories in concurrent systems. Buffers are generic, thread-safe,
// and observable through always-on statistics and optional metrics. The
// status reporter uses one to retain the most recent task results for its
// HTTP endpoint.
//
// # Quick Start
//
// Basic buffer creation:
//
//	buf, err := buffer.NewCircularBuffer[int](100)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Write data
//	err = buf.Write(42)
//
//	// Read data
//	value, ok := buf.Read()
//
//	// Snapshot without consuming
//	all := buf.Items()
//
// With overflow policy, drop callback, and metrics:
//
//	buf, err := buffer.NewCircularBuffer[task.Result](100,
//		buffer.WithOverflowPolicy[task.Result](buffer.DropOldest),
//		buffer.WithDropCallback[task.Result](func(r task.Result) {
//			log.Printf("dropped result %s", r.TaskID)
//		}),
//		buffer.WithMetrics[task.Result](registry, "reporter_backlog"),
//	)
//
// # Overflow Policies
//
// DropOldest (default): a write to a full buffer evicts the oldest retained
// item, so the buffer always holds the most recent Capacity() items.
//
// DropNewest: a write to a full buffer discards the incoming item, so the
// buffer holds the first Capacity() items it saw.
//
// Either way Write never blocks and never fails on a full buffer; the drop
// callback, when set, observes every evicted item.
//
// # Observability
//
// Statistics are always collected and cost a few atomic operations per
// write: totals for writes, reads, peeks, overflows, and drops, plus
// current/max size. Stats().Summary() returns a JSON-friendly snapshot.
//
// Prometheus metrics are opt-in via WithMetrics(registry, prefix) and expose
// the same counters under the wordmill_buffer_* families with the prefix as
// the component label.
//
// # Thread Safety
//
// All operations are safe for concurrent use. Reads and snapshots take a
// read lock; writes take the write lock. Drop callbacks run after the lock
// is released, so a callback may safely touch the buffer again.
package buffer
