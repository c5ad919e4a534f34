// Package monitor turns an external notification, typically an OS signal,
// into cooperative cancellation of all running tasks.
//
// The monitor owns no signal wiring itself. The caller passes a
// receive-only channel, usually fed by signal.Notify, which keeps the
// monitor testable with a plain channel. One goroutine blocks on that
// channel; on the first value it snapshots the task registry and calls
// Cancel on every task found, then exits. Context cancellation, channel
// close, or Stop release the goroutine without cancelling anything, which
// is the normal path when the workload drains before any signal arrives.
//
// The lifecycle is one-way: WAITING, then NOTIFIED and CANCELLING when a
// signal arrives, and finally DONE. Done() exposes a channel for joining
// on the transition to DONE.
package monitor
