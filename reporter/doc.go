// Package reporter gives the runner its periodic heartbeat and its status
// surface.
//
// A Reporter does two independent jobs. As a sink, Record accepts each
// finished task's Result, keeps the most recent ones in a bounded circular
// backlog (oldest dropped first), and maintains outcome totals; this works
// from construction on, whether or not the reporter was started. As a
// ticker, Start spawns a loop that every interval snapshots the task
// registry and logs one line per running task with its worker, elapsed
// time, and line count.
//
// Handler serves both views as a single JSON document: the live rows, the
// recent results, and the totals. Stop halts the tick loop only; the
// backlog and totals stay readable for final reporting.
package reporter
