// Package task implements the unit of work: counting word frequencies in a
// single text file.
//
// A Task is created with New, submitted to a worker pool, and executed by
// calling Run with the identity of the worker that picked it up. While it
// runs, the task is visible through the injected Registrar so that other
// components (the cancellation monitor, the status reporter) can observe or
// cancel it. Run returns a Result summarizing the outcome.
//
// # Counting Rules
//
// Files are read line by line. A line with no bytes is skipped entirely; any
// other line increments the line count and contributes its
// whitespace-separated fields to the word count and the per-word frequency
// map. Words are compared byte-exact, with no case folding or punctuation
// stripping.
//
// # Cancellation
//
// Cancellation is cooperative. Cancel sets a flag that the run checks after
// every scanned line, so a request takes effect within one line of input
// rather than interrupting mid-read. A cancelled run keeps the counts
// accumulated so far and reports OutcomeCancelled. Cancel returns false when
// the task already finished and the request could not be delivered.
//
// # Concurrency
//
// One goroutine runs the task; any goroutine may call Cancel or read the
// progress accessors (Lines, Words, Elapsed, WorkerID). The word frequency
// map is owned by the run and must be read through Counts only after Done
// reports true.
package task
