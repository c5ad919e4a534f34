// Package errors provides standardized error handling patterns for wordmill components.
//
// # Overview
//
// The errors package implements a three-class error classification system for
// the task runner: Transient (temporary, the run continues), Invalid (bad
// input or configuration, do not retry), and Fatal (unrecoverable, stop the
// process).
//
// Classification lets the runner make decisions without error string
// matching: a task that fails to open its input file is a local,
// per-task condition, while a nil registry handed to the cancellation
// monitor means the process cannot establish its safety contract and must
// exit.
//
// # Error Classification
//
//   - Transient: read errors mid-file, shutdown in progress, context
//     timeouts (the system stays healthy, the affected task ends early)
//   - Invalid: missing input files, malformed configuration (operator input
//     problem, never self-healing)
//   - Fatal: broken component wiring, missing required configuration
//     (startup aborts with a diagnostic)
//
// The classification system integrates with Go's standard error handling,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Quick Start
//
// Use standard error variables for known conditions:
//
//	if f, err := os.Open(path); err != nil {
//	    return errors.WrapInvalid(err, "Task", "Run", "open input file")
//	}
//
// Wrap errors with context for debugging:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")
//	errors.WrapInvalid(err, "Component", "Method", "action")
//	errors.WrapFatal(err, "Component", "Method", "action")
//
// The generic Wrap() function adds context without forcing a class.
//
// # Standard Error Variables
//
// Pre-defined variables, organized by category:
//
//   - Component lifecycle: ErrAlreadyStarted, ErrNotStarted, ErrAlreadyStopped, ErrShuttingDown
//   - Task execution: ErrFileOpen, ErrFileRead
//   - Wiring: ErrNilRegistry, ErrNilNotify
//   - Configuration: ErrInvalidConfig, ErrMissingConfig, ErrConfigNotFound
//
// # Thread Safety
//
// All classification and wrapping operations are thread-safe. Error
// variables are immutable and safe for concurrent access. ClassifiedError
// values are safe to share across goroutines after creation.
package errors
