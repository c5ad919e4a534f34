// Package config defines the wordmill runtime configuration and its loader.
//
// # Overview
//
// Configuration is resolved in three layers, later layers winning:
//
//  1. Built-in defaults (DefaultConfig)
//  2. An optional JSON or YAML file (Loader.LoadFile, format chosen by
//     extension)
//  3. WORDMILL_* environment variables (applied by the Loader)
//
// Command-line flags are applied on top by the cmd package after loading.
//
// # Structure
//
// The Config struct has four sections:
//
//   - runner: worker pool size (0 = one worker per logical CPU), pending-task
//     queue capacity, and how many task copies to submit per input file
//   - reporter: periodic status logging interval and how many completion
//     records to retain
//   - metrics: the operational HTTP server (disabled by default)
//   - shutdown: which signals trigger cancellation, and how long to wait for
//     workers to drain on stop
//
// Durations in files are human-readable strings ("4s", "250ms"); the
// Duration type handles both JSON and YAML forms.
//
// # Validation
//
// Loader validates by default and returns field-qualified errors
// ("runner.copies must be at least 1"). Signal names are normalized to their
// canonical SIGXXX form in place, so downstream wiring only sees canonical
// names.
package config
