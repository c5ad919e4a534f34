// Package metric provides Prometheus metrics and the operational HTTP server
// for the wordmill runner.
//
// # Overview
//
// MetricsRegistry wraps a private prometheus.Registry with named
// registration: every collector is tracked under a "component.metric" key so
// duplicate registration is rejected with a classified error instead of a
// panic, and components can unregister cleanly. The registry always carries
// the core runner metrics plus the standard Go and process collectors.
//
// # Core Metrics
//
// All core metrics live under the "wordmill" namespace:
//
//   - wordmill_tasks_started_total: tasks that began executing
//   - wordmill_tasks_finished_total{outcome}: finished tasks by outcome
//     (completed, cancelled, failed)
//   - wordmill_tasks_running: tasks currently registered as running
//   - wordmill_tasks_duration_seconds: task execution time histogram
//   - wordmill_input_lines_processed_total: non-empty lines across all tasks
//   - wordmill_input_words_counted_total: words across all tasks
//   - wordmill_cancel_requests_total{delivered}: monitor cancellation
//     requests by delivery result
//
// Components with their own metrics (the worker pool) register them through
// the MetricsRegistrar interface rather than touching prometheus directly.
//
// # HTTP Server
//
// Server exposes the registry over HTTP with promhttp (OpenMetrics enabled),
// a /health endpoint, and a root index page. Extra routes, such as the
// status reporter's /status JSON endpoint or a real health aggregation
// handler, are mounted with WithRoute at construction. Start blocks until
// the server stops, so it runs on its own goroutine; Stop closes it.
package metric
