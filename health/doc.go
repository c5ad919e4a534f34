// Package health tracks per-component health for the wordmill runner and
// aggregates it into a single system status.
//
// Components (worker pool, cancellation monitor, status reporter) push
// their state into a shared Monitor. The Monitor answers point queries,
// returns copied snapshots, and rolls everything up with Aggregate:
// any unhealthy sub-component makes the system unhealthy, otherwise any
// degraded sub-component makes it degraded, otherwise the system is
// healthy.
//
// # Quick Start
//
//	monitor := health.NewMonitor()
//	monitor.UpdateHealthy("pool", "8 workers running")
//	monitor.UpdateDegraded("reporter", "backlog at capacity")
//
//	system := monitor.AggregateHealth("wordmill")
//	fmt.Println(system.Status) // "degraded"
//
// Handler exposes the aggregate over HTTP as JSON. It serves 503 when
// the system is unhealthy and 200 otherwise, so it plugs directly into
// load-balancer and orchestrator probes:
//
//	mux.Handle("/health", health.Handler(monitor, "wordmill"))
//
// All Monitor methods are safe for concurrent use.
package health
