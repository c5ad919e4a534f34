package health

import (
	"encoding/json"
	"net/http"
)

// Handler returns an HTTP handler serving the monitor's aggregated health as
// JSON. Healthy and degraded systems answer 200; an unhealthy system answers
// 503 so load balancers and probes fail over without parsing the body.
func Handler(m *Monitor, systemName string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		status := m.AggregateHealth(systemName)

		code := http.StatusOK
		if status.IsUnhealthy() {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	})
}
