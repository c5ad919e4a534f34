package metric

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360/wordmill/errors"
)

// Server represents the operational HTTP server exposing metrics and status
type Server struct {
	port     int
	path     string
	server   *http.Server
	registry *MetricsRegistry
	routes   map[string]http.Handler
	mu       sync.Mutex // protects server field
}

// ServerOption configures optional Server behavior
type ServerOption func(*Server)

// WithRoute mounts an extra handler on the server mux. A "/health" route
// supplied here replaces the built-in static one.
func WithRoute(pattern string, handler http.Handler) ServerOption {
	return func(s *Server) {
		s.routes[pattern] = handler
	}
}

// NewServer creates a new metrics server with the provided registry
func NewServer(port int, path string, registry *MetricsRegistry, opts ...ServerOption) *Server {
	if path == "" {
		path = "/metrics"
	}
	if port == 0 {
		port = 9090
	}

	s := &Server{
		port:     port,
		path:     path,
		registry: registry,
		routes:   make(map[string]http.Handler),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// buildMux assembles the route table
func (s *Server) buildMux() *http.ServeMux {
	mux := http.NewServeMux()

	// Prometheus HTTP handler
	handler := promhttp.HandlerFor(
		s.registry.PrometheusRegistry(),
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		},
	)
	mux.Handle(s.path, handler)

	// Extra routes supplied at construction
	for pattern, h := range s.routes {
		mux.Handle(pattern, h)
	}

	// Static health endpoint unless the caller supplied one
	if _, ok := s.routes["/health"]; !ok {
		mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
		})
	}

	// Root handler with links to everything mounted
	links := []string{s.path, "/health"}
	for pattern := range s.routes {
		if pattern != "/health" {
			links = append(links, pattern)
		}
	}
	sort.Strings(links)

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html>\n<head><title>Wordmill</title></head>\n<body>\n<h1>Wordmill Runner</h1>\n")
		for _, link := range links {
			_, _ = fmt.Fprintf(w, "<p><a href=%q>%s</a></p>\n", link, link)
		}
		_, _ = fmt.Fprint(w, "</body>\n</html>")
	})

	return mux
}

// Start runs the HTTP server. It blocks until the server stops, so callers
// typically run it on its own goroutine; http.ErrServerClosed after Stop is
// the normal return.
func (s *Server) Start() error {
	s.mu.Lock()

	// Check if server is already running
	if s.server != nil {
		s.mu.Unlock()
		return errors.WrapInvalid(
			fmt.Errorf("server already running"),
			"Server", "Start", "cannot start server that is already running")
	}

	// Validate that we have a registry
	if s.registry == nil {
		s.mu.Unlock()
		return errors.WrapFatal(
			fmt.Errorf("nil registry"),
			"Server", "Start", "metrics registry not provided")
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.buildMux(),
	}
	srv := s.server
	s.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil {
		if err == http.ErrServerClosed {
			return err
		}
		return errors.WrapFatal(err, "Server", "Start",
			fmt.Sprintf("failed to start server on port %d", s.port))
	}

	return nil
}

// Stop stops the metrics server
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		err := s.server.Close()
		s.server = nil // reset server field to allow restart
		if err != nil {
			return errors.WrapTransient(err, "Server", "Stop",
				"failed to stop HTTP server")
		}
	}
	return nil
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("http://localhost:%d%s", s.port, s.path)
}
