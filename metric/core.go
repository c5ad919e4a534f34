package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the runner-level metrics shared by all components
type Metrics struct {
	// Task metrics
	TasksStarted  prometheus.Counter
	TasksFinished *prometheus.CounterVec
	TasksRunning  prometheus.Gauge
	TaskDuration  prometheus.Histogram

	// Throughput metrics
	LinesProcessed prometheus.Counter
	WordsCounted   prometheus.Counter

	// Cancellation metrics
	CancelRequests *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all runner metrics
func NewMetrics() *Metrics {
	return &Metrics{
		TasksStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "wordmill",
				Subsystem: "tasks",
				Name:      "started_total",
				Help:      "Total number of tasks that began executing",
			},
		),

		TasksFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wordmill",
				Subsystem: "tasks",
				Name:      "finished_total",
				Help:      "Total number of finished tasks by outcome",
			},
			[]string{"outcome"},
		),

		TasksRunning: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "wordmill",
				Subsystem: "tasks",
				Name:      "running",
				Help:      "Number of tasks currently registered as running",
			},
		),

		TaskDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "wordmill",
				Subsystem: "tasks",
				Name:      "duration_seconds",
				Help:      "Task execution duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		LinesProcessed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "wordmill",
				Subsystem: "input",
				Name:      "lines_processed_total",
				Help:      "Total number of non-empty lines processed across all tasks",
			},
		),

		WordsCounted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "wordmill",
				Subsystem: "input",
				Name:      "words_counted_total",
				Help:      "Total number of words counted across all tasks",
			},
		),

		CancelRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wordmill",
				Subsystem: "cancel",
				Name:      "requests_total",
				Help:      "Cancellation requests dispatched by the monitor, by delivery result",
			},
			[]string{"delivered"},
		),
	}
}

// RecordTaskStarted increments the started-task counter
func (c *Metrics) RecordTaskStarted() {
	c.TasksStarted.Inc()
}

// RecordTaskFinished records one finished task with its final counters
func (c *Metrics) RecordTaskFinished(outcome string, lines, words uint64, duration time.Duration) {
	c.TasksFinished.WithLabelValues(outcome).Inc()
	c.LinesProcessed.Add(float64(lines))
	c.WordsCounted.Add(float64(words))
	c.TaskDuration.Observe(duration.Seconds())
}

// RecordRunningTasks updates the running-task gauge
func (c *Metrics) RecordRunningTasks(n int) {
	c.TasksRunning.Set(float64(n))
}

// RecordCancelRequest counts one cancellation request and whether the task
// accepted it
func (c *Metrics) RecordCancelRequest(delivered bool) {
	label := "false"
	if delivered {
		label = "true"
	}
	c.CancelRequests.WithLabelValues(label).Inc()
}
