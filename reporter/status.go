package reporter

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/c360/wordmill/task"
)

// RunningTask is one row of the live status snapshot.
type RunningTask struct {
	TaskID         string  `json:"task_id"`
	Path           string  `json:"path"`
	WorkerID       int     `json:"worker_id"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Lines          int64   `json:"lines"`
	Words          int64   `json:"words"`
}

// Running returns one row per registered task, ordered by worker ID. Each
// row reads only the task's atomic progress counters, so taking a snapshot
// never disturbs the run.
func (r *Reporter) Running() []RunningTask {
	tasks := r.registry.Snapshot()

	rows := make([]RunningTask, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, RunningTask{
			TaskID:         t.ID(),
			Path:           t.Path(),
			WorkerID:       t.WorkerID(),
			ElapsedSeconds: t.Elapsed().Seconds(),
			Lines:          t.Lines(),
			Words:          t.Words(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].WorkerID < rows[j].WorkerID
	})
	return rows
}

type statusTotals struct {
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	Failed    int64 `json:"failed"`
}

// statusPayload is the /status response body.
type statusPayload struct {
	Timestamp time.Time     `json:"timestamp"`
	Running   []RunningTask `json:"running"`
	Recent    []task.Result `json:"recent"`
	Totals    statusTotals  `json:"totals"`
}

// Handler returns an HTTP handler serving the live task snapshot, the
// recent-result backlog, and outcome totals as JSON.
func (r *Reporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		completed, cancelled, failed := r.Totals()
		payload := statusPayload{
			Timestamp: time.Now().UTC(),
			Running:   r.Running(),
			Recent:    r.Backlog(),
			Totals: statusTotals{
				Completed: completed,
				Cancelled: cancelled,
				Failed:    failed,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(payload)
	})
}
