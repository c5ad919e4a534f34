package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// Outcome classifies how a task execution ended.
type Outcome int

const (
	// OutcomeCompleted means the task read its whole file.
	OutcomeCompleted Outcome = iota

	// OutcomeCancelled means the task stopped at a cancellation checkpoint.
	OutcomeCancelled

	// OutcomeFailed means the task could not open or read its file.
	OutcomeFailed
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the outcome as its string form.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON parses an outcome from its string form.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "completed":
		*o = OutcomeCompleted
	case "cancelled":
		*o = OutcomeCancelled
	case "failed":
		*o = OutcomeFailed
	default:
		return fmt.Errorf("unknown outcome %q", s)
	}
	return nil
}

// Result is the terminal record of one task execution.
type Result struct {
	TaskID   string        `json:"task_id"`
	Path     string        `json:"path"`
	WorkerID int           `json:"worker_id"`
	Outcome  Outcome       `json:"outcome"`
	Lines    int64         `json:"lines"`
	Words    int64         `json:"words"`
	Distinct int           `json:"distinct_words"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	Error    string        `json:"error,omitempty"`

	// Err carries the underlying error for programmatic checks; Error above
	// holds its text for serialized output.
	Err error `json:"-"`
}
