package registry

import (
	"fmt"
	"sync"

	"github.com/c360/wordmill/task"
)

// Registry tracks which task each pool worker is currently running. It is
// the shared view that the cancellation monitor and status reporter use to
// reach in-flight work.
//
// Worker identity is the int assigned by the pool. A worker runs one task
// at a time, so registering a second task under the same identity without
// an intervening Unregister is a broken lifecycle and panics.
type Registry struct {
	mu    sync.Mutex
	tasks map[int]*task.Task
}

// Compile-time check that Registry satisfies the task-side contract.
var _ task.Registrar = (*Registry)(nil)

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		tasks: make(map[int]*task.Task),
	}
}

// Register associates a worker identity with its running task. Panics if
// the identity already has a task registered.
func (r *Registry) Register(workerID int, t *task.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.tasks[workerID]; ok {
		panic(fmt.Sprintf("registry: worker %d already registered task %s", workerID, existing.ID()))
	}
	r.tasks[workerID] = t
}

// Unregister removes the association for a worker identity. Removing an
// identity with no registered task is a no-op.
func (r *Registry) Unregister(workerID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, workerID)
}

// Snapshot returns a point-in-time copy of all registered tasks. The slice
// is owned by the caller; tasks registered or unregistered afterwards do
// not affect it.
func (r *Registry) Snapshot() []*task.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*task.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	return out
}

// Len returns the number of currently registered tasks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}
