// Package registry maps pool worker identities to the tasks they are
// currently running.
//
// The registry is plain shared state: tasks register themselves when they
// start reading and unregister when they finish, and observers take
// snapshots. All operations serialize on one mutex held only while touching
// the table, never across I/O. There is no global instance; callers create
// a Registry and inject it into the components that need it.
package registry
