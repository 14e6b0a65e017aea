// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, the session refresh job and a Workers
// aggregate that starts and stops several workers together.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker in the background and returns immediately. The
// worker runs until ctx is cancelled or Stop is called. Stop blocks until the
// worker has exited and is safe to call on a worker that is not running.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Start(ctx context.Context) { go w.loop(ctx) }
//	func (w *MyWorker) Stop()                     { /* cancel and wait */ }
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// SessionRefresher refreshes the current session when it is about to
// expire. Implemented by backend.LiveAuthClient.
type SessionRefresher interface {
	RefreshIfExpiring(ctx context.Context) error
}
