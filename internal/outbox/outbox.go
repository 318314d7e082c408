// Package outbox carries ledger mutations to the persistence sink. The
// in-memory ledger is authoritative for the session; commands queued here are
// applied at-least-once in order by a single worker, and a failure is logged
// and surfaced as a warning without ever reverting the local state.
package outbox

import (
	"fmt"
	"log"
	"sync"
)

// PersistenceFailureError reports a sink write that did not go through. It is
// non-fatal: the local mutation stays applied and durability is at risk until
// an operator intervenes.
type PersistenceFailureError struct {
	Op  string
	Err error
}

func (e *PersistenceFailureError) Error() string {
	return fmt.Sprintf("persistence failure on %s: %v", e.Op, e.Err)
}

func (e *PersistenceFailureError) Unwrap() error { return e.Err }

// Command is one pending write against the sink. Run captures the repository
// call; Op names it for logging and warnings.
type Command struct {
	Op  string
	Run func() error
}

type Outbox struct {
	queue    chan Command
	done     chan struct{}
	notify   func(*PersistenceFailureError)
	disabled bool

	mu      sync.Mutex
	dropped int
	failed  int
}

// New creates an outbox that delivers commands to the sink. notify, if
// non-nil, receives every persistence failure (the API layer forwards these
// to connected clients as durability warnings). Call Run in a goroutine and
// Close on shutdown.
func New(buffer int, notify func(*PersistenceFailureError)) *Outbox {
	return &Outbox{
		queue:  make(chan Command, buffer),
		done:   make(chan struct{}),
		notify: notify,
	}
}

// NewDisabled creates the offline-mode outbox: commands are counted and
// dropped, matching the app's no-backend fallback.
func NewDisabled() *Outbox {
	return &Outbox{disabled: true, done: make(chan struct{})}
}

// Enqueue accepts a command for delivery. The caller has already applied the
// mutation locally; this never blocks the ledger path beyond the channel
// buffer.
func (o *Outbox) Enqueue(op string, run func() error) {
	if o.disabled {
		o.mu.Lock()
		o.dropped++
		o.mu.Unlock()
		return
	}
	o.queue <- Command{Op: op, Run: run}
}

// Run delivers queued commands in order until Close is called.
func (o *Outbox) Run() {
	defer close(o.done)
	for cmd := range o.queue {
		if err := cmd.Run(); err != nil {
			failure := &PersistenceFailureError{Op: cmd.Op, Err: err}
			log.Printf("outbox: %v", failure)
			o.mu.Lock()
			o.failed++
			o.mu.Unlock()
			if o.notify != nil {
				o.notify(failure)
			}
		}
	}
}

// Close drains the queue and stops the worker.
func (o *Outbox) Close() {
	if o.disabled {
		close(o.done)
		return
	}
	close(o.queue)
	<-o.done
}

// Dropped reports commands discarded in offline mode.
func (o *Outbox) Dropped() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dropped
}

// Failed reports commands whose sink write failed.
func (o *Outbox) Failed() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.failed
}
