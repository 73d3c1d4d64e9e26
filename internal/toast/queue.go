// Package toast keeps the dashboard's ephemeral notifications. Nothing is
// persisted; entries disappear when their duration elapses.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Warning Type = "warning"
	Info    Type = "info"
)

const (
	DefaultDuration = 2 * time.Second
	SuccessDuration = 3 * time.Second
	ErrorDuration   = 5 * time.Second
	// Sticky toasts stay until removed explicitly.
	Sticky time.Duration = 0
)

type Toast struct {
	ID       string
	Type     Type
	Message  string
	Duration time.Duration

	expiresAt time.Time
}

type entry struct {
	toast Toast
	timer clockwork.Timer
	done  chan struct{}
}

// Queue is an ordered list of toasts, safe for concurrent use.
type Queue struct {
	clock   clockwork.Clock
	mu      sync.Mutex
	entries []*entry
}

func NewQueue(clock clockwork.Clock) *Queue {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Queue{clock: clock}
}

// Show appends a toast and returns its id. An empty id is replaced with a
// generated one. A positive duration schedules removal.
func (q *Queue) Show(typ Type, message string, duration time.Duration, id string) string {
	if id == "" {
		id = "toast-" + uuid.NewString()
	}
	e := &entry{
		toast: Toast{ID: id, Type: typ, Message: message, Duration: duration},
		done:  make(chan struct{}),
	}

	q.mu.Lock()
	if duration > 0 {
		e.toast.expiresAt = q.clock.Now().Add(duration)
		e.timer = q.clock.NewTimer(duration)
	}
	q.entries = append(q.entries, e)
	q.mu.Unlock()

	if e.timer != nil {
		go q.expire(e)
	}
	return id
}

func (q *Queue) expire(e *entry) {
	select {
	case <-e.timer.Chan():
	case <-e.done:
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	for i, existing := range q.entries {
		if existing == e {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

// Remove drops every toast with id immediately.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.toast.ID == id {
			stopTimer(e)
			continue
		}
		kept = append(kept, e)
	}
	clear(q.entries[len(kept):])
	q.entries = kept
}

func (q *Queue) ClearAll() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, e := range q.entries {
		stopTimer(e)
	}
	q.entries = nil
}

// List returns the live toasts in the order they were shown. Entries whose
// duration has elapsed are hidden even if their timer has not fired yet.
func (q *Queue) List() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.clock.Now()
	toasts := make([]Toast, 0, len(q.entries))
	for _, e := range q.entries {
		if !e.toast.expiresAt.IsZero() && !now.Before(e.toast.expiresAt) {
			continue
		}
		toasts = append(toasts, e.toast)
	}
	return toasts
}

// Has reports whether a live toast with id is queued.
func (q *Queue) Has(id string) bool {
	for _, t := range q.List() {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (q *Queue) Len() int {
	return len(q.List())
}

// stopTimer must be called with the entry already unlinked from the queue,
// which guarantees done is closed once.
func stopTimer(e *entry) {
	if e.timer != nil {
		e.timer.Stop()
	}
	close(e.done)
}
