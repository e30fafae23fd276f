package ui

import (
	"sync"
	"time"
)

// NotificationKind selects the toast style.
type NotificationKind string

const (
	KindInfo  NotificationKind = "info"
	KindError NotificationKind = "error"
)

// Notification is a toast shown to the user.
type Notification struct {
	Title       string
	Description string
	Kind        NotificationKind
	// Duration is how long the toast stays visible; zero lets the client decide.
	Duration time.Duration
}

// Outbox buffers notifications until the HTTP layer drains them into a response.
type Outbox struct {
	mu      sync.Mutex
	pending []Notification
}

// Emit implements NotificationSink.
func (o *Outbox) Emit(n Notification) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, n)
}

// Drain returns and clears the buffered notifications in emission order.
func (o *Outbox) Drain() []Notification {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.pending
	o.pending = nil
	return out
}

func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}
