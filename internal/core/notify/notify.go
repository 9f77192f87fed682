// Package notify defines transient user-facing notifications and the
// in-process bus that dispatches them.
package notify

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	ID        int64
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(Notification)

// nextID hands out process-unique notification identifiers.
var nextID atomic.Int64

// Bus is a synchronous in-process notification bus. It dispatches
// notifications to subscribers inline, in registration order.
type Bus struct {
	mu          sync.Mutex
	subscribers []Subscriber
}

// NewBus creates an empty notification bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish assigns the notification an ID and timestamp and dispatches it
// to all subscribers.
func (b *Bus) Publish(n Notification) {
	if n.ID == 0 {
		n.ID = nextID.Add(1)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Successf publishes a success-level notification.
func (b *Bus) Successf(format string, args ...any) {
	b.Publish(Notification{Level: LevelSuccess, Message: fmt.Sprintf(format, args...)})
}

// Errorf publishes an error-level notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(Notification{Level: LevelError, Message: fmt.Sprintf(format, args...)})
}

// Warnf publishes a warning-level notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.Publish(Notification{Level: LevelWarning, Message: fmt.Sprintf(format, args...)})
}

// Infof publishes an info-level notification.
func (b *Bus) Infof(format string, args ...any) {
	b.Publish(Notification{Level: LevelInfo, Message: fmt.Sprintf(format, args...)})
}
