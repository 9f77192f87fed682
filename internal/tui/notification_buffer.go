package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/taskdeck/internal/core/notify"
)

// pendingCap bounds the backlog between drains. The toast stack shows a
// handful at most; when the update loop stalls, old entries give way to
// recent ones.
const pendingCap = 32

// NotificationBuffer carries bus notifications from gateway and bridge
// goroutines into the update loop. Publishers never block: entries land in
// a bounded backlog and a coalesced wake-up nudges the program to drain.
type NotificationBuffer struct {
	mu      sync.Mutex
	pending []notify.Notification
	wake    chan struct{}
}

// NewNotificationBuffer constructs an empty buffer.
func NewNotificationBuffer() *NotificationBuffer {
	return &NotificationBuffer{wake: make(chan struct{}, 1)}
}

// Push queues a notification, dropping the oldest entry when the backlog
// is full.
func (b *NotificationBuffer) Push(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	if len(b.pending) >= pendingCap {
		b.pending = b.pending[1:]
	}
	b.pending = append(b.pending, n)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Drain hands back the backlog, oldest first, and resets it.
func (b *NotificationBuffer) Drain() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) == 0 {
		return nil
	}
	out := b.pending
	b.pending = nil
	return out
}

// WaitForSignal blocks until at least one notification is queued.
func (b *NotificationBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.wake
		return drainNotificationsMsg{}
	}
}
