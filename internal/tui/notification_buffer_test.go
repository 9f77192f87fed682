package tui

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/taskdeck/internal/core/notify"
)

func TestNotificationBuffer_PushDrain(t *testing.T) {
	b := NewNotificationBuffer()

	b.Push(notify.Notification{ID: 1, Message: "one"})
	b.Push(notify.Notification{ID: 2, Message: "two"})

	got := b.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Message)
	assert.Equal(t, "two", got[1].Message)
	assert.False(t, got[0].CreatedAt.IsZero())

	// Drained; a second drain is empty.
	assert.Nil(t, b.Drain())
}

func TestNotificationBuffer_signal_is_coalesced(t *testing.T) {
	b := NewNotificationBuffer()

	// Many pushes produce at most one pending signal.
	for i := 0; i < 10; i++ {
		b.Push(notify.Notification{ID: int64(i)})
	}

	select {
	case <-b.wake:
	default:
		t.Fatal("expected a pending signal")
	}
	select {
	case <-b.wake:
		t.Fatal("expected signal channel to be drained")
	default:
	}

	assert.Len(t, b.Drain(), 10)
}

func TestNotificationBuffer_overflow_drops_oldest(t *testing.T) {
	b := NewNotificationBuffer()

	for i := 0; i < pendingCap+3; i++ {
		b.Push(notify.Notification{ID: int64(i)})
	}

	got := b.Drain()
	require.Len(t, got, pendingCap)
	// The first three entries gave way; the newest survived.
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(pendingCap+2), got[len(got)-1].ID)
}

func TestNotificationBuffer_concurrent_push(t *testing.T) {
	b := NewNotificationBuffer()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			b.Push(notify.Notification{ID: id})
		}(int64(i))
	}
	wg.Wait()

	assert.Len(t, b.Drain(), 20)
}
