package tui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/taskdeck/internal/core/notify"
)

func TestToastController_Push(t *testing.T) {
	c := NewToastController(defaultToastTTL)
	assert.False(t, c.HasToasts())

	c.Push(notify.Notification{ID: 1, Level: notify.LevelInfo, Message: "hello"})
	require.True(t, c.HasToasts())
	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, defaultToastTTL, c.Toasts()[0].remaining)
}

func TestToastController_evicts_oldest_beyond_max(t *testing.T) {
	c := NewToastController(defaultToastTTL)
	for i := 0; i < maxToasts+2; i++ {
		c.Push(notify.Notification{ID: int64(i + 1), Message: fmt.Sprintf("toast %d", i)})
	}

	toasts := c.Toasts()
	require.Len(t, toasts, maxToasts)
	// The two oldest were evicted.
	assert.Equal(t, int64(3), toasts[0].notification.ID)
	assert.Equal(t, int64(maxToasts+2), toasts[len(toasts)-1].notification.ID)
}

func TestToastController_Tick_expires(t *testing.T) {
	c := NewToastController(200 * time.Millisecond)
	c.Push(notify.Notification{ID: 1})
	c.Push(notify.Notification{ID: 2})

	c.Tick(100 * time.Millisecond)
	assert.Len(t, c.Toasts(), 2)

	c.Tick(100 * time.Millisecond)
	assert.False(t, c.HasToasts())
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController(defaultToastTTL)
	c.Push(notify.Notification{ID: 1})
	c.Push(notify.Notification{ID: 2})

	c.Dismiss()
	require.Len(t, c.Toasts(), 1)
	assert.Equal(t, int64(1), c.Toasts()[0].notification.ID)

	c.DismissAll()
	assert.False(t, c.HasToasts())

	// Dismiss on an empty stack is a no-op.
	c.Dismiss()
	assert.False(t, c.HasToasts())
}

func TestToastController_Ticking(t *testing.T) {
	c := NewToastController(defaultToastTTL)
	assert.False(t, c.Ticking())
	c.SetTicking(true)
	assert.True(t, c.Ticking())
}

func TestToastController_zero_ttl_falls_back_to_default(t *testing.T) {
	c := NewToastController(0)
	c.Push(notify.Notification{ID: 1})
	assert.Equal(t, defaultToastTTL, c.Toasts()[0].remaining)
}
