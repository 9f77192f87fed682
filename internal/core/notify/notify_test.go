package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_Publish_dispatches_in_order(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(func(n Notification) { order = append(order, "first:"+n.Message) })
	bus.Subscribe(func(n Notification) { order = append(order, "second:"+n.Message) })

	bus.Infof("hello")

	assert.Equal(t, []string{"first:hello", "second:hello"}, order)
}

func TestBus_Publish_assigns_unique_ids_and_timestamps(t *testing.T) {
	bus := NewBus()

	var got []Notification
	bus.Subscribe(func(n Notification) { got = append(got, n) })

	bus.Successf("task %q approved", "Inspect panel")
	bus.Errorf("load failed")

	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.NotZero(t, got[0].ID)
	assert.False(t, got[0].CreatedAt.IsZero())
	assert.Equal(t, LevelSuccess, got[0].Level)
	assert.Equal(t, `task "Inspect panel" approved`, got[0].Message)
	assert.Equal(t, LevelError, got[1].Level)
}

func TestBus_Publish_no_subscribers(t *testing.T) {
	bus := NewBus()
	bus.Warnf("nobody listening") // should not panic
}
