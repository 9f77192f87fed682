package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/taskdeck/internal/bridge"
	"github.com/opsdeck/taskdeck/internal/core/domain"
	"github.com/opsdeck/taskdeck/internal/core/notify"
)

func newNotifierFixture() (*Notifier, *Store, *[]notify.Notification, *int) {
	store := NewStore()
	bus := notify.NewBus()

	var published []notify.Notification
	bus.Subscribe(func(n notify.Notification) { published = append(published, n) })

	refreshes := 0
	n := NewNotifier(store, bus, func() { refreshes++ })
	return n, store, &published, &refreshes
}

func TestNotifier_created_event(t *testing.T) {
	n, _, published, refreshes := newNotifierFixture()

	n.onCreated(bridge.NewTaskCreatedPayload{Task: bridge.TaskPayload{ID: "t-1", Title: "Install cameras"}})

	require.Len(t, *published, 1)
	assert.Equal(t, notify.LevelInfo, (*published)[0].Level)
	assert.Contains(t, (*published)[0].Message, "Install cameras")
	assert.Equal(t, 1, *refreshes)
}

func TestNotifier_accepted_event_resolves_worker_name(t *testing.T) {
	n, store, published, _ := newNotifierFixture()
	store.ReplaceWorkers([]domain.Worker{{TelegramID: 555, FullName: "Ada Mills"}})

	n.onAccepted(bridge.TaskAcceptedPayload{
		Task:     bridge.TaskPayload{ID: "t-1", Title: "Install cameras"},
		WorkerID: 555,
	})

	require.Len(t, *published, 1)
	assert.Equal(t, notify.LevelSuccess, (*published)[0].Level)
	assert.Contains(t, (*published)[0].Message, "Ada Mills")
}

func TestNotifier_accepted_event_unknown_worker(t *testing.T) {
	n, _, published, _ := newNotifierFixture()

	n.onAccepted(bridge.TaskAcceptedPayload{
		Task:     bridge.TaskPayload{ID: "t-1", Title: "Install cameras"},
		WorkerID: 999,
	})

	require.Len(t, *published, 1)
	assert.Contains(t, (*published)[0].Message, "a worker")
}

func TestNotifier_status_changed_phrasing(t *testing.T) {
	n, store, published, refreshes := newNotifierFixture()
	store.ReplaceTasks([]domain.Task{{ID: "t-1", Title: "Install cameras"}})

	n.onStatusChanged(bridge.TaskStatusChangedPayload{TaskID: "t-1", NewStatus: "OnReview"})
	n.onStatusChanged(bridge.TaskStatusChangedPayload{TaskID: "t-1", NewStatus: "Done"})
	n.onStatusChanged(bridge.TaskStatusChangedPayload{TaskID: "t-1", NewStatus: "InProgress"})

	require.Len(t, *published, 3)
	assert.Contains(t, (*published)[0].Message, "ready for review")
	assert.Equal(t, notify.LevelSuccess, (*published)[1].Level)
	assert.Contains(t, (*published)[1].Message, "done")
	assert.Contains(t, (*published)[2].Message, "back in progress")
	assert.Equal(t, 3, *refreshes)
}

func TestNotifier_status_changed_unknown_task_falls_back_to_id(t *testing.T) {
	n, _, published, _ := newNotifierFixture()

	n.onStatusChanged(bridge.TaskStatusChangedPayload{TaskID: "t-404", NewStatus: "Done"})

	require.Len(t, *published, 1)
	assert.Contains(t, (*published)[0].Message, "t-404")
}

func TestNotifier_status_changed_unknown_status_still_notifies(t *testing.T) {
	n, store, published, refreshes := newNotifierFixture()
	store.ReplaceTasks([]domain.Task{{ID: "t-1", Title: "Install cameras"}})

	n.onStatusChanged(bridge.TaskStatusChangedPayload{TaskID: "t-1", NewStatus: "Archived"})

	require.Len(t, *published, 1)
	assert.Equal(t, notify.LevelInfo, (*published)[0].Level)
	assert.Contains(t, (*published)[0].Message, "changed status")
	assert.Equal(t, 1, *refreshes)
}
