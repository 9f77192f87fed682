package board

import (
	"github.com/rs/zerolog"

	"github.com/opsdeck/taskdeck/internal/bridge"
	"github.com/opsdeck/taskdeck/internal/core/domain"
	"github.com/opsdeck/taskdeck/internal/core/logging"
	"github.com/opsdeck/taskdeck/internal/core/notify"
)

// Notifier turns hub events into user-facing notifications and refresh
// requests. It resolves names from the store when it can; a task the cache
// has never seen still produces a toast, just with its ID instead of a
// title.
type Notifier struct {
	store   *Store
	bus     *notify.Bus
	refresh func()
	log     zerolog.Logger
}

// NewNotifier wires a notifier. refresh is invoked after every event so
// the owner can schedule a board reload; it must not block.
func NewNotifier(store *Store, bus *notify.Bus, refresh func()) *Notifier {
	if refresh == nil {
		refresh = func() {}
	}
	return &Notifier{
		store:   store,
		bus:     bus,
		refresh: refresh,
		log:     logging.Component("notifier"),
	}
}

// Attach subscribes the notifier to the bridge's event streams.
func (n *Notifier) Attach(b *bridge.Bridge) {
	b.SubscribeNewTaskCreated(n.onCreated)
	b.SubscribeTaskAccepted(n.onAccepted)
	b.SubscribeTaskStatusChanged(n.onStatusChanged)
}

func (n *Notifier) onCreated(p bridge.NewTaskCreatedPayload) {
	n.log.Debug().Str("task", p.Task.ID).Msg("hub: task created")
	n.bus.Infof("New task: %s", n.taskLabel(p.Task.ID, p.Task.Title))
	n.refresh()
}

func (n *Notifier) onAccepted(p bridge.TaskAcceptedPayload) {
	n.log.Debug().Str("task", p.Task.ID).Int64("worker", p.WorkerID).Msg("hub: task accepted")

	who := "a worker"
	if w, ok := n.store.WorkerByID(p.WorkerID); ok {
		who = w.FullName
	}
	n.bus.Successf("%s accepted %s", who, n.taskLabel(p.Task.ID, p.Task.Title))
	n.refresh()
}

func (n *Notifier) onStatusChanged(p bridge.TaskStatusChangedPayload) {
	n.log.Debug().Str("task", p.TaskID).Str("status", p.NewStatus).Msg("hub: status changed")

	label := n.taskLabel(p.TaskID, "")
	status, known := domain.ParseTaskStatus(p.NewStatus)
	if !known {
		n.bus.Infof("%s changed status", label)
		n.refresh()
		return
	}

	switch status {
	case domain.StatusOnReview:
		n.bus.Infof("%s is ready for review", label)
	case domain.StatusDone:
		n.bus.Successf("%s is done", label)
	case domain.StatusInProgress:
		n.bus.Infof("%s is back in progress", label)
	default:
		n.bus.Infof("%s moved to %s", label, status.Label())
	}
	n.refresh()
}

// taskLabel prefers the pushed title, then the cached one, then the raw ID.
func (n *Notifier) taskLabel(id, pushedTitle string) string {
	if pushedTitle != "" {
		return "Task " + `"` + pushedTitle + `"`
	}
	if t, ok := n.store.TaskByID(id); ok && t.Title != "" {
		return "Task " + `"` + t.Title + `"`
	}
	return "Task " + id
}
