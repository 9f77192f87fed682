// Package bridge maintains the websocket connection to the task
// notification hub and dispatches typed events to subscribers. The bridge
// never mutates application state; that belongs to the board.
package bridge

import (
	"encoding/json"

	"github.com/opsdeck/taskdeck/internal/core/domain"
)

// Event names the hub pushes.
type Event string

const (
	EventNewTaskCreated    Event = "NewTaskCreated"
	EventTaskAccepted      Event = "TaskAccepted"
	EventTaskStatusChanged Event = "TaskStatusChanged"
)

// envelope is the wire frame for every hub message.
type envelope struct {
	Event Event           `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewTaskCreatedPayload is pushed when a task is created anywhere.
type NewTaskCreatedPayload struct {
	Task TaskPayload `json:"task"`
}

// TaskAcceptedPayload is pushed when a worker accepts a task.
type TaskAcceptedPayload struct {
	Task     TaskPayload `json:"task"`
	WorkerID int64       `json:"workerId"`
}

// TaskStatusChangedPayload is pushed on any lifecycle move. NewStatus is
// the hub's string name for the status; resolve it with
// domain.ParseTaskStatus.
type TaskStatusChangedPayload struct {
	TaskID           string `json:"taskId"`
	NewStatus        string `json:"newStatus"`
	AssignedWorkerID *int64 `json:"assignedWorkerId,omitempty"`
}

// TaskPayload mirrors the hub's task shape.
type TaskPayload struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Status     int    `json:"status"`
	Department int    `json:"department"`
}

// DomainStatus returns the pushed status as a domain value.
func (p TaskPayload) DomainStatus() domain.TaskStatus {
	return domain.TaskStatus(p.Status)
}
