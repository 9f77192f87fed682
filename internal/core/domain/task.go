// Package domain defines the task and worker model shared by the gateway,
// the event bridge, and the dashboard views.
package domain

import (
	"time"
)

// TaskStatus is the position of a task in its lifecycle. Wire values are
// the integers the API uses.
type TaskStatus int

const (
	StatusToDo TaskStatus = iota
	StatusInProgress
	StatusOnReview
	StatusDone
)

// taskStatusLabels is the single authoritative status display map.
// All rendering and notification code consults it; nothing switches on
// status for labels anywhere else.
var taskStatusLabels = map[TaskStatus]string{
	StatusToDo:       "To Do",
	StatusInProgress: "In Progress",
	StatusOnReview:   "On Review",
	StatusDone:       "Done",
}

// taskStatusNames maps the string names the push hub uses for status values.
var taskStatusNames = map[string]TaskStatus{
	"ToDo":       StatusToDo,
	"InProgress": StatusInProgress,
	"OnReview":   StatusOnReview,
	"Done":       StatusDone,
}

// Label returns the display string for the status.
func (s TaskStatus) Label() string {
	if l, ok := taskStatusLabels[s]; ok {
		return l
	}
	return "Unknown"
}

// IsValid reports whether the status is one of the four defined values.
func (s TaskStatus) IsValid() bool {
	_, ok := taskStatusLabels[s]
	return ok
}

// IsTerminal reports whether no transition leads out of the status.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusDone
}

// transitions is the directed graph of legal status moves. ToDo→InProgress
// happens server-side on worker acceptance; the rest are user actions.
var transitions = map[TaskStatus][]TaskStatus{
	StatusToDo:       {StatusInProgress},
	StatusInProgress: {StatusOnReview},
	StatusOnReview:   {StatusDone, StatusInProgress},
	StatusDone:       {},
}

// CanTransitionTo reports whether moving from s to target is legal.
func (s TaskStatus) CanTransitionTo(target TaskStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s in one step.
func (s TaskStatus) NextStatuses() []TaskStatus {
	return transitions[s]
}

// ParseTaskStatus resolves a hub-supplied status name ("OnReview", ...).
func ParseTaskStatus(name string) (TaskStatus, bool) {
	s, ok := taskStatusNames[name]
	return s, ok
}

// TaskStatuses lists all statuses in lifecycle order, for filter menus.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{StatusToDo, StatusInProgress, StatusOnReview, StatusDone}
}

// Department is the organizational unit a task or worker belongs to.
// Empty is a server-side sentinel and is never user-selectable.
type Department int

const (
	DepartmentEmpty Department = iota
	DepartmentFrontend
	DepartmentBackend
	DepartmentUiUx
)

var departmentLabels = map[Department]string{
	DepartmentEmpty:    "Unassigned",
	DepartmentFrontend: "Frontend",
	DepartmentBackend:  "Backend",
	DepartmentUiUx:     "UI/UX",
}

// Label returns the display string for the department.
func (d Department) Label() string {
	if l, ok := departmentLabels[d]; ok {
		return l
	}
	return "Unknown"
}

// IsValid reports whether d is a defined department, including the sentinel.
func (d Department) IsValid() bool {
	_, ok := departmentLabels[d]
	return ok
}

// IsAssignable reports whether users may select the department on a form.
func (d Department) IsAssignable() bool {
	return d.IsValid() && d != DepartmentEmpty
}

// Departments lists the user-selectable departments.
func Departments() []Department {
	return []Department{DepartmentFrontend, DepartmentBackend, DepartmentUiUx}
}

// Task is a unit of work tracked on the board.
type Task struct {
	ID                 string
	Title              string
	Text               string
	Status             TaskStatus
	Department         Department
	AssignedWorkerID   *int64
	AssignedWorkerName string
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// Modified reports whether the task has been mutated since creation. Some
// server flows populate UpdatedAt on creation, so equality with CreatedAt
// must be checked rather than nil-ness alone.
func (t *Task) Modified() bool {
	return t.UpdatedAt != nil && !t.UpdatedAt.Equal(t.CreatedAt)
}

// Editable reports whether the task's content may still be changed by a
// user. Content edits are only permitted before a worker accepts the task.
func (t *Task) Editable() bool {
	return t.Status == StatusToDo
}

// Assigned reports whether a worker has accepted the task.
func (t *Task) Assigned() bool {
	return t.AssignedWorkerID != nil
}

// TaskFilter narrows a task query. Nil fields match everything.
type TaskFilter struct {
	Department *Department
	Status     *TaskStatus
}

// IsZero reports whether the filter matches all tasks.
func (f TaskFilter) IsZero() bool {
	return f.Department == nil && f.Status == nil
}

// Matches applies the filter to a single task. Department and status
// predicates are independent, so filters compose commutatively.
func (f TaskFilter) Matches(t *Task) bool {
	if f.Department != nil && t.Department != *f.Department {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	return true
}
