package board

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/opsdeck/taskdeck/internal/core/domain"
	"github.com/opsdeck/taskdeck/internal/core/logging"
	"github.com/opsdeck/taskdeck/internal/core/notify"
	"github.com/opsdeck/taskdeck/internal/core/validate"
	"github.com/opsdeck/taskdeck/internal/gateway"
)

// TaskAPI is the slice of the gateway the task service needs.
type TaskAPI interface {
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	CreateTask(ctx context.Context, in gateway.NewTask) (*domain.Task, error)
	UpdateTask(ctx context.Context, in gateway.UpdateTask) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	AcceptTask(ctx context.Context, id string, workerID int64) (*domain.Task, error)
	CompleteTask(ctx context.Context, id string) error
	FinishTask(ctx context.Context, id string) error
	CancelReview(ctx context.Context, id string) error
	ActiveTaskForUser(ctx context.Context, workerID int64) (*domain.Task, error)
	TasksForUser(ctx context.Context, workerID int64) ([]domain.Task, error)
}

// TaskService executes task operations against the gateway and keeps the
// store in sync with the results. Outcomes are published on the bus so the
// toast stack reports them regardless of which view triggered the action.
type TaskService struct {
	api   TaskAPI
	store *Store
	bus   *notify.Bus
	log   zerolog.Logger
}

// NewTaskService wires a task service.
func NewTaskService(api TaskAPI, store *Store, bus *notify.Bus) *TaskService {
	return &TaskService{
		api:   api,
		store: store,
		bus:   bus,
		log:   logging.Component("tasks"),
	}
}

// Refresh fetches the task list for the store's current filter and swaps
// the cache. Failures leave the stale cache in place so the dashboard keeps
// rendering the last good data.
func (s *TaskService) Refresh(ctx context.Context) error {
	tasks, err := s.api.ListTasks(ctx, s.store.TaskFilter())
	if err != nil {
		s.log.Error().Err(err).Msg("task refresh failed")
		s.store.SetLastError(err)
		return err
	}

	s.store.ReplaceTasks(tasks)
	s.store.SetLastError(nil)
	return nil
}

// SetFilter updates the active filter. The cached tasks re-filter
// client-side immediately; callers follow up with Refresh for server truth.
func (s *TaskService) SetFilter(f domain.TaskFilter) {
	s.store.SetTaskFilter(f)
}

// Create validates user input and creates a task. New tasks always start
// unassigned in To Do.
func (s *TaskService) Create(ctx context.Context, title, text string, dept domain.Department) (*domain.Task, error) {
	if err := validate.TaskTitleField("title", title); err != nil {
		return nil, err
	}
	if err := validate.TaskTextField("text", text); err != nil {
		return nil, err
	}
	if err := validate.AssignableDepartment(dept); err != nil {
		return nil, err
	}

	task, err := s.api.CreateTask(ctx, gateway.NewTask{Title: title, Text: text, Department: dept})
	if err != nil {
		s.bus.Errorf("Could not create task: %v", err)
		return nil, err
	}

	s.store.UpsertTask(*task)
	s.bus.Successf("Task %q created", task.Title)
	return task, nil
}

// Edit updates a task's content. Content is frozen once a worker accepts
// the task, so anything past To Do is rejected before touching the server.
func (s *TaskService) Edit(ctx context.Context, id, title, text string, dept domain.Department) (*domain.Task, error) {
	current, ok := s.store.TaskByID(id)
	if !ok {
		return nil, fmt.Errorf("task %s is not on the board", id)
	}
	if !current.Editable() {
		err := fmt.Errorf("task %q is %s and can no longer be edited", current.Title, current.Status.Label())
		s.bus.Warnf("%v", err)
		return nil, err
	}
	if err := validate.TaskTitleField("title", title); err != nil {
		return nil, err
	}
	if err := validate.TaskTextField("text", text); err != nil {
		return nil, err
	}
	if err := validate.AssignableDepartment(dept); err != nil {
		return nil, err
	}

	task, err := s.api.UpdateTask(ctx, gateway.UpdateTask{ID: id, Title: title, Text: text, Department: dept})
	if err != nil {
		s.bus.Errorf("Could not update task: %v", err)
		return nil, err
	}

	s.store.UpsertTask(*task)
	s.bus.Successf("Task %q updated", task.Title)
	return task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	task, _ := s.store.TaskByID(id)

	if err := s.api.DeleteTask(ctx, id); err != nil {
		s.bus.Errorf("Could not delete task: %v", err)
		return err
	}

	s.store.RemoveTask(id)
	if task.Title != "" {
		s.bus.Successf("Task %q deleted", task.Title)
	} else {
		s.bus.Successf("Task deleted")
	}
	return nil
}

// Accept records a worker taking a task. The server moves it to In
// Progress and marks the worker busy.
func (s *TaskService) Accept(ctx context.Context, id string, workerID int64) (*domain.Task, error) {
	task, err := s.api.AcceptTask(ctx, id, workerID)
	if err != nil {
		s.bus.Errorf("Could not accept task: %v", err)
		return nil, err
	}

	s.store.UpsertTask(*task)
	s.bus.Successf("Task %q accepted", task.Title)
	return task, nil
}

// Transition moves a task along the lifecycle. Illegal moves are rejected
// locally so a stale row can't trigger a doomed request; the single legal
// move out of To Do is acceptance, which has its own operation.
func (s *TaskService) Transition(ctx context.Context, id string, target domain.TaskStatus) error {
	current, ok := s.store.TaskByID(id)
	if !ok {
		return fmt.Errorf("task %s is not on the board", id)
	}
	if !current.Status.CanTransitionTo(target) {
		err := fmt.Errorf("task %q cannot move from %s to %s",
			current.Title, current.Status.Label(), target.Label())
		s.bus.Warnf("%v", err)
		return err
	}

	var err error
	switch {
	case current.Status == domain.StatusInProgress && target == domain.StatusOnReview:
		err = s.api.CompleteTask(ctx, id)
	case current.Status == domain.StatusOnReview && target == domain.StatusDone:
		err = s.api.FinishTask(ctx, id)
	case current.Status == domain.StatusOnReview && target == domain.StatusInProgress:
		err = s.api.CancelReview(ctx, id)
	default:
		return fmt.Errorf("no dashboard operation moves %s to %s",
			current.Status.Label(), target.Label())
	}
	if err != nil {
		s.bus.Errorf("Could not move task: %v", err)
		return err
	}

	current.Status = target
	s.store.UpsertTask(current)
	s.bus.Successf("Task %q moved to %s", current.Title, target.Label())
	return nil
}

// ActiveTaskFor returns the worker's current task, or nil when the worker
// has none.
func (s *TaskService) ActiveTaskFor(ctx context.Context, workerID int64) (*domain.Task, error) {
	return s.api.ActiveTaskForUser(ctx, workerID)
}

// AssignedTo returns every task assigned to the worker, past and present.
func (s *TaskService) AssignedTo(ctx context.Context, workerID int64) ([]domain.Task, error) {
	return s.api.TasksForUser(ctx, workerID)
}

// Details fetches a single task fresh from the server for the detail view,
// updating the cache on the way through.
func (s *TaskService) Details(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.api.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store.UpsertTask(*task)
	return task, nil
}
