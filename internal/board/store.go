// Package board holds the dashboard's client-side state and the services
// that mutate it through the gateway. Views read from the store; the
// services and the hub notifier write to it.
package board

import (
	"sort"
	"sync"

	"github.com/opsdeck/taskdeck/internal/core/domain"
)

// Store is the mutable in-memory snapshot of board state. All access is
// mutex-guarded; read methods hand out copies so callers never observe a
// concurrent mutation.
type Store struct {
	mu sync.Mutex

	tasks   []domain.Task
	workers []domain.Worker

	taskFilter   domain.TaskFilter
	workerFilter domain.WorkerFilter

	lastError error
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// ReplaceTasks swaps the full task set atomically, typically after a
// server refresh.
func (s *Store) ReplaceTasks(tasks []domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]domain.Task(nil), tasks...)
}

// Tasks returns a copy of the cached task set.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Task(nil), s.tasks...)
}

// FilteredTasks applies the current task filter to the cache. Between a
// filter change and the next server refresh this is the stale-but-filtered
// view the dashboard shows, so the filter semantics here must match the
// server's query parameters exactly.
func (s *Store) FilteredTasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taskFilter.IsZero() {
		return append([]domain.Task(nil), s.tasks...)
	}
	out := make([]domain.Task, 0, len(s.tasks))
	for i := range s.tasks {
		if s.taskFilter.Matches(&s.tasks[i]) {
			out = append(out, s.tasks[i])
		}
	}
	return out
}

// TaskByID looks up a cached task.
func (s *Store) TaskByID(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i], true
		}
	}
	return domain.Task{}, false
}

// UpsertTask inserts or replaces a single task by identity.
func (s *Store) UpsertTask(task domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
	s.tasks = append(s.tasks, task)
}

// RemoveTask drops a task from the cache. Unknown IDs are a no-op.
func (s *Store) RemoveTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// SetTaskFilter replaces the active task filter.
func (s *Store) SetTaskFilter(f domain.TaskFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskFilter = f
}

// TaskFilter returns the active task filter.
func (s *Store) TaskFilter() domain.TaskFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taskFilter
}

// ReplaceWorkers swaps the full worker set atomically.
func (s *Store) ReplaceWorkers(workers []domain.Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = append([]domain.Worker(nil), workers...)
}

// Workers returns a copy of the cached worker set sorted by name, which is
// the order every view renders them in.
func (s *Store) Workers() []domain.Worker {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]domain.Worker(nil), s.workers...)
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

// FilteredWorkers applies the current worker filter to the cache.
func (s *Store) FilteredWorkers() []domain.Worker {
	filter := s.WorkerFilter()
	all := s.Workers()
	if filter.IsZero() {
		return all
	}

	out := make([]domain.Worker, 0, len(all))
	for i := range all {
		if filter.Matches(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out
}

// WorkerByID looks up a cached worker by external identity.
func (s *Store) WorkerByID(telegramID int64) (domain.Worker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workers {
		if s.workers[i].TelegramID == telegramID {
			return s.workers[i], true
		}
	}
	return domain.Worker{}, false
}

// UpsertWorker inserts or replaces a single worker by identity.
func (s *Store) UpsertWorker(worker domain.Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workers {
		if s.workers[i].TelegramID == worker.TelegramID {
			s.workers[i] = worker
			return
		}
	}
	s.workers = append(s.workers, worker)
}

// RemoveWorker drops a worker from the cache. Unknown IDs are a no-op.
func (s *Store) RemoveWorker(telegramID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workers {
		if s.workers[i].TelegramID == telegramID {
			s.workers = append(s.workers[:i], s.workers[i+1:]...)
			return
		}
	}
}

// SetWorkerFilter replaces the active worker filter.
func (s *Store) SetWorkerFilter(f domain.WorkerFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workerFilter = f
}

// WorkerFilter returns the active worker filter.
func (s *Store) WorkerFilter() domain.WorkerFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workerFilter
}

// SetLastError records the most recent background failure for the error
// banner. Pass nil to clear it.
func (s *Store) SetLastError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
}

// LastError returns the most recent background failure, if any.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
