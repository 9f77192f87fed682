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

// WorkerAPI is the slice of the gateway the worker service needs.
type WorkerAPI interface {
	ListWorkers(ctx context.Context, filter domain.WorkerFilter) ([]domain.Worker, error)
	GetWorker(ctx context.Context, telegramID int64) (*domain.Worker, error)
	CreateWorker(ctx context.Context, in gateway.NewWorker) (*domain.Worker, error)
	UpdateWorkerRecord(ctx context.Context, in gateway.UpdateWorker) (*domain.Worker, error)
	DeleteWorker(ctx context.Context, telegramID int64) error
}

// WorkerService executes worker operations and keeps the store in sync.
type WorkerService struct {
	api   WorkerAPI
	store *Store
	bus   *notify.Bus
	log   zerolog.Logger
}

// NewWorkerService wires a worker service.
func NewWorkerService(api WorkerAPI, store *Store, bus *notify.Bus) *WorkerService {
	return &WorkerService{
		api:   api,
		store: store,
		bus:   bus,
		log:   logging.Component("workers"),
	}
}

// Refresh fetches the worker list for the store's current filter and swaps
// the cache.
func (s *WorkerService) Refresh(ctx context.Context) error {
	workers, err := s.api.ListWorkers(ctx, s.store.WorkerFilter())
	if err != nil {
		s.log.Error().Err(err).Msg("worker refresh failed")
		s.store.SetLastError(err)
		return err
	}

	s.store.ReplaceWorkers(workers)
	s.store.SetLastError(nil)
	return nil
}

// SetFilter updates the active worker filter. The cached workers re-filter
// client-side immediately; callers follow up with Refresh for server truth.
func (s *WorkerService) SetFilter(f domain.WorkerFilter) {
	s.store.SetWorkerFilter(f)
}

// Create validates input and registers a worker. Identity and handle are
// required here because they are write-once: this is the only moment they
// can be set.
func (s *WorkerService) Create(ctx context.Context, in gateway.NewWorker) (*domain.Worker, error) {
	if err := validate.TelegramID(in.TelegramID); err != nil {
		return nil, err
	}
	if err := validate.TelegramUsername(in.TelegramUsername); err != nil {
		return nil, err
	}
	if err := validate.WorkerFullNameField("fullName", in.FullName); err != nil {
		return nil, err
	}
	if err := validate.AssignableDepartment(in.Department); err != nil {
		return nil, err
	}

	worker, err := s.api.CreateWorker(ctx, in)
	if err != nil {
		s.bus.Errorf("Could not add worker: %v", err)
		return nil, err
	}

	s.store.UpsertWorker(*worker)
	s.bus.Successf("Worker %q added", worker.FullName)
	return worker, nil
}

// Edit updates a worker's name and department. Identity and handle always
// come from the stored record, never from the form, so they cannot drift.
func (s *WorkerService) Edit(ctx context.Context, telegramID int64, fullName string, dept domain.Department) (*domain.Worker, error) {
	current, ok := s.store.WorkerByID(telegramID)
	if !ok {
		return nil, fmt.Errorf("worker %d is not on the board", telegramID)
	}
	if err := validate.WorkerFullNameField("fullName", fullName); err != nil {
		return nil, err
	}
	if err := validate.AssignableDepartment(dept); err != nil {
		return nil, err
	}

	worker, err := s.api.UpdateWorkerRecord(ctx, gateway.UpdateWorker{
		TelegramID:       current.TelegramID,
		TelegramUsername: current.TelegramUsername,
		FullName:         fullName,
		Department:       dept,
	})
	if err != nil {
		s.bus.Errorf("Could not update worker: %v", err)
		return nil, err
	}

	s.store.UpsertWorker(*worker)
	s.bus.Successf("Worker %q updated", worker.FullName)
	return worker, nil
}

// Delete removes a worker.
func (s *WorkerService) Delete(ctx context.Context, telegramID int64) error {
	worker, _ := s.store.WorkerByID(telegramID)

	if err := s.api.DeleteWorker(ctx, telegramID); err != nil {
		s.bus.Errorf("Could not remove worker: %v", err)
		return err
	}

	s.store.RemoveWorker(telegramID)
	if worker.FullName != "" {
		s.bus.Successf("Worker %q removed", worker.FullName)
	} else {
		s.bus.Successf("Worker removed")
	}
	return nil
}
