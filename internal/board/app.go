package board

import (
	"context"

	"github.com/opsdeck/taskdeck/internal/bridge"
	"github.com/opsdeck/taskdeck/internal/core/config"
	"github.com/opsdeck/taskdeck/internal/core/notify"
	"github.com/opsdeck/taskdeck/internal/gateway"
)

// App bundles the wired services the dashboard runs on.
type App struct {
	Config  *config.Config
	Store   *Store
	Bus     *notify.Bus
	Gateway *gateway.Client
	Bridge  *bridge.Bridge
	Tasks   *TaskService
	Workers *WorkerService
}

// NewApp wires the gateway, hub bridge, store, and services from
// configuration. The bridge is created but not connected; the dashboard
// connects it once the event loop is running.
func NewApp(cfg *config.Config) *App {
	store := NewStore()
	bus := notify.NewBus()
	gw := gateway.New(cfg.API.BaseURL, cfg.API.Timeout.Std())

	return &App{
		Config:  cfg,
		Store:   store,
		Bus:     bus,
		Gateway: gw,
		Bridge:  bridge.New(cfg.Hub.URL, cfg.Hub.MaxRetries),
		Tasks:   NewTaskService(gw, store, bus),
		Workers: NewWorkerService(gw, store, bus),
	}
}

// Bootstrap performs the initial data load. Task and worker fetches are
// independent; the first failure is returned but both are attempted so a
// partial board still renders.
func (a *App) Bootstrap(ctx context.Context) error {
	taskErr := a.Tasks.Refresh(ctx)
	workerErr := a.Workers.Refresh(ctx)
	if taskErr != nil {
		return taskErr
	}
	return workerErr
}

// Close releases the app's long-lived resources.
func (a *App) Close() error {
	return a.Bridge.Close()
}
