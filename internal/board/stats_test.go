package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/taskdeck/internal/core/domain"
)

func TestComputeStats(t *testing.T) {
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	after4h := created.Add(4 * time.Hour)
	after8h := created.Add(8 * time.Hour)

	ada := int64(1)
	ben := int64(2)

	store := NewStore()
	store.ReplaceWorkers([]domain.Worker{
		{TelegramID: ada, FullName: "Ada Mills", Department: domain.DepartmentBackend, WorkerStatus: domain.WorkerBusy},
		{TelegramID: ben, FullName: "Ben Okafor", Department: domain.DepartmentFrontend, WorkerStatus: domain.WorkerFree},
	})
	store.ReplaceTasks([]domain.Task{
		{ID: "t-1", Status: domain.StatusDone, Department: domain.DepartmentBackend,
			AssignedWorkerID: &ada, CreatedAt: created, UpdatedAt: &after4h},
		{ID: "t-2", Status: domain.StatusDone, Department: domain.DepartmentBackend,
			AssignedWorkerID: &ada, CreatedAt: created, UpdatedAt: &after8h},
		// Done but never updated: counts, contributes no time.
		{ID: "t-3", Status: domain.StatusDone, Department: domain.DepartmentFrontend,
			AssignedWorkerID: &ben, CreatedAt: created},
		{ID: "t-4", Status: domain.StatusInProgress, Department: domain.DepartmentFrontend,
			AssignedWorkerID: &ben, CreatedAt: created},
		{ID: "t-5", Status: domain.StatusToDo, Department: domain.DepartmentUiUx, CreatedAt: created},
	})

	stats := ComputeStats(store)

	assert.Equal(t, 5, stats.TotalTasks)
	assert.Equal(t, 2, stats.TotalWorkers)
	assert.Equal(t, 3, stats.TasksByStatus[domain.StatusDone])
	assert.Equal(t, 1, stats.TasksByStatus[domain.StatusInProgress])
	assert.Equal(t, 1, stats.TasksByStatus[domain.StatusToDo])
	assert.Equal(t, 2, stats.TasksByDepartment[domain.DepartmentBackend])
	assert.Equal(t, 1, stats.WorkersByStatus[domain.WorkerBusy])

	// Only the two timed done tasks enter the average: (4+8)/2 hours.
	assert.InDelta(t, 6.0, stats.AvgCompletionHours, 0.001)

	require.Len(t, stats.PerWorker, 2)
	// Ada leads with two done tasks.
	assert.Equal(t, "Ada Mills", stats.PerWorker[0].Worker.FullName)
	assert.Equal(t, 2, stats.PerWorker[0].Done)
	assert.InDelta(t, 6.0, stats.PerWorker[0].AvgCompletionHours, 0.001)

	assert.Equal(t, "Ben Okafor", stats.PerWorker[1].Worker.FullName)
	assert.Equal(t, 1, stats.PerWorker[1].Done)
	assert.Equal(t, 1, stats.PerWorker[1].Active)
	assert.Zero(t, stats.PerWorker[1].AvgCompletionHours)
}

func TestComputeStats_empty_store(t *testing.T) {
	stats := ComputeStats(NewStore())

	assert.Zero(t, stats.TotalTasks)
	assert.Zero(t, stats.AvgCompletionHours)
	assert.Empty(t, stats.PerWorker)
}
