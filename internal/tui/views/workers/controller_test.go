package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/taskdeck/internal/core/domain"
)

func testRows() []domain.Worker {
	return []domain.Worker{
		{TelegramID: 1, FullName: "Ada Mills", Department: domain.DepartmentFrontend, WorkerStatus: domain.WorkerFree},
		{TelegramID: 2, FullName: "Ben Okafor", Department: domain.DepartmentBackend, WorkerStatus: domain.WorkerBusy},
	}
}

func TestController_cursor(t *testing.T) {
	c := NewController()
	c.SetWorkers(testRows())

	require.NotNil(t, c.Selected())
	assert.Equal(t, int64(1), c.Selected().TelegramID)

	c.MoveDown(10)
	assert.Equal(t, int64(2), c.Selected().TelegramID)
	c.MoveDown(10)
	assert.Equal(t, int64(2), c.Selected().TelegramID)

	c.SetWorkers(nil)
	assert.Nil(t, c.Selected())
}

func TestController_availability_cycle(t *testing.T) {
	c := NewController()

	f := c.CycleStatus()
	require.NotNil(t, f.WorkerStatus)
	assert.Equal(t, domain.WorkerFree, *f.WorkerStatus)

	c.CycleStatus()
	f = c.CycleStatus()
	require.NotNil(t, f.WorkerStatus)
	assert.Equal(t, domain.WorkerUnavailable, *f.WorkerStatus)

	f = c.CycleStatus()
	assert.Nil(t, f.WorkerStatus)
}

func TestController_filters_compose_and_clear(t *testing.T) {
	c := NewController()
	c.CycleDepartment()
	f := c.CycleStatus()

	require.NotNil(t, f.Department)
	require.NotNil(t, f.WorkerStatus)
	assert.Equal(t, "Frontend", c.DepartmentLabel())
	assert.Equal(t, "Free", c.StatusLabel())

	f = c.ClearFilters()
	assert.True(t, f.IsZero())
}
