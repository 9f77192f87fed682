// Package workers implements the worker roster tab: the filterable worker
// table and the add/edit/remove flows.
package workers

import (
	"github.com/opsdeck/taskdeck/internal/core/domain"
)

var workerStatuses = []domain.WorkerStatus{
	domain.WorkerFree,
	domain.WorkerBusy,
	domain.WorkerUnavailable,
}

// Controller manages worker rows, the cursor, and the filter cycle state.
// It contains pure data logic with no Bubble Tea dependencies.
type Controller struct {
	workers []domain.Worker
	cursor  int
	offset  int

	deptIdx   int
	statusIdx int
}

// NewController creates a worker controller with no filters active.
func NewController() *Controller {
	return &Controller{deptIdx: -1, statusIdx: -1}
}

// SetWorkers replaces the rows and clamps the cursor.
func (c *Controller) SetWorkers(workers []domain.Worker) {
	c.workers = workers
	if c.cursor >= len(workers) {
		c.cursor = len(workers) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// Workers returns the current rows.
func (c *Controller) Workers() []domain.Worker {
	return c.workers
}

// Selected returns the worker under the cursor, or nil when the table is
// empty.
func (c *Controller) Selected() *domain.Worker {
	if len(c.workers) == 0 || c.cursor >= len(c.workers) {
		return nil
	}
	return &c.workers[c.cursor]
}

// MoveUp moves the cursor up one row.
func (c *Controller) MoveUp(visible int) {
	if c.cursor > 0 {
		c.cursor--
		c.clampOffset(visible)
	}
}

// MoveDown moves the cursor down one row.
func (c *Controller) MoveDown(visible int) {
	if c.cursor < len(c.workers)-1 {
		c.cursor++
		c.clampOffset(visible)
	}
}

// Cursor returns the cursor position.
func (c *Controller) Cursor() int {
	return c.cursor
}

// Offset returns the scroll offset.
func (c *Controller) Offset() int {
	return c.offset
}

// SetSize clamps the offset after a size change.
func (c *Controller) SetSize(visible int) {
	c.clampOffset(visible)
}

// CycleDepartment advances the department filter and returns the result.
func (c *Controller) CycleDepartment() domain.WorkerFilter {
	c.deptIdx++
	if c.deptIdx >= len(domain.Departments()) {
		c.deptIdx = -1
	}
	c.cursor, c.offset = 0, 0
	return c.Filter()
}

// CycleStatus advances the availability filter and returns the result.
func (c *Controller) CycleStatus() domain.WorkerFilter {
	c.statusIdx++
	if c.statusIdx >= len(workerStatuses) {
		c.statusIdx = -1
	}
	c.cursor, c.offset = 0, 0
	return c.Filter()
}

// ClearFilters resets both filter cycles and returns the empty filter.
func (c *Controller) ClearFilters() domain.WorkerFilter {
	c.deptIdx, c.statusIdx = -1, -1
	c.cursor, c.offset = 0, 0
	return c.Filter()
}

// Filter returns the current filter as the shared domain type.
func (c *Controller) Filter() domain.WorkerFilter {
	var f domain.WorkerFilter
	if c.deptIdx >= 0 {
		d := domain.Departments()[c.deptIdx]
		f.Department = &d
	}
	if c.statusIdx >= 0 {
		s := workerStatuses[c.statusIdx]
		f.WorkerStatus = &s
	}
	return f
}

// DepartmentLabel describes the department filter state for the header.
func (c *Controller) DepartmentLabel() string {
	if c.deptIdx < 0 {
		return "All"
	}
	return domain.Departments()[c.deptIdx].Label()
}

// StatusLabel describes the availability filter state for the header.
func (c *Controller) StatusLabel() string {
	if c.statusIdx < 0 {
		return "All"
	}
	return workerStatuses[c.statusIdx].Label()
}

func (c *Controller) clampOffset(visible int) {
	if visible < 1 {
		visible = 1
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	} else if c.cursor >= c.offset+visible {
		c.offset = c.cursor - visible + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
	maxOffset := len(c.workers) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.offset > maxOffset {
		c.offset = maxOffset
	}
}
