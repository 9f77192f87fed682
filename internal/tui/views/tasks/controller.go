// Package tasks implements the task board tab: the filterable task table,
// the create/edit form, the detail modal, and the lifecycle actions.
package tasks

import (
	"github.com/opsdeck/taskdeck/internal/core/domain"
)

// Controller manages task rows, the cursor, and the filter cycle state.
// It contains pure data logic with no Bubble Tea dependencies.
type Controller struct {
	tasks  []domain.Task
	cursor int
	offset int

	// deptIdx and statusIdx cycle through "all" (-1) and the respective
	// value lists.
	deptIdx   int
	statusIdx int
}

// NewController creates a task controller with no filters active.
func NewController() *Controller {
	return &Controller{deptIdx: -1, statusIdx: -1}
}

// SetTasks replaces the rows and clamps the cursor.
func (c *Controller) SetTasks(tasks []domain.Task) {
	c.tasks = tasks
	if c.cursor >= len(tasks) {
		c.cursor = len(tasks) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// Tasks returns the current rows.
func (c *Controller) Tasks() []domain.Task {
	return c.tasks
}

// Selected returns the task under the cursor, or nil when the table is
// empty.
func (c *Controller) Selected() *domain.Task {
	if len(c.tasks) == 0 || c.cursor >= len(c.tasks) {
		return nil
	}
	return &c.tasks[c.cursor]
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
	if c.cursor < len(c.tasks)-1 {
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

// CycleDepartment advances the department filter: all, then each
// department in order, then back to all. Returns the resulting filter.
func (c *Controller) CycleDepartment() domain.TaskFilter {
	c.deptIdx++
	if c.deptIdx >= len(domain.Departments()) {
		c.deptIdx = -1
	}
	c.cursor, c.offset = 0, 0
	return c.Filter()
}

// CycleStatus advances the status filter the same way.
func (c *Controller) CycleStatus() domain.TaskFilter {
	c.statusIdx++
	if c.statusIdx >= len(domain.TaskStatuses()) {
		c.statusIdx = -1
	}
	c.cursor, c.offset = 0, 0
	return c.Filter()
}

// ClearFilters resets both filter cycles. Returns the (empty) filter.
func (c *Controller) ClearFilters() domain.TaskFilter {
	c.deptIdx, c.statusIdx = -1, -1
	c.cursor, c.offset = 0, 0
	return c.Filter()
}

// Filter returns the current filter as the domain type the store and
// gateway share.
func (c *Controller) Filter() domain.TaskFilter {
	var f domain.TaskFilter
	if c.deptIdx >= 0 {
		d := domain.Departments()[c.deptIdx]
		f.Department = &d
	}
	if c.statusIdx >= 0 {
		s := domain.TaskStatuses()[c.statusIdx]
		f.Status = &s
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

// StatusLabel describes the status filter state for the header.
func (c *Controller) StatusLabel() string {
	if c.statusIdx < 0 {
		return "All"
	}
	return domain.TaskStatuses()[c.statusIdx].Label()
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
	maxOffset := len(c.tasks) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.offset > maxOffset {
		c.offset = maxOffset
	}
}
