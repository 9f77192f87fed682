package tasks

import (
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/taskdeck/internal/board"
	"github.com/opsdeck/taskdeck/internal/core/domain"
	"github.com/opsdeck/taskdeck/internal/core/notify"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func boardWithTasks(tasks ...domain.Task) *board.App {
	store := board.NewStore()
	store.ReplaceTasks(tasks)
	bus := notify.NewBus()
	return &board.App{
		Store: store,
		Bus:   bus,
		Tasks: board.NewTaskService(nil, store, bus),
	}
}

func TestView_filter_narrows_cached_rows_before_refresh(t *testing.T) {
	now := time.Now()
	app := boardWithTasks(
		domain.Task{ID: "t-1", Title: "Landing page", Status: domain.StatusToDo, Department: domain.DepartmentFrontend, CreatedAt: now},
		domain.Task{ID: "t-2", Title: "Install cameras", Status: domain.StatusInProgress, Department: domain.DepartmentBackend, CreatedAt: now},
	)

	v := New(app)
	v.SetSize(80, 20)

	// Department cycle starts at the first department.
	v, cmd := v.Update(keyMsg('f'))
	require.NotNil(t, cmd)

	// The cached rows narrow on the same frame, before the background
	// refresh ever runs.
	rows := v.ctrl.Tasks()
	require.Len(t, rows, 1)
	assert.Equal(t, "t-1", rows[0].ID)

	filter := app.Store.TaskFilter()
	require.NotNil(t, filter.Department)
	assert.Equal(t, domain.DepartmentFrontend, *filter.Department)

	// Clearing restores the full cache the same way.
	v, cmd = v.Update(keyMsg('c'))
	require.NotNil(t, cmd)
	assert.Len(t, v.ctrl.Tasks(), 2)
	assert.True(t, app.Store.TaskFilter().IsZero())
}

func TestView_status_filter_is_immediate(t *testing.T) {
	now := time.Now()
	app := boardWithTasks(
		domain.Task{ID: "t-1", Title: "A", Status: domain.StatusToDo, Department: domain.DepartmentFrontend, CreatedAt: now},
		domain.Task{ID: "t-2", Title: "B", Status: domain.StatusInProgress, Department: domain.DepartmentBackend, CreatedAt: now},
	)

	v := New(app)
	v.SetSize(80, 20)

	// Status cycle starts at To Do.
	v, _ = v.Update(keyMsg('s'))
	rows := v.ctrl.Tasks()
	require.Len(t, rows, 1)
	assert.Equal(t, domain.StatusToDo, rows[0].Status)
}

func TestRenderRow_truncates_multibyte_titles_cleanly(t *testing.T) {
	v := New(boardWithTasks())

	task := domain.Task{
		ID:         "t-1",
		Title:      "Проверить пожарную сигнализацию в здании А",
		Status:     domain.StatusToDo,
		Department: domain.DepartmentBackend,
		CreatedAt:  time.Now(),
	}

	row := v.renderRow(&task, false, 20)
	assert.True(t, utf8.ValidString(row))
	assert.Contains(t, row, "…")
}
