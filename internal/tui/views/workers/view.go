package workers

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"github.com/opsdeck/taskdeck/internal/board"
	"github.com/opsdeck/taskdeck/internal/core/domain"
	"github.com/opsdeck/taskdeck/internal/core/styles"
	"github.com/opsdeck/taskdeck/internal/gateway"
)

const actionTimeout = 5 * time.Second

const (
	modeList = iota
	modeForm
	modeConfirmDelete
	modeActiveTask
)

type actionDoneMsg struct {
	err error
}

type activeTaskMsg struct {
	worker   domain.Worker
	task     *domain.Task
	assigned []domain.Task
	err      error
}

// View is the Bubble Tea sub-model for the workers tab.
type View struct {
	app  *board.App
	ctrl *Controller

	mode int
	form Form

	activeWorker  domain.Worker
	activeTask    *domain.Task
	assignedTasks []domain.Task

	width  int
	height int
}

// New creates the workers view.
func New(app *board.App) View {
	return View{app: app, ctrl: NewController()}
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.ctrl.SetSize(v.visibleLines())
}

// HasEditorFocus reports whether a text field owns the keyboard.
func (v View) HasEditorFocus() bool {
	return v.mode == modeForm
}

// Update handles messages for the workers view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	v.ctrl.SetWorkers(v.app.Store.FilteredWorkers())

	switch msg := msg.(type) {
	case actionDoneMsg:
		return v.handleActionDone(msg)
	case activeTaskMsg:
		return v.handleActiveTask(msg)
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v View) handleActionDone(msg actionDoneMsg) (View, tea.Cmd) {
	if msg.err != nil {
		if v.mode == modeForm {
			v.form.SetError(msg.err.Error())
		}
		return v, nil
	}

	v.mode = modeList
	v.ctrl.SetWorkers(v.app.Store.FilteredWorkers())
	return v, nil
}

func (v View) handleActiveTask(msg activeTaskMsg) (View, tea.Cmd) {
	if msg.err != nil {
		log.Debug().Err(msg.err).Msg("active task load failed")
		return v, nil
	}

	v.activeWorker = msg.worker
	v.activeTask = msg.task
	v.assignedTasks = msg.assigned
	v.mode = modeActiveTask
	return v, nil
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch v.mode {
	case modeForm:
		return v.handleFormKey(msg)
	case modeConfirmDelete:
		return v.handleConfirmKey(msg)
	case modeActiveTask:
		switch msg.String() {
		case "esc", "enter", "q":
			v.mode = modeList
			v.activeTask = nil
		}
		return v, nil
	}
	return v.handleListKey(msg)
}

func (v View) handleListKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.ctrl.MoveUp(v.visibleLines())
	case "down", "j":
		v.ctrl.MoveDown(v.visibleLines())
	case "n":
		v.mode = modeForm
		v.form = NewForm()
	case "e":
		if sel := v.ctrl.Selected(); sel != nil {
			v.mode = modeForm
			v.form = NewEditForm(*sel)
		}
	case "x":
		if v.ctrl.Selected() != nil {
			v.mode = modeConfirmDelete
		}
	case "enter":
		if sel := v.ctrl.Selected(); sel != nil {
			return v, v.loadActiveTask(*sel)
		}
	case "f":
		return v, v.applyFilter(v.ctrl.CycleDepartment())
	case "s":
		return v, v.applyFilter(v.ctrl.CycleStatus())
	case "c":
		return v, v.applyFilter(v.ctrl.ClearFilters())
	}
	return v, nil
}

func (v View) handleFormKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = modeList
		return v, nil
	case "enter":
		return v, v.saveForm()
	}

	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

func (v View) handleConfirmKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		sel := v.ctrl.Selected()
		v.mode = modeList
		if sel != nil {
			return v, v.deleteWorker(sel.TelegramID)
		}
	case "n", "esc":
		v.mode = modeList
	}
	return v, nil
}

func (v View) saveForm() tea.Cmd {
	form := v.form
	svc := v.app.Workers
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		var err error
		if form.Editing() {
			_, err = svc.Edit(ctx, form.EditingID(), form.FullName(), form.Department())
		} else {
			_, err = svc.Create(ctx, gateway.NewWorker{
				TelegramID:       form.TelegramID(),
				TelegramUsername: form.Username(),
				FullName:         form.FullName(),
				Department:       form.Department(),
			})
		}
		return actionDoneMsg{err: err}
	}
}

func (v View) deleteWorker(telegramID int64) tea.Cmd {
	svc := v.app.Workers
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return actionDoneMsg{err: svc.Delete(ctx, telegramID)}
	}
}

func (v View) loadActiveTask(worker domain.Worker) tea.Cmd {
	svc := v.app.Tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		task, err := svc.ActiveTaskFor(ctx, worker.TelegramID)
		if err != nil {
			return activeTaskMsg{worker: worker, err: err}
		}
		// The history list is best-effort; the modal still opens without it.
		assigned, histErr := svc.AssignedTo(ctx, worker.TelegramID)
		if histErr != nil {
			log.Debug().Err(histErr).Msg("assigned task list failed")
		}
		return activeTaskMsg{worker: worker, task: task, assigned: assigned}
	}
}

// applyFilter narrows the cached rows right away; the refetch runs in the
// background and replaces the cache when the server answers.
func (v View) applyFilter(f domain.WorkerFilter) tea.Cmd {
	v.app.Workers.SetFilter(f)
	v.ctrl.SetWorkers(v.app.Store.FilteredWorkers())

	svc := v.app.Workers
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return actionDoneMsg{err: svc.Refresh(ctx)}
	}
}

// View renders the workers tab.
func (v View) View() string {
	switch v.mode {
	case modeForm:
		return styles.ModalStyle.Render(v.form.View())
	case modeConfirmDelete:
		return v.renderConfirm()
	case modeActiveTask:
		return v.renderActiveTask()
	}
	return v.renderList()
}

func (v View) renderList() string {
	var b strings.Builder

	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf(
		" Department: %s  Availability: %s", v.ctrl.DepartmentLabel(), v.ctrl.StatusLabel())))
	b.WriteString("\n")

	nameW := v.width - 46
	if nameW < 20 {
		nameW = 20
	}
	header := fmt.Sprintf("  %-*s %-18s %-10s %-12s", nameW, "Name", "Telegram", "Dept", "Availability")
	b.WriteString(styles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	workers := v.ctrl.Workers()
	rendered := 0
	if len(workers) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No workers"))
		b.WriteString("\n")
		rendered = 1
	} else {
		visible := v.visibleLines()
		offset := v.ctrl.Offset()
		end := offset + visible
		if end > len(workers) {
			end = len(workers)
		}
		for i := offset; i < end; i++ {
			b.WriteString(v.renderRow(&workers[i], i == v.ctrl.Cursor(), nameW))
			b.WriteString("\n")
			rendered++
		}
	}

	for i := rendered; i < v.visibleLines(); i++ {
		b.WriteString("\n")
	}

	b.WriteString(styles.MutedStyle.Render(
		" ↑/↓ navigate • enter active task • n add • e edit • x remove • f/s filter"))
	return b.String()
}

func (v View) renderRow(w *domain.Worker, selected bool, nameW int) string {
	name := ansi.Truncate(w.FullName, nameW-1, "…")

	row := fmt.Sprintf("%-*s %-18s %-10s %-12s",
		nameW, name, "@"+w.TelegramUsername, w.Department.Label(), w.WorkerStatus.Label())

	if selected {
		return "  " + styles.SelectedRowStyle.Render(row)
	}
	return "  " + row
}

func (v View) renderConfirm() string {
	sel := v.ctrl.Selected()
	if sel == nil {
		return ""
	}
	body := fmt.Sprintf("Delete worker %q?\n\n", sel.FullName) +
		styles.MutedStyle.Render("y confirm • n cancel")
	return styles.ModalStyle.Render(body)
}

func (v View) renderActiveTask() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(v.activeWorker.FullName))
	b.WriteString("\n\n")

	if v.activeTask == nil {
		b.WriteString(styles.MutedStyle.Render("No active task"))
		b.WriteString("\n")
	} else {
		t := v.activeTask
		b.WriteString(styles.StatusStyle(t.Status).Render(styles.StatusIcon(t.Status)))
		b.WriteString(" " + t.Title + "\n")
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf(
			"%s • %s", t.Status.Label(), t.Department.Label())))
		b.WriteString("\n")
	}

	if len(v.assignedTasks) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.TableHeaderStyle.Render("History"))
		b.WriteString("\n")
		for i := range v.assignedTasks {
			t := &v.assignedTasks[i]
			if v.activeTask != nil && t.ID == v.activeTask.ID {
				continue
			}
			b.WriteString(styles.StatusStyle(t.Status).Render(styles.StatusIcon(t.Status)))
			b.WriteString(" " + t.Title + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("esc close"))
	return styles.ModalStyle.Render(b.String())
}

func (v View) visibleLines() int {
	visible := v.height - 3
	if visible < 1 {
		visible = 1
	}
	return visible
}
