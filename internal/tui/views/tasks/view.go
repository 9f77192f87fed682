package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"github.com/opsdeck/taskdeck/internal/board"
	"github.com/opsdeck/taskdeck/internal/core/domain"
	"github.com/opsdeck/taskdeck/internal/core/styles"
)

const actionTimeout = 5 * time.Second

const (
	modeList = iota
	modeForm
	modeDetails
	modeConfirmDelete
	modeAccept
)

type actionDoneMsg struct {
	err error
}

type detailsLoadedMsg struct {
	task *domain.Task
	err  error
}

// View is the Bubble Tea sub-model for the tasks tab.
type View struct {
	app  *board.App
	ctrl *Controller

	mode        int
	form        Form
	details     *domain.Task
	detailsBody string

	acceptTaskID string
	acceptCursor int
	freeWorkers  []domain.Worker

	width  int
	height int
}

// New creates the tasks view.
func New(app *board.App) View {
	return View{app: app, ctrl: NewController()}
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.ctrl.SetSize(v.visibleLines())
}

// HasEditorFocus reports whether a text field owns the keyboard, so the
// root model suppresses global bindings.
func (v View) HasEditorFocus() bool {
	return v.mode == modeForm
}

// Update handles messages for the tasks view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	v.ctrl.SetTasks(v.app.Store.FilteredTasks())

	switch msg := msg.(type) {
	case actionDoneMsg:
		return v.handleActionDone(msg)
	case detailsLoadedMsg:
		return v.handleDetailsLoaded(msg)
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
		// Other modes surface the failure through the toast the service
		// already published.
		return v, nil
	}

	v.mode = modeList
	v.ctrl.SetTasks(v.app.Store.FilteredTasks())
	return v, nil
}

func (v View) handleDetailsLoaded(msg detailsLoadedMsg) (View, tea.Cmd) {
	if msg.err != nil {
		log.Debug().Err(msg.err).Msg("task details load failed")
		return v, nil
	}

	v.details = msg.task
	body, err := glamour.Render(msg.task.Text, "dark")
	if err != nil {
		body = msg.task.Text
	}
	v.detailsBody = body
	v.mode = modeDetails
	return v, nil
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch v.mode {
	case modeForm:
		return v.handleFormKey(msg)
	case modeDetails:
		return v.handleDetailsKey(msg)
	case modeConfirmDelete:
		return v.handleConfirmKey(msg)
	case modeAccept:
		return v.handleAcceptKey(msg)
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
			if !sel.Editable() {
				v.app.Bus.Warnf("Task %q is %s and can no longer be edited", sel.Title, sel.Status.Label())
				return v, nil
			}
			v.mode = modeForm
			v.form = NewEditForm(*sel)
		}
	case "x":
		if v.ctrl.Selected() != nil {
			v.mode = modeConfirmDelete
		}
	case "enter":
		if sel := v.ctrl.Selected(); sel != nil {
			return v, v.loadDetails(sel.ID)
		}
	case "a":
		if sel := v.ctrl.Selected(); sel != nil && sel.Status == domain.StatusToDo {
			v.mode = modeAccept
			v.acceptTaskID = sel.ID
			v.acceptCursor = 0
			v.freeWorkers = v.app.Store.Workers()
		}
	case "m":
		if sel := v.ctrl.Selected(); sel != nil {
			switch sel.Status {
			case domain.StatusInProgress:
				return v, v.transition(sel.ID, domain.StatusOnReview)
			case domain.StatusOnReview:
				return v, v.transition(sel.ID, domain.StatusDone)
			}
		}
	case "b":
		if sel := v.ctrl.Selected(); sel != nil && sel.Status == domain.StatusOnReview {
			return v, v.transition(sel.ID, domain.StatusInProgress)
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
		// Enter inside the description adds a line; save from anywhere else.
		if v.form.focus == focusText {
			break
		}
		return v, v.saveForm()
	}

	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

func (v View) handleDetailsKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		v.mode = modeList
		v.details = nil
		v.detailsBody = ""
	}
	return v, nil
}

func (v View) handleConfirmKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		sel := v.ctrl.Selected()
		v.mode = modeList
		if sel != nil {
			return v, v.deleteTask(sel.ID)
		}
	case "n", "esc":
		v.mode = modeList
	}
	return v, nil
}

func (v View) handleAcceptKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = modeList
	case "up", "k":
		if v.acceptCursor > 0 {
			v.acceptCursor--
		}
	case "down", "j":
		if v.acceptCursor < len(v.freeWorkers)-1 {
			v.acceptCursor++
		}
	case "enter":
		if len(v.freeWorkers) > 0 {
			worker := v.freeWorkers[v.acceptCursor]
			taskID := v.acceptTaskID
			v.mode = modeList
			return v, v.acceptTask(taskID, worker.TelegramID)
		}
	}
	return v, nil
}

func (v View) saveForm() tea.Cmd {
	form := v.form
	svc := v.app.Tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		var err error
		if form.Editing() {
			_, err = svc.Edit(ctx, form.EditingID(), form.Title(), form.Text(), form.Department())
		} else {
			_, err = svc.Create(ctx, form.Title(), form.Text(), form.Department())
		}
		return actionDoneMsg{err: err}
	}
}

func (v View) deleteTask(id string) tea.Cmd {
	svc := v.app.Tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return actionDoneMsg{err: svc.Delete(ctx, id)}
	}
}

func (v View) transition(id string, target domain.TaskStatus) tea.Cmd {
	svc := v.app.Tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return actionDoneMsg{err: svc.Transition(ctx, id, target)}
	}
}

func (v View) acceptTask(id string, workerID int64) tea.Cmd {
	svc := v.app.Tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		_, err := svc.Accept(ctx, id, workerID)
		return actionDoneMsg{err: err}
	}
}

func (v View) loadDetails(id string) tea.Cmd {
	svc := v.app.Tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		task, err := svc.Details(ctx, id)
		return detailsLoadedMsg{task: task, err: err}
	}
}

// applyFilter narrows the cached rows right away; the refetch runs in the
// background and replaces the cache when the server answers.
func (v View) applyFilter(f domain.TaskFilter) tea.Cmd {
	v.app.Tasks.SetFilter(f)
	v.ctrl.SetTasks(v.app.Store.FilteredTasks())

	svc := v.app.Tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return actionDoneMsg{err: svc.Refresh(ctx)}
	}
}

// View renders the tasks tab.
func (v View) View() string {
	switch v.mode {
	case modeForm:
		return styles.ModalStyle.Render(v.form.View())
	case modeDetails:
		return v.renderDetails()
	case modeConfirmDelete:
		return v.renderConfirm()
	case modeAccept:
		return v.renderAccept()
	}
	return v.renderList()
}

func (v View) renderList() string {
	var b strings.Builder

	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf(
		" Department: %s  Status: %s", v.ctrl.DepartmentLabel(), v.ctrl.StatusLabel())))
	b.WriteString("\n")

	titleW := v.width - 40
	if titleW < 20 {
		titleW = 20
	}
	header := fmt.Sprintf("  %-2s %-*s %-13s %-10s %s", "", titleW, "Title", "Status", "Dept", "Assignee")
	b.WriteString(styles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	tasks := v.ctrl.Tasks()
	rendered := 0
	if len(tasks) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No tasks"))
		b.WriteString("\n")
		rendered = 1
	} else {
		visible := v.visibleLines()
		offset := v.ctrl.Offset()
		end := offset + visible
		if end > len(tasks) {
			end = len(tasks)
		}
		for i := offset; i < end; i++ {
			b.WriteString(v.renderRow(&tasks[i], i == v.ctrl.Cursor(), titleW))
			b.WriteString("\n")
			rendered++
		}
	}

	for i := rendered; i < v.visibleLines(); i++ {
		b.WriteString("\n")
	}

	b.WriteString(styles.MutedStyle.Render(
		" ↑/↓ navigate • enter details • n new • e edit • a accept • m advance • b send back • x delete • f/s filter"))
	return b.String()
}

func (v View) renderRow(t *domain.Task, selected bool, titleW int) string {
	title := ansi.Truncate(t.Title, titleW-1, "…")

	assignee := t.AssignedWorkerName
	if assignee == "" && t.Assigned() {
		assignee = fmt.Sprintf("#%d", *t.AssignedWorkerID)
	}

	icon := styles.StatusStyle(t.Status).Render(styles.StatusIcon(t.Status))
	row := fmt.Sprintf("%-*s %-13s %-10s %s", titleW, title, t.Status.Label(), t.Department.Label(), assignee)

	if selected {
		return "  " + icon + " " + styles.SelectedRowStyle.Render(row)
	}
	return "  " + icon + " " + row
}

func (v View) renderDetails() string {
	if v.details == nil {
		return ""
	}
	t := v.details

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(t.Title))
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf(
		"%s • %s", t.Status.Label(), t.Department.Label())))
	b.WriteString("\n")
	if t.AssignedWorkerName != "" {
		b.WriteString(styles.MutedStyle.Render("Assigned to " + t.AssignedWorkerName))
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedStyle.Render("Created " + t.CreatedAt.Format("2006-01-02 15:04")))
	if t.Modified() {
		b.WriteString(styles.MutedStyle.Render(" • updated " + t.UpdatedAt.Format("2006-01-02 15:04")))
	}
	b.WriteString("\n")
	b.WriteString(v.detailsBody)
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("esc close"))

	return styles.ModalStyle.Render(b.String())
}

func (v View) renderConfirm() string {
	sel := v.ctrl.Selected()
	if sel == nil {
		return ""
	}
	body := fmt.Sprintf("Delete task %q?\n\n", sel.Title) +
		styles.MutedStyle.Render("y confirm • n cancel")
	return styles.ModalStyle.Render(body)
}

func (v View) renderAccept() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Accept as"))
	b.WriteString("\n\n")

	if len(v.freeWorkers) == 0 {
		b.WriteString(styles.MutedStyle.Render("No workers registered"))
	}
	for i, w := range v.freeWorkers {
		line := fmt.Sprintf("%s (%s, %s)", w.FullName, w.Department.Label(), w.WorkerStatus.Label())
		if i == v.acceptCursor {
			line = styles.SelectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("enter accept • esc cancel"))
	return styles.ModalStyle.Render(b.String())
}

func (v View) visibleLines() int {
	visible := v.height - 3
	if visible < 1 {
		visible = 1
	}
	return visible
}
