package workers

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/taskdeck/internal/core/domain"
	"github.com/opsdeck/taskdeck/internal/core/styles"
)

const (
	focusID = iota
	focusUsername
	focusName
	focusDept
	formFocusCount
)

// Form is the add/edit worker form. Identity and handle are write-once:
// on an edit they are shown read-only and never submitted from the form.
type Form struct {
	id       textinput.Model
	username textinput.Model
	name     textinput.Model

	deptIdx int
	focus   int
	editing *domain.Worker
	errMsg  string
}

// NewForm creates a blank form for registering a worker.
func NewForm() Form {
	id := textinput.New()
	id.Placeholder = "Telegram ID"
	id.CharLimit = 20
	id.Focus()

	username := textinput.New()
	username.Placeholder = "Telegram username"
	username.CharLimit = 64

	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 120

	return Form{id: id, username: username, name: name}
}

// NewEditForm creates a form pre-filled from an existing worker. The
// identity fields are locked.
func NewEditForm(worker domain.Worker) Form {
	f := NewForm()
	f.editing = &worker
	f.name.SetValue(worker.FullName)
	for i, d := range domain.Departments() {
		if d == worker.Department {
			f.deptIdx = i
			break
		}
	}
	f.setFocus(focusName)
	return f
}

// Editing reports whether the form edits an existing worker.
func (f Form) Editing() bool {
	return f.editing != nil
}

// EditingID returns the identity of the worker being edited.
func (f Form) EditingID() int64 {
	if f.editing == nil {
		return 0
	}
	return f.editing.TelegramID
}

// TelegramID returns the entered identity, or 0 when unparsable.
func (f Form) TelegramID() int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(f.id.Value()), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Username returns the entered handle.
func (f Form) Username() string {
	return strings.TrimSpace(f.username.Value())
}

// FullName returns the entered name.
func (f Form) FullName() string {
	return strings.TrimSpace(f.name.Value())
}

// Department returns the selected department.
func (f Form) Department() domain.Department {
	return domain.Departments()[f.deptIdx]
}

// SetError displays a validation or server error under the form.
func (f *Form) SetError(msg string) {
	f.errMsg = msg
}

// Update routes key input to the focused field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if ok {
		switch key.String() {
		case "tab", "down":
			f.setFocus(f.nextFocus(1))
			return f, nil
		case "shift+tab", "up":
			f.setFocus(f.nextFocus(-1))
			return f, nil
		case "left":
			if f.focus == focusDept {
				f.deptIdx = (f.deptIdx + len(domain.Departments()) - 1) % len(domain.Departments())
				return f, nil
			}
		case "right":
			if f.focus == focusDept {
				f.deptIdx = (f.deptIdx + 1) % len(domain.Departments())
				return f, nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case focusID:
		f.id, cmd = f.id.Update(msg)
	case focusUsername:
		f.username, cmd = f.username.Update(msg)
	case focusName:
		f.name, cmd = f.name.Update(msg)
	}
	return f, cmd
}

// nextFocus steps over the locked identity fields while editing.
func (f Form) nextFocus(dir int) int {
	focus := f.focus
	for {
		focus = (focus + dir + formFocusCount) % formFocusCount
		if f.editing == nil || (focus != focusID && focus != focusUsername) {
			return focus
		}
	}
}

func (f *Form) setFocus(focus int) {
	f.focus = focus
	f.id.Blur()
	f.username.Blur()
	f.name.Blur()
	switch focus {
	case focusID:
		f.id.Focus()
	case focusUsername:
		f.username.Focus()
	case focusName:
		f.name.Focus()
	}
}

// View renders the form body. The caller wraps it in the modal frame.
func (f Form) View() string {
	var b strings.Builder

	header := "Add Worker"
	if f.Editing() {
		header = "Edit Worker"
	}
	b.WriteString(styles.TitleStyle.Render(header))
	b.WriteString("\n\n")

	if f.editing != nil {
		b.WriteString(styles.MutedStyle.Render(
			"Telegram: " + strconv.FormatInt(f.editing.TelegramID, 10) + " @" + f.editing.TelegramUsername))
		b.WriteString("\n\n")
	} else {
		b.WriteString(f.id.View())
		b.WriteString("\n\n")
		b.WriteString(f.username.View())
		b.WriteString("\n\n")
	}

	b.WriteString(f.name.View())
	b.WriteString("\n\n")

	b.WriteString(styles.MutedStyle.Render("Department: "))
	for i, d := range domain.Departments() {
		label := " " + d.Label() + " "
		if i == f.deptIdx {
			if f.focus == focusDept {
				label = styles.SelectedRowStyle.Render(label)
			} else {
				label = styles.TitleStyle.Render(label)
			}
		} else {
			label = styles.MutedStyle.Render(label)
		}
		b.WriteString(label)
	}
	b.WriteString("\n")

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorBannerStyle.Render(f.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("enter save • esc cancel • tab next field"))
	return b.String()
}
