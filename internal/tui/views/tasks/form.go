package tasks

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/taskdeck/internal/core/domain"
	"github.com/opsdeck/taskdeck/internal/core/styles"
)

const (
	focusTitle = iota
	focusText
	focusDept
	formFocusCount
)

// Form is the create/edit task form. An empty editingID means create.
type Form struct {
	title textinput.Model
	text  textarea.Model

	deptIdx   int
	focus     int
	editingID string
	errMsg    string
}

// NewForm creates a blank form for a new task.
func NewForm() Form {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120
	title.Focus()

	text := textarea.New()
	text.Placeholder = "Description (markdown)"
	text.SetHeight(6)

	return Form{title: title, text: text}
}

// NewEditForm creates a form pre-filled from an existing task.
func NewEditForm(task domain.Task) Form {
	f := NewForm()
	f.editingID = task.ID
	f.title.SetValue(task.Title)
	f.text.SetValue(task.Text)
	for i, d := range domain.Departments() {
		if d == task.Department {
			f.deptIdx = i
			break
		}
	}
	return f
}

// Editing reports whether the form edits an existing task.
func (f Form) Editing() bool {
	return f.editingID != ""
}

// EditingID returns the ID of the task being edited, or "".
func (f Form) EditingID() string {
	return f.editingID
}

// Title returns the entered title.
func (f Form) Title() string {
	return strings.TrimSpace(f.title.Value())
}

// Text returns the entered description.
func (f Form) Text() string {
	return strings.TrimSpace(f.text.Value())
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
			if f.focus == focusText && key.String() == "down" {
				break // down stays inside the textarea
			}
			f.setFocus((f.focus + 1) % formFocusCount)
			return f, nil
		case "shift+tab":
			f.setFocus((f.focus + formFocusCount - 1) % formFocusCount)
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
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusText:
		f.text, cmd = f.text.Update(msg)
	}
	return f, cmd
}

func (f *Form) setFocus(focus int) {
	f.focus = focus
	f.title.Blur()
	f.text.Blur()
	switch focus {
	case focusTitle:
		f.title.Focus()
	case focusText:
		f.text.Focus()
	}
}

// View renders the form body. The caller wraps it in the modal frame.
func (f Form) View() string {
	var b strings.Builder

	header := "New Task"
	if f.Editing() {
		header = "Edit Task"
	}
	b.WriteString(styles.TitleStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString(f.title.View())
	b.WriteString("\n\n")
	b.WriteString(f.text.View())
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
