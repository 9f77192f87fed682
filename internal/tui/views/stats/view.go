// Package stats renders the statistics tab: task and worker distributions
// plus per-worker throughput derived from the board cache.
package stats

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/taskdeck/internal/board"
	"github.com/opsdeck/taskdeck/internal/core/domain"
	"github.com/opsdeck/taskdeck/internal/core/styles"
)

const barWidth = 24

// View is the Bubble Tea sub-model for the statistics tab. It is
// read-only; every keystroke except navigation falls through to the root.
type View struct {
	app    *board.App
	width  int
	height int
}

// New creates the stats view.
func New(app *board.App) View {
	return View{app: app}
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// HasEditorFocus always reports false; the stats tab has no inputs.
func (v View) HasEditorFocus() bool {
	return false
}

// Update is a no-op; the stats view recomputes on render.
func (v View) Update(tea.Msg) (View, tea.Cmd) {
	return v, nil
}

// View renders the statistics tab.
func (v View) View() string {
	s := board.ComputeStats(v.app.Store)

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(" Overview"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %d tasks • %d workers", s.TotalTasks, s.TotalWorkers))
	if s.AvgCompletionHours > 0 {
		b.WriteString(fmt.Sprintf(" • avg completion %s", formatHours(s.AvgCompletionHours)))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.TableHeaderStyle.Render(" Tasks by status"))
	b.WriteString("\n")
	for _, status := range domain.TaskStatuses() {
		count := s.TasksByStatus[status]
		icon := styles.StatusStyle(status).Render(styles.StatusIcon(status))
		b.WriteString(fmt.Sprintf("  %s %-13s %3d %s\n",
			icon, status.Label(), count, bar(count, s.TotalTasks)))
	}
	b.WriteString("\n")

	b.WriteString(styles.TableHeaderStyle.Render(" Tasks by department"))
	b.WriteString("\n")
	for _, dept := range domain.Departments() {
		count := s.TasksByDepartment[dept]
		b.WriteString(fmt.Sprintf("  %-15s %3d %s\n", dept.Label(), count, bar(count, s.TotalTasks)))
	}
	if unassigned := s.TasksByDepartment[domain.DepartmentEmpty]; unassigned > 0 {
		b.WriteString(fmt.Sprintf("  %-15s %3d %s\n",
			domain.DepartmentEmpty.Label(), unassigned, bar(unassigned, s.TotalTasks)))
	}
	b.WriteString("\n")

	b.WriteString(styles.TableHeaderStyle.Render(" Workers"))
	b.WriteString("\n")
	if len(s.PerWorker) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No workers"))
		b.WriteString("\n")
	}
	for _, ws := range s.PerWorker {
		line := fmt.Sprintf("  %-24s %-12s done %-3d active %-3d",
			ws.Worker.FullName, ws.Worker.WorkerStatus.Label(), ws.Done, ws.Active)
		if ws.AvgCompletionHours > 0 {
			line += " avg " + formatHours(ws.AvgCompletionHours)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// bar renders a proportional bar for count out of total.
func bar(count, total int) string {
	if total == 0 || count == 0 {
		return ""
	}
	n := count * barWidth / total
	if n == 0 {
		n = 1
	}
	return styles.MutedStyle.Render(strings.Repeat("█", n))
}

func formatHours(h float64) string {
	if h < 1 {
		return fmt.Sprintf("%.0fm", h*60)
	}
	if h < 48 {
		return fmt.Sprintf("%.1fh", h)
	}
	return fmt.Sprintf("%.1fd", h/24)
}
