package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opsdeck/taskdeck/internal/core/styles"
)

// View renders the full dashboard frame.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if err := m.app.Store.LastError(); err != nil {
		b.WriteString(styles.ErrorBannerStyle.Render("Server unreachable: " + err.Error()))
		b.WriteString("\n")
	}

	switch m.tab {
	case tabTasks:
		b.WriteString(m.tasksView.View())
	case tabWorkers:
		b.WriteString(m.workersView.View())
	case tabStats:
		b.WriteString(m.statsView.View())
	}

	frame := b.String()
	return overlayToasts(frame, m.toasts.Toasts(), m.width)
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if i == m.tab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(name))
		}
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if !m.app.Bridge.Connected() {
		line += styles.MutedStyle.Render("  ⚠ offline")
	}
	return line
}
