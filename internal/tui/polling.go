package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// scheduleToastTick returns a command that schedules the next toast tick.
func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}

// scheduleLivenessTick returns a command that schedules the next hub
// connection check.
func scheduleLivenessTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return livenessTickMsg{}
	})
}

// scheduleRefresh returns a command that requests a board reload after the
// given delay. Hub events trigger this rather than an immediate fetch so
// the server has settled by the time the collection is refetched.
func scheduleRefresh(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}
