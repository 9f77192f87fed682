// Package tui implements the dashboard terminal UI: the tab bar, the three
// views, the toast stack, and the plumbing that carries gateway and hub
// activity into the Bubble Tea update loop.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/opsdeck/taskdeck/internal/board"
	"github.com/opsdeck/taskdeck/internal/tui/views/stats"
	"github.com/opsdeck/taskdeck/internal/tui/views/tasks"
	"github.com/opsdeck/taskdeck/internal/tui/views/workers"
)

const (
	tabTasks = iota
	tabWorkers
	tabStats
	tabCount
)

var tabNames = [tabCount]string{"Tasks", "Workers", "Stats"}

const bootstrapTimeout = 10 * time.Second

// Model is the root Bubble Tea model for the dashboard.
type Model struct {
	app  *board.App
	keys KeyMap

	tab         int
	tasksView   tasks.View
	workersView workers.View
	statsView   stats.View

	buffer    *NotificationBuffer
	toasts    *ToastController
	refreshCh chan struct{}

	// hubWarned suppresses repeated disconnect toasts within one outage.
	hubWarned bool

	width  int
	height int
}

// NewModel wires the root model. The notification bus and the hub notifier
// are subscribed here so every event lands in the update loop.
func NewModel(app *board.App) *Model {
	m := &Model{
		app:         app,
		keys:        DefaultKeyMap(),
		tasksView:   tasks.New(app),
		workersView: workers.New(app),
		statsView:   stats.New(app),
		buffer:      NewNotificationBuffer(),
		toasts:      NewToastController(app.Config.UI.ToastTTL.Std()),
		refreshCh:   make(chan struct{}, 1),
	}

	app.Bus.Subscribe(m.buffer.Push)

	notifier := board.NewNotifier(app.Store, app.Bus, m.requestRefresh)
	notifier.Attach(app.Bridge)

	return m
}

// requestRefresh is called from hub goroutines; it nudges the update loop
// without blocking the caller.
func (m *Model) requestRefresh() {
	select {
	case m.refreshCh <- struct{}{}:
	default:
	}
}

// waitForRefreshRequest blocks until a hub event asked for a reload.
func (m *Model) waitForRefreshRequest() tea.Cmd {
	return func() tea.Msg {
		<-m.refreshCh
		return refreshRequestedMsg{}
	}
}

// refreshRequestedMsg carries a hub-triggered reload request into Update.
type refreshRequestedMsg struct{}

// Init connects the bridge, loads the board, and starts the background
// waits.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.connectBridge(),
		m.reloadBoard(),
		m.buffer.WaitForSignal(),
		m.waitForRefreshRequest(),
		scheduleLivenessTick(m.app.Config.UI.LivenessInterval.Std()),
	)
}

// Update routes messages to the model and the active view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := m.height - 3
		m.tasksView.SetSize(m.width, bodyHeight)
		m.workersView.SetSize(m.width, bodyHeight)
		m.statsView.SetSize(m.width, bodyHeight)
		return m, nil

	case drainNotificationsMsg:
		return m.handleDrain()

	case toastTickMsg:
		return m.handleToastTick()

	case refreshRequestedMsg:
		// Let the server settle before refetching.
		return m, tea.Batch(
			scheduleRefresh(m.app.Config.UI.RefreshDelay.Std()),
			m.waitForRefreshRequest(),
		)

	case refreshMsg:
		return m, m.reloadBoard()

	case dataLoadedMsg:
		if msg.err != nil {
			log.Debug().Err(msg.err).Msg("board reload failed")
		}
		return m, nil

	case livenessTickMsg:
		return m.handleLivenessTick()

	case reconnectedMsg:
		if msg.err == nil {
			if m.hubWarned {
				m.app.Bus.Successf("Live updates restored")
			}
			m.hubWarned = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveView(msg)
}

func (m *Model) handleDrain() (tea.Model, tea.Cmd) {
	for _, n := range m.buffer.Drain() {
		m.toasts.Push(n)
	}

	cmds := []tea.Cmd{m.buffer.WaitForSignal()}
	if m.toasts.HasToasts() && !m.toasts.Ticking() {
		m.toasts.SetTicking(true)
		cmds = append(cmds, scheduleToastTick())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleToastTick() (tea.Model, tea.Cmd) {
	m.toasts.Tick(toastTickInterval)
	if m.toasts.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toasts.SetTicking(false)
	return m, nil
}

func (m *Model) handleLivenessTick() (tea.Model, tea.Cmd) {
	next := scheduleLivenessTick(m.app.Config.UI.LivenessInterval.Std())

	if m.app.Bridge.Connected() {
		return m, next
	}

	if !m.hubWarned {
		m.hubWarned = true
		m.app.Bus.Warnf("Live updates disconnected, retrying")
	}
	return m, tea.Batch(next, m.connectBridge())
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A focused text field consumes everything except ctrl+c.
	if m.activeEditorFocus() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateActiveView(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.tab + 1) % tabCount)
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.tab + tabCount - 1) % tabCount)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadBoard()
	case key.Matches(msg, m.keys.DismissAll):
		m.toasts.DismissAll()
		return m, nil
	}

	return m.updateActiveView(msg)
}

// switchTab changes the active view and refreshes it from the server.
// Filters survive the switch; only the data is refetched.
func (m *Model) switchTab(tab int) (tea.Model, tea.Cmd) {
	m.tab = tab
	return m, m.reloadBoard()
}

func (m *Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.tab {
	case tabTasks:
		m.tasksView, cmd = m.tasksView.Update(msg)
	case tabWorkers:
		m.workersView, cmd = m.workersView.Update(msg)
	case tabStats:
		m.statsView, cmd = m.statsView.Update(msg)
	}
	return m, cmd
}

func (m *Model) activeEditorFocus() bool {
	switch m.tab {
	case tabTasks:
		return m.tasksView.HasEditorFocus()
	case tabWorkers:
		return m.workersView.HasEditorFocus()
	}
	return false
}

func (m *Model) connectBridge() tea.Cmd {
	b := m.app.Bridge
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
		defer cancel()
		return reconnectedMsg{err: b.Connect(ctx)}
	}
}

func (m *Model) reloadBoard() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
		defer cancel()
		return dataLoadedMsg{err: app.Bootstrap(ctx)}
	}
}
