package tui

// drainNotificationsMsg signals that the notification buffer has content.
type drainNotificationsMsg struct{}

// toastTickMsg drives the toast TTL countdown.
type toastTickMsg struct{}

// livenessTickMsg triggers the periodic hub connection check.
type livenessTickMsg struct{}

// refreshMsg asks the active view to refetch its data.
type refreshMsg struct{}

// dataLoadedMsg reports the outcome of a background board reload.
type dataLoadedMsg struct {
	err error
}

// reconnectedMsg reports the outcome of a liveness-triggered reconnect.
type reconnectedMsg struct {
	err error
}
