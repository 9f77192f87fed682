package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/opsdeck/taskdeck/internal/core/domain"
	"github.com/opsdeck/taskdeck/internal/core/notify"
)

// Notification level icons.
var (
	IconNotifyInfo    = "●"
	IconNotifySuccess = "✓"
	IconNotifyWarning = "▲"
	IconNotifyError   = "✗"
)

// statusIcons is the authoritative status icon map, consulted everywhere a
// status is rendered.
var statusIcons = map[domain.TaskStatus]string{
	domain.StatusToDo:       "◯",
	domain.StatusInProgress: "◐",
	domain.StatusOnReview:   "◎",
	domain.StatusDone:       "●",
}

// StatusIcon returns the icon for a task status.
func StatusIcon(s domain.TaskStatus) string {
	if icon, ok := statusIcons[s]; ok {
		return icon
	}
	return "?"
}

// StatusStyle returns the colored style for a task status.
func StatusStyle(s domain.TaskStatus) lipgloss.Style {
	switch s {
	case domain.StatusDone:
		return styleFor(CurrentPalette.Success)
	case domain.StatusOnReview:
		return styleFor(CurrentPalette.Warning)
	case domain.StatusInProgress:
		return styleFor(CurrentPalette.Secondary)
	default:
		return styleFor(CurrentPalette.Muted)
	}
}

// LevelIcon returns the icon for a notification level.
func LevelIcon(l notify.Level) string {
	switch l {
	case notify.LevelSuccess:
		return IconNotifySuccess
	case notify.LevelWarning:
		return IconNotifyWarning
	case notify.LevelError:
		return IconNotifyError
	default:
		return IconNotifyInfo
	}
}

// ToastStyle returns the toast border style for a notification level.
func ToastStyle(l notify.Level) lipgloss.Style {
	switch l {
	case notify.LevelSuccess:
		return ToastSuccessStyle
	case notify.LevelWarning:
		return ToastWarningStyle
	case notify.LevelError:
		return ToastErrorStyle
	default:
		return ToastInfoStyle
	}
}
