package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/opsdeck/taskdeck/internal/core/styles"
)

// renderToast renders a single toast box.
func renderToast(t toast) string {
	n := t.notification
	icon := styles.LevelIcon(n.Level)

	message := n.Message
	if maxText := toastWidth - 4; maxText > 0 {
		message = ansi.Truncate(message, maxText, "…")
	}

	return styles.ToastStyle(n.Level).
		Width(toastWidth).
		Render(icon + " " + message)
}

// renderToastStack renders the toast column, oldest on top.
func renderToastStack(toasts []toast) string {
	if len(toasts) == 0 {
		return ""
	}
	boxes := make([]string, 0, len(toasts))
	for _, t := range toasts {
		boxes = append(boxes, renderToast(t))
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}

// overlayToasts paints the toast stack over the bottom-right corner of the
// background frame. Lines the stack covers are replaced rather than
// composited; toasts are opaque.
func overlayToasts(background string, toasts []toast, width int) string {
	stack := renderToastStack(toasts)
	if stack == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")
	stackLines := strings.Split(stack, "\n")

	if len(stackLines) >= len(bgLines) {
		return stack
	}

	start := len(bgLines) - len(stackLines)
	pad := width - lipgloss.Width(stackLines[0])
	if pad < 0 {
		pad = 0
	}
	for i, line := range stackLines {
		bgLines[start+i] = strings.Repeat(" ", pad) + line
	}
	return strings.Join(bgLines, "\n")
}
