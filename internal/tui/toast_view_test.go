package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/taskdeck/internal/core/notify"
)

func TestRenderToast_truncates_long_messages(t *testing.T) {
	long := strings.Repeat("x", 200)
	out := renderToast(toast{notification: notify.Notification{Level: notify.LevelInfo, Message: long}})

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, long)
}

func TestRenderToast_truncates_multibyte_messages_cleanly(t *testing.T) {
	long := strings.Repeat("задача принята ", 20)
	out := renderToast(toast{notification: notify.Notification{Level: notify.LevelSuccess, Message: long}})

	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "…")
}

func TestRenderToastStack_empty(t *testing.T) {
	assert.Empty(t, renderToastStack(nil))
}

func TestOverlayToasts_replaces_bottom_lines(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat("background line\n", 20), "\n")
	toasts := []toast{
		{notification: notify.Notification{Level: notify.LevelSuccess, Message: "saved"}},
	}

	out := overlayToasts(bg, toasts, 80)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 20)
	assert.Equal(t, "background line", lines[0])
	assert.Contains(t, out, "saved")
	// The toast landed at the bottom of the frame.
	assert.NotContains(t, lines[len(lines)-2], "background")
}

func TestOverlayToasts_no_toasts_returns_background(t *testing.T) {
	bg := "just the frame"
	assert.Equal(t, bg, overlayToasts(bg, nil, 80))
}
