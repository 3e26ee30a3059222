package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 1600 * time.Millisecond

// toast is a single transient notification. A newer toast replaces an older
// one; each expiry only clears the toast it was scheduled for.
type toast struct {
	text string
	ok   bool
	seq  int
}

type toastExpiredMsg struct {
	seq int
}

func (t *toast) show(text string, ok bool) tea.Cmd {
	if text == "" {
		return nil
	}
	t.seq++
	t.text = text
	t.ok = ok
	seq := t.seq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (t *toast) expire(seq int) {
	if seq == t.seq {
		t.text = ""
	}
}

func (t toast) visible() bool {
	return t.text != ""
}
