package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastDuration is how long a toast stays in the status bar.
const ToastDuration = 3 * time.Second

// ToastMsg asks the root model to show a short confirmation.
type ToastMsg struct {
	Text string
}

// ToastExpiredMsg clears the toast with the matching sequence number.
type ToastExpiredMsg struct {
	Seq int
}

// Toast returns a command that emits a ToastMsg.
func Toast(text string) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Text: text} }
}

// ExpireToast schedules the removal of toast seq.
func ExpireToast(seq int) tea.Cmd {
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{Seq: seq}
	})
}
