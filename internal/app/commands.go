package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Message types for tea.Cmd
type (
	// FrameMsg is sent on each playback frame. It carries the wall clock
	// so the playhead advances by real elapsed time, not the nominal
	// frame interval.
	FrameMsg time.Time

	// ToastMsg displays a temporary message in the footer.
	ToastMsg struct {
		Message  string
		Duration time.Duration
		IsError  bool // true for error toasts (red), false for success (green)
	}
)

// frameCmd returns a command that fires the next playback frame.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// showToast returns a command to show a toast message.
func showToast(msg string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  msg,
			Duration: duration,
		}
	}
}

// showErrorToast returns a command to show an error toast.
func showErrorToast(msg string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  msg,
			Duration: duration,
			IsError:  true,
		}
	}
}
