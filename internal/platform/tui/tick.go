// Package tui provides the Bubble Tea integration for Lane Dodge.
// It owns the frame clock, maps keys and mouse to game actions, and draws
// the game's screen buffer to the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameTimestamp converts a tick time into monotonic milliseconds since start.
func frameTimestamp(start time.Time, t TickMsg) float64 {
	return float64(time.Time(t).Sub(start).Microseconds()) / 1000
}
