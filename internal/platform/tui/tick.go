// Package tui provides the Bubble Tea front end for blockfall.
// It draws game snapshots, maps keys to control events and hosts the start
// menu, the scoreboard and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// hudInterval is how often the view refreshes between game notifications.
const hudInterval = 250 * time.Millisecond

// TickMsg is sent to refresh the play clock and the paused overlay.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
