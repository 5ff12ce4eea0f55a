// Package tui provides the Bubble Tea front end for Kuzu's Maze: the game
// screen, the scoreboard and the Wish SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// rolloverInterval is how often the model checks for a new daily date.
const rolloverInterval = time.Minute

// revealDoneMsg ends the flip animation of a reveal.
type revealDoneMsg struct {
	ended bool // the reveal ended the attempt
	won   bool
}

// turnEndMsg ends the pause after a failed or restarted attempt.
type turnEndMsg struct{}

// clockMsg triggers a daily rollover check.
type clockMsg time.Time

// revealDelayCmd returns a command that reports the end of a flip animation.
func revealDelayCmd(d time.Duration, ended, won bool) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return revealDoneMsg{ended: ended, won: won}
	})
}

// turnEndCmd returns a command that ends the attempt-over pause.
func turnEndCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return turnEndMsg{}
	})
}

// clockCmd schedules the next rollover check.
func clockCmd() tea.Cmd {
	return tea.Tick(rolloverInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}
