package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a game command derived from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionReveal
	ActionRestart
	ActionToggleMode
	ActionNewGame
	ActionRevealAll
	ActionShare
	ActionScores
	ActionHelp
	ActionBack
	ActionQuit
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Reveal    key.Binding
	Restart   key.Binding
	Mode      key.Binding
	NewGame   key.Binding
	RevealAll key.Binding
	Share     key.Binding
	Scores    key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reveal, k.Restart, k.Mode, k.Scores, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Reveal},
		{k.Restart, k.Mode, k.NewGame},
		{k.RevealAll, k.Share, k.Scores},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "right"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "flip tile"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart attempt"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "daily/practice"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new practice board"),
		),
		RevealAll: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "show board"),
		),
		Share: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "share results"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.Quit):
		return ActionQuit
	case key.Matches(msg, k.Up):
		return ActionUp
	case key.Matches(msg, k.Down):
		return ActionDown
	case key.Matches(msg, k.Left):
		return ActionLeft
	case key.Matches(msg, k.Right):
		return ActionRight
	case key.Matches(msg, k.Reveal):
		return ActionReveal
	case key.Matches(msg, k.Restart):
		return ActionRestart
	case key.Matches(msg, k.Mode):
		return ActionToggleMode
	case key.Matches(msg, k.NewGame):
		return ActionNewGame
	case key.Matches(msg, k.RevealAll):
		return ActionRevealAll
	case key.Matches(msg, k.Share):
		return ActionShare
	case key.Matches(msg, k.Scores):
		return ActionScores
	case key.Matches(msg, k.Help):
		return ActionHelp
	case key.Matches(msg, k.Back):
		return ActionBack
	}
	return ActionNone
}
