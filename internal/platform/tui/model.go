package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/kuzu-maze/internal/config"
	"github.com/vovakirdan/kuzu-maze/internal/games/kuzu"
	"github.com/vovakirdan/kuzu-maze/internal/maze"
)

// Model is the Bubble Tea model for a Kuzu's Maze game.
type Model struct {
	ctx    context.Context
	game   *kuzu.Game
	cfg    config.Config
	scores ScoreSource
	keys   KeyMap
	help   help.Model

	cursor    maze.Coord
	width     int
	height    int
	animating bool // a flip or end-of-attempt pause holds the input gate
	showShare bool
	notice    string
	board     *ScoreboardModel
	quitting  bool
}

// NewModel creates the game screen. scores may be nil when no leaderboard
// is available.
func NewModel(ctx context.Context, game *kuzu.Game, cfg config.Config, scores ScoreSource, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		ctx:    ctx,
		game:   game,
		cfg:    cfg,
		scores: scores,
		keys:   DefaultKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
}

// Init starts the daily rollover clock.
func (m Model) Init() tea.Cmd {
	return clockCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		if m.board != nil {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case revealDoneMsg:
		if msg.ended {
			return m, turnEndCmd(m.cfg.Timing.TurnEndDelay)
		}
		m.game.Unlock()
		m.animating = false
		return m, nil

	case turnEndMsg:
		if !m.game.FinishAttempt() {
			m.game.Unlock()
		}
		m.animating = false
		m.notice = ""
		return m, nil

	case clockMsg:
		m.checkRollover()
		return m, clockCmd()
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	rows, cols := m.cfg.Board.Shape(msg.Width)
	if !m.animating && m.game.Resize(m.ctx, rows, cols) {
		m.cursor = m.clamp(m.cursor)
	}
	if m.board != nil {
		next, _ := m.board.Update(msg)
		if sb, ok := next.(ScoreboardModel); ok {
			m.board = &sb
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case ActionUp:
		m.cursor = m.clamp(maze.At(m.cursor.Row-1, m.cursor.Col))
	case ActionDown:
		m.cursor = m.clamp(maze.At(m.cursor.Row+1, m.cursor.Col))
	case ActionLeft:
		m.cursor = m.clamp(maze.At(m.cursor.Row, m.cursor.Col-1))
	case ActionRight:
		m.cursor = m.clamp(maze.At(m.cursor.Row, m.cursor.Col+1))

	case ActionReveal:
		return m.reveal()

	case ActionRestart:
		if m.animating {
			return m, nil
		}
		if m.game.Restart() {
			m.game.Lock()
			m.animating = true
			return m, turnEndCmd(m.cfg.Timing.TurnEndDelay)
		}

	case ActionToggleMode:
		if !m.animating {
			m.game.ToggleMode(m.ctx)
			m.resetScreen()
		}

	case ActionNewGame:
		if !m.animating && m.game.Mode() == kuzu.ModePractice {
			m.game.Reset(m.ctx)
			m.resetScreen()
		}

	case ActionRevealAll:
		if !m.game.RevealAll() {
			m.notice = "Finish the puzzle first"
		}

	case ActionShare:
		if m.game.View().Finished() {
			m.showShare = !m.showShare
		}

	case ActionScores:
		sb := NewScoreboardModel(m.scores, m.game.Records(), m.scoreBoards(), m.cfg.Scoring.LeaderboardSize, m.width, m.height)
		m.board = &sb

	case ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case ActionBack:
		m.showShare = false
		m.notice = ""
	}
	return m, nil
}

func (m Model) reveal() (tea.Model, tea.Cmd) {
	if m.animating {
		return m, nil
	}
	out := m.game.Reveal(m.cursor)
	if !out.Accepted {
		if !m.game.View().Finished() {
			m.notice = "That tile can't be flipped now"
		}
		return m, nil
	}
	m.notice = ""
	m.game.Lock()
	m.animating = true
	return m, revealDelayCmd(m.cfg.Timing.RevealDelay, out.AttemptEnded, out.Won)
}

func (m Model) updateScoreboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		m.board = nil
		return m, nil
	}
	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.board = nil
		return m, nil
	}
	m.board = &sb
	return m, cmd
}

// checkRollover loads the next daily board after midnight, unless the
// player is in the middle of an attempt.
func (m *Model) checkRollover() {
	if m.animating || m.game.Mode() != kuzu.ModeDaily {
		return
	}
	v := m.game.View()
	if v.Snapshot.TilesRevealed > 0 && !v.Finished() {
		return
	}
	if m.game.Reset(m.ctx) {
		m.resetScreen()
	}
}

func (m *Model) resetScreen() {
	m.cursor = maze.At(0, 0)
	m.showShare = false
	m.notice = ""
}

func (m Model) clamp(c maze.Coord) maze.Coord {
	b := m.game.Board()
	c.Row = min(max(c.Row, 0), b.Rows()-1)
	c.Col = min(max(c.Col, 0), b.Cols()-1)
	return c
}

func (m Model) scoreBoards() []string {
	return []string{m.game.Date(), kuzu.PracticeBoardKey}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	v := m.game.View()
	var b strings.Builder
	b.WriteString(centerBlock(renderHeader(v), m.width))
	b.WriteString("\n\n")

	board := renderBoard(v, m.cursor, m.game.CanReveal)
	body := lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", renderStatus(v))
	b.WriteString(centerBlock(body, m.width))
	b.WriteString("\n")

	if v.Finished() {
		share := ""
		if m.showShare {
			share = m.game.ShareText()
		}
		b.WriteString("\n")
		b.WriteString(centerBlock(renderVictory(v, share), m.width))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(centerText(alertStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a local game.
func Run(ctx context.Context, game *kuzu.Game, cfg config.Config, scores ScoreSource, width, height int) error {
	p := tea.NewProgram(
		NewModel(ctx, game, cfg, scores, width, height),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
