package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/kuzu-maze/internal/games/kuzu"
	"github.com/vovakirdan/kuzu-maze/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the stats panel beside the table
	sidebarWidth       = 30 // Width of the stats panel
	histogramBarWidth  = 12
)

// ScoreSource provides leaderboard rows.
type ScoreSource interface {
	TopScores(board string, limit int) ([]storage.ScoreEntry, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBoard key.Binding
	PrevBoard key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBoard, k.PrevBoard, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBoard, k.PrevBoard},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextBoard: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next board"),
		),
		PrevBoard: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev board"),
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

// ScoreboardModel shows the leaderboard of a board next to the player's
// streak and stats.
type ScoreboardModel struct {
	boards      []string // leaderboard names: daily dates and "practice"
	boardCursor int
	source      ScoreSource
	records     *kuzu.Records
	limit       int
	scores      []storage.ScoreEntry
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(source ScoreSource, records *kuzu.Records, boards []string, limit, width, height int) ScoreboardModel {
	if limit <= 0 {
		limit = 10
	}
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		boards:      boards,
		source:      source,
		records:     records,
		limit:       limit,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	if len(m.boards) > 0 {
		m.loadScores(m.boards[0])
	}
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Who", Width: 5},
		{Title: "Tries", Width: 6},
		{Title: "Score", Width: 6},
		{Title: "When", Width: 13},
	}

	height := m.height - 10
	if m.showSidebar {
		height = max(height, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadScores loads the leaderboard of one board.
func (m *ScoreboardModel) loadScores(board string) {
	m.scores, m.loadErr = nil, nil
	if m.source != nil {
		m.scores, m.loadErr = m.source.TopScores(board, m.limit)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Initials,
			fmt.Sprintf("%d", s.Attempts),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextBoard):
			if len(m.boards) > 0 {
				m.boardCursor = (m.boardCursor + 1) % len(m.boards)
				m.loadScores(m.boards[m.boardCursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevBoard):
			if len(m.boards) > 0 {
				m.boardCursor = (m.boardCursor - 1 + len(m.boards)) % len(m.boards)
				m.loadScores(m.boards[m.boardCursor])
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Board returns the name of the leaderboard on screen.
func (m ScoreboardModel) Board() string {
	if len(m.boards) == 0 {
		return ""
	}
	return m.boards[m.boardCursor]
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "LEADERBOARD"
	if board := m.Board(); board != "" {
		title = fmt.Sprintf("LEADERBOARD - %s", board)
	}
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableBox := panel.Render(m.renderTableContent())
	statsBox := panel.Width(sidebarWidth).Render(m.renderStats())
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableBox, "  ", statsBox))
	} else {
		b.WriteString(centerBlock(tableBox, m.width))
		b.WriteString("\n")
		b.WriteString(centerBlock(statsBox, m.width))
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.source == nil:
		return empty.Render("Leaderboard unavailable.\nScores are not being saved.")
	case m.loadErr != nil:
		return empty.Render("Could not load scores.")
	case len(m.scores) == 0:
		return empty.Render("No wins recorded yet.\nSolve the maze to set a score!")
	}
	return m.table.View()
}

// renderStats renders the player's streak, totals and attempts histogram.
func (m ScoreboardModel) renderStats() string {
	if m.records == nil {
		return mutedStyle.Render("No stats yet.")
	}
	st := m.records.Stats()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Your stats"))
	b.WriteString("\n")
	winRate := 0
	if st.Played > 0 {
		winRate = st.Wins * 100 / st.Played
	}
	fmt.Fprintf(&b, "Played %d  Won %d (%d%%)\n", st.Played, st.Wins, winRate)
	if s := m.records.Streak(); s != nil {
		fmt.Fprintf(&b, "Streak %d  Best %d\n", s.Current, s.Best)
	}

	b.WriteString("\nAttempts to win\n")
	buckets := m.records.Histogram().Buckets()
	peak := 0
	for _, bk := range buckets {
		peak = max(peak, bk.Count)
	}
	for _, bk := range buckets {
		bar := 0
		if peak > 0 {
			bar = bk.Count * histogramBarWidth / peak
		}
		if bk.Count > 0 {
			bar = max(bar, 1)
		}
		fmt.Fprintf(&b, "%5s %s %d\n", bk.Label, strings.Repeat("█", bar), bk.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

// IsGoingBack returns true if user wants to go back to the game.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
