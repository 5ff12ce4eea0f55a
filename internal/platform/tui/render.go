package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/kuzu-maze/internal/games/kuzu"
	"github.com/vovakirdan/kuzu-maze/internal/maze"
)

// tileStyles maps tile kinds to lipgloss styles.
var tileStyles = map[maze.Tile]lipgloss.Style{
	maze.Stone:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	maze.Flower1:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	maze.Flower2:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	maze.Flower3:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	maze.Flower4:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	maze.Flower5:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	maze.Grapple:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	maze.ExtraLife: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	maze.Diagonal:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	maze.Wildcard:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	maze.Warp:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	maze.Hazard:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

var (
	hiddenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	legalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	boardBorder  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	victoryPanel = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("13")).Padding(0, 2)
)

// renderCell draws one tile. canReveal marks cells that are legal targets.
func renderCell(v kuzu.View, c maze.Coord, canReveal bool) string {
	snap := v.Snapshot
	var label string
	var style lipgloss.Style

	switch {
	case v.FaceUp(c):
		t := v.Board.At(c)
		label = t.Glyph()
		style = tileStyles[t]
	case canReveal:
		label = " ▫ "
		style = legalStyle
	default:
		label = " ▪ "
		style = hiddenStyle
	}

	left, right := " ", " "
	switch {
	case snap.At(c):
		left, right = "[", "]"
	case snap.GrappleOrigin != nil && *snap.GrappleOrigin == c:
		left, right = "<", ">"
	}
	return style.Render(left + label + right)
}

// renderBoard draws the grid with the cursor highlighted.
func renderBoard(v kuzu.View, cursor maze.Coord, canReveal func(maze.Coord) bool) string {
	var b strings.Builder
	for r := range v.Board.Rows() {
		if r > 0 {
			b.WriteString("\n")
		}
		for col := range v.Board.Cols() {
			c := maze.At(r, col)
			cell := renderCell(v, c, canReveal(c))
			if c == cursor && !v.Finished() {
				cell = cursorStyle.Render(cell)
			}
			b.WriteString(cell)
		}
	}
	return boardBorder.Render(b.String())
}

// renderHeader shows the mode, date and attempt counter.
func renderHeader(v kuzu.View) string {
	title := "Kuzu's Maze - Practice"
	if v.Mode == kuzu.ModeDaily {
		title = fmt.Sprintf("Kuzu's Maze - Daily %s", v.Date)
	}
	line := fmt.Sprintf("Attempt %d", v.Snapshot.Attempt)
	if v.Streak != nil && v.Mode == kuzu.ModeDaily {
		line += fmt.Sprintf("  |  Streak %d (best %d)", v.Streak.Current, v.Streak.Best)
	}
	return titleStyle.Render(title) + "\n" + mutedStyle.Render(line)
}

// renderStatus lists goal progress and the active modifiers.
func renderStatus(v kuzu.View) string {
	snap := v.Snapshot
	var goals strings.Builder
	collected := make(map[int]bool, len(snap.Collected))
	for _, g := range snap.Collected {
		collected[g] = true
	}
	for g := 1; g <= maze.GoalCount; g++ {
		if collected[g] {
			fmt.Fprintf(&goals, "✿%d ", g)
		} else {
			fmt.Fprintf(&goals, "·%d ", g)
		}
	}

	var mods []string
	if snap.Diagonal {
		mods = append(mods, "diagonal")
	}
	if snap.ExtraLife {
		mods = append(mods, "extra life")
	}
	if snap.AnyOrder {
		mods = append(mods, "any order")
	}
	switch snap.Mode {
	case maze.ModePendingWarp:
		mods = append(mods, "WARP: pick any tile")
	case maze.ModePendingGrapple:
		mods = append(mods, "GRAPPLE: pick a tile")
	}

	lines := []string{"Goals: " + strings.TrimSpace(goals.String())}
	if snap.NextGoal > 0 && !snap.AnyOrder {
		lines = append(lines, fmt.Sprintf("Next: flower %d", snap.NextGoal))
	}
	if len(mods) > 0 {
		lines = append(lines, "Active: "+strings.Join(mods, ", "))
	}
	if snap.Failure != nil {
		lines = append(lines, alertStyle.Render(snap.Failure.Message))
	}
	return strings.Join(lines, "\n")
}

// renderVictory draws the end-of-game panel.
func renderVictory(v kuzu.View, share string) string {
	var b strings.Builder
	if v.Mode == kuzu.ModeDaily {
		b.WriteString(titleStyle.Render("🎉 Daily Puzzle Complete! 🎉"))
	} else {
		b.WriteString(titleStyle.Render("🎉 Congratulations! 🎉"))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Attempts: %d\n", v.Snapshot.Attempt)
	if bd := v.Breakdown; bd != nil {
		fmt.Fprintf(&b, "Rating:   %s\n", kuzu.Stars(bd.Stars))
		fmt.Fprintf(&b, "Score:    %d  (attempts %d, tiles %d, powers %d)\n", bd.Total, bd.Attempts, bd.Tiles, bd.Powers)
	}
	if v.Optimal != nil {
		fmt.Fprintf(&b, "Best possible: %d tiles, %d powers\n", v.Optimal.Tiles, v.Optimal.Powers)
	}
	if share != "" {
		b.WriteString("\n")
		b.WriteString(share)
	} else {
		b.WriteString(mutedStyle.Render("\nc: share  v: show board  m: switch mode"))
	}
	return victoryPanel.Render(b.String())
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers every line of a multi-line block.
func centerBlock(block string, width int) string {
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
