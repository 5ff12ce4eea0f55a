package kuzu

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/kuzu-maze/internal/maze"
)

// Stars renders a 1..5 rating as filled and empty stars.
func Stars(n int) string {
	n = min(max(n, 0), 5)
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// ShareText returns the victory message for the finished puzzle, or ""
// while it is still being played.
func (g *Game) ShareText() string {
	if g.result == nil {
		return ""
	}
	r := g.result

	powers := "None - Pure skill! 💪"
	if len(r.Powers) > 0 {
		powers = strings.Join(r.Powers, ", ")
	}
	title := "Practice"
	if r.Mode == ModeDaily {
		title = "Daily " + r.Date
	}

	var b strings.Builder
	b.WriteString("🎉 Kuzu's Maze Victory! 🎉\n")
	fmt.Fprintf(&b, "📅 %s\n", title)
	b.WriteString("📊 My Results:\n")
	fmt.Fprintf(&b, "- Attempts: %d\n", r.Attempts)
	fmt.Fprintf(&b, "- Tiles Revealed: %d out of %d\n", r.Tiles, maze.CellCount)
	fmt.Fprintf(&b, "- Powers Used: %s\n", powers)
	fmt.Fprintf(&b, "- Rating: %s\n", Stars(r.Breakdown.Stars))
	b.WriteString("\nThink you can do better? Try Kuzu's Maze!")
	return b.String()
}
