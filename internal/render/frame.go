package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdrpinto/ringmaze"
)

var (
	wallStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	halfStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	terminalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	topPinStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	bottomStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true)
)

// Glyphs used by Frame.
const (
	GlyphBothBlocked = '#'
	GlyphBothOpen    = '.'
	GlyphTopOnly     = '^'
	GlyphBottomOnly  = 'v'
	GlyphTerminal    = 'X'
	GlyphTopPin      = 'T'
	GlyphBottomPin   = 'B'
	GlyphBothPins    = '@'
)

func cellGlyph(maze *ringmaze.Maze, pos ringmaze.Position) (rune, lipgloss.Style) {
	top, bottom := maze.CellAt(ringmaze.Top, pos), maze.CellAt(ringmaze.Bottom, pos)
	switch {
	case top == ringmaze.Terminal || bottom == ringmaze.Terminal:
		return GlyphTerminal, terminalStyle
	case top == ringmaze.Blocked && bottom == ringmaze.Blocked:
		return GlyphBothBlocked, wallStyle
	case top == ringmaze.Blocked:
		return GlyphBottomOnly, halfStyle
	case bottom == ringmaze.Blocked:
		return GlyphTopOnly, halfStyle
	}
	return GlyphBothOpen, halfStyle
}

// Frame draws both layers overlaid, one character per cell, with the pins of
// node drawn over them.
func Frame(maze *ringmaze.Maze, node ringmaze.SearchNode) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("t=" + strconv.Itoa(node.Time)))
	b.WriteByte('\n')
	for y := 0; y < maze.Height(); y++ {
		for x := 0; x < maze.Width(); x++ {
			pos := maze.ToPosition(x, y)
			glyph, style := cellGlyph(maze, pos)
			switch {
			case pos == node.State.Top && pos == node.State.Bottom:
				glyph, style = GlyphBothPins, topPinStyle
			case pos == node.State.Top:
				glyph, style = GlyphTopPin, topPinStyle
			case pos == node.State.Bottom:
				glyph, style = GlyphBottomPin, bottomStyle
			}
			b.WriteString(style.Render(string(glyph)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
