// Package text renders a game state as a plain-text board.
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/wricardo/quoridor/game/engine"
)

const (
	topBorder    = "   -----------------------------------\n"
	bottomBorder = "--|-----------------------------------\n" +
		"  | 1   2   3   4   5   6   7   8   9\n"
)

// Format returns the legend followed by the board.
func Format(s engine.State) string {
	return Legend(s) + Board(s)
}

// Legend lists both players with their remaining walls as tally marks.
func Legend(s engine.State) string {
	width := max(len(s.Players[0].Name), len(s.Players[1].Name))

	var b strings.Builder
	b.WriteString("Legend:\n")
	for i, p := range s.Players {
		pad := strings.Repeat(" ", width-len(p.Name))
		fmt.Fprintf(&b, "   %d=%s,%s walls=%s\n", i+1, p.Name, pad, strings.Repeat("|", max(p.Walls, 0)))
	}
	return b.String()
}

// Board draws the 9x9 grid, row 9 on top. Pawns are 1 and 2, walls are
// drawn with | and - between cells.
func Board(s engine.State) string {
	var b strings.Builder
	b.WriteString(topBorder)

	for y := engine.BoardSize; y >= 1; y-- {
		fmt.Fprintf(&b, "%d |", y)
		for x := 1; x <= engine.BoardSize; x++ {
			b.WriteString(cellMark(s, engine.Cell{X: x, Y: y}))
			if x == engine.BoardSize {
				break
			}
			if s.Walls.Blocked(engine.Cell{X: x, Y: y}, engine.Cell{X: x + 1, Y: y}) {
				b.WriteByte('|')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString("|\n")

		if y == 1 {
			break
		}
		b.WriteString("  |")
		for x := 1; x <= engine.BoardSize; x++ {
			if s.Walls.Blocked(engine.Cell{X: x, Y: y - 1}, engine.Cell{X: x, Y: y}) {
				b.WriteString("---")
			} else {
				b.WriteString("   ")
			}
			if x == engine.BoardSize {
				break
			}
			junction := engine.Cell{X: x, Y: y - 1}
			switch {
			case s.Walls.Has(engine.Horizontal, junction):
				b.WriteByte('-')
			case s.Walls.Has(engine.Vertical, junction):
				b.WriteByte('|')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteString("|\n")
	}

	b.WriteString(bottomBorder)
	return b.String()
}

func cellMark(s engine.State, c engine.Cell) string {
	switch c {
	case s.Players[0].Position:
		return " 1 "
	case s.Players[1].Position:
		return " 2 "
	}
	return " . "
}

// Renderer prints the board to a writer after every move.
type Renderer struct {
	W io.Writer
}

// Render writes the formatted state.
func (r Renderer) Render(s engine.State) error {
	_, err := io.WriteString(r.W, Format(s))
	return err
}
