// Package graphic turns a game state into drawing commands. It holds no
// state and draws nothing itself: a window or any other device replays the
// Frame it returns.
package graphic

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/wricardo/quoridor/game/engine"
)

const (
	// CellSize is the side of one board cell in pixels.
	CellSize = 50
	// Margin surrounds the board and holds the coordinate labels.
	Margin = 40
	// LegendHeight is the space above the board reserved for the legend.
	LegendHeight = 50

	boardSide = engine.BoardSize * CellSize

	// Width and Height are the frame dimensions.
	Width  = 2*Margin + boardSide
	Height = LegendHeight + 2*Margin + boardSide
)

var (
	GridColor  = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	WallColor  = color.RGBA{R: 0x8b, G: 0x45, B: 0x13, A: 0xff}
	PawnColors = [2]color.RGBA{
		{R: 0x1e, G: 0x64, B: 0xc8, A: 0xff},
		{R: 0xc8, G: 0x28, B: 0x28, A: 0xff},
	}
)

// Point is a position in frame pixels, origin top-left.
type Point struct {
	X, Y float64
}

type Line struct {
	From, To Point
	Width    float64
	Color    color.RGBA
}

type Dot struct {
	Center Point
	Radius float64
	Color  color.RGBA
}

type Label struct {
	At   Point
	Text string
}

// Frame is everything needed to draw one state.
type Frame struct {
	Width, Height int
	Lines         []Line
	Dots          []Dot
	Labels        []Label
}

// Layout computes the frame for a state.
func Layout(s engine.State) Frame {
	f := Frame{Width: Width, Height: Height}

	for i, p := range s.Players {
		f.Labels = append(f.Labels, Label{
			At:   Point{X: Margin, Y: float64(10 + 18*i)},
			Text: fmt.Sprintf("%d=%s, walls=%s", i+1, p.Name, strings.Repeat("|", max(p.Walls, 0))),
		})
	}

	for k := 0; k <= engine.BoardSize; k++ {
		offset := float64(k * CellSize)
		f.Lines = append(f.Lines,
			Line{From: Point{X: left + offset, Y: top}, To: Point{X: left + offset, Y: top + boardSide}, Width: 1, Color: GridColor},
			Line{From: Point{X: left, Y: top + offset}, To: Point{X: left + boardSide, Y: top + offset}, Width: 1, Color: GridColor},
		)
	}
	for k := 1; k <= engine.BoardSize; k++ {
		c := CellCenter(engine.Cell{X: k, Y: k})
		f.Labels = append(f.Labels,
			Label{At: Point{X: c.X, Y: top + boardSide + Margin/2}, Text: fmt.Sprint(k)},
			Label{At: Point{X: Margin / 2, Y: c.Y}, Text: fmt.Sprint(k)},
		)
	}

	for _, a := range s.Walls.List(engine.Horizontal) {
		y := top + float64((engine.BoardSize-a.Y)*CellSize)
		x := left + float64((a.X-1)*CellSize)
		f.Lines = append(f.Lines, Line{From: Point{X: x, Y: y}, To: Point{X: x + 2*CellSize, Y: y}, Width: 6, Color: WallColor})
	}
	for _, a := range s.Walls.List(engine.Vertical) {
		x := left + float64(a.X*CellSize)
		y := top + float64((engine.BoardSize-a.Y-1)*CellSize)
		f.Lines = append(f.Lines, Line{From: Point{X: x, Y: y}, To: Point{X: x, Y: y + 2*CellSize}, Width: 6, Color: WallColor})
	}

	for i, p := range s.Players {
		c := CellCenter(p.Position)
		f.Dots = append(f.Dots, Dot{Center: c, Radius: CellSize / 3, Color: PawnColors[i]})
		f.Labels = append(f.Labels, Label{At: c, Text: fmt.Sprint(i + 1)})
	}
	return f
}

const (
	left = float64(Margin)
	top  = float64(LegendHeight + Margin)
)

// CellCenter returns the pixel center of a board cell.
func CellCenter(c engine.Cell) Point {
	return Point{
		X: left + float64((c.X-1)*CellSize) + CellSize/2,
		Y: top + float64((engine.BoardSize-c.Y)*CellSize) + CellSize/2,
	}
}
