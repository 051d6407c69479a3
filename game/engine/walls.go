package engine

import "fmt"

// Orientation of a wall.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Kind returns the move kind that places a wall of this orientation.
func (o Orientation) Kind() MoveKind {
	if o == Vertical {
		return KindWallVertical
	}
	return KindWallHorizontal
}

// Wall is a two-cell blocking piece.
//
// A horizontal wall anchored at (x,y) separates rows y and y+1 in columns x
// and x+1. A vertical wall anchored at (x,y) separates columns x and x+1 in
// rows y and y+1.
type Wall struct {
	Anchor      Cell
	Orientation Orientation
}

func (w Wall) String() string {
	return fmt.Sprintf("%s wall at %s", w.Orientation, w.Anchor)
}

// ValidAnchor reports whether a wall anchored at c fits on the board.
func ValidAnchor(c Cell) bool {
	return c.X >= 1 && c.X < BoardSize && c.Y >= 1 && c.Y < BoardSize
}

// Walls is the set of placed walls, one grid per orientation indexed by
// anchor. It is a fixed-size value so copying a State copies its walls.
type Walls struct {
	horizontal [BoardSize + 1][BoardSize + 1]bool
	vertical   [BoardSize + 1][BoardSize + 1]bool
}

// NewWalls builds a wall set from anchor lists.
func NewWalls(horizontal, vertical []Cell) (Walls, error) {
	var w Walls
	for _, c := range horizontal {
		if err := w.check(Wall{Anchor: c, Orientation: Horizontal}); err != nil {
			return Walls{}, err
		}
		w.add(Wall{Anchor: c, Orientation: Horizontal})
	}
	for _, c := range vertical {
		if err := w.check(Wall{Anchor: c, Orientation: Vertical}); err != nil {
			return Walls{}, err
		}
		w.add(Wall{Anchor: c, Orientation: Vertical})
	}
	return w, nil
}

func (w *Walls) grid(o Orientation) *[BoardSize + 1][BoardSize + 1]bool {
	if o == Vertical {
		return &w.vertical
	}
	return &w.horizontal
}

// Has reports whether a wall of orientation o is anchored at c.
func (w Walls) Has(o Orientation, c Cell) bool {
	if c.X < 0 || c.X > BoardSize || c.Y < 0 || c.Y > BoardSize {
		return false
	}
	return w.grid(o)[c.X][c.Y]
}

func (w *Walls) add(wall Wall) {
	w.grid(wall.Orientation)[wall.Anchor.X][wall.Anchor.Y] = true
}

// check validates that wall may join the set: its anchor must fit on the
// board, and it may neither share an anchor with a wall of the same
// orientation, overlap half of one, nor cross a perpendicular wall at its
// midpoint.
func (w *Walls) check(wall Wall) error {
	a := wall.Anchor
	if !ValidAnchor(a) {
		return fmt.Errorf("%w: %s does not fit on the board", ErrInvalidPosition, wall)
	}
	if w.Has(wall.Orientation, a) {
		return fmt.Errorf("%w: %s already placed", ErrWallPositionInUse, wall)
	}
	var overlaps bool
	switch wall.Orientation {
	case Horizontal:
		overlaps = w.Has(Horizontal, a.Add(-1, 0)) || w.Has(Horizontal, a.Add(1, 0)) || w.Has(Vertical, a)
	case Vertical:
		overlaps = w.Has(Vertical, a.Add(0, -1)) || w.Has(Vertical, a.Add(0, 1)) || w.Has(Horizontal, a)
	}
	if overlaps {
		return fmt.Errorf("%w: %s overlaps an existing wall", ErrWallPositionInUse, wall)
	}
	return nil
}

// Blocked reports whether a wall separates the orthogonally adjacent cells
// a and b.
func (w Walls) Blocked(a, b Cell) bool {
	switch {
	case a.X == b.X && (a.Y-b.Y == 1 || b.Y-a.Y == 1):
		low := min(a.Y, b.Y)
		return w.Has(Horizontal, Cell{X: a.X, Y: low}) || w.Has(Horizontal, Cell{X: a.X - 1, Y: low})
	case a.Y == b.Y && (a.X-b.X == 1 || b.X-a.X == 1):
		left := min(a.X, b.X)
		return w.Has(Vertical, Cell{X: left, Y: a.Y}) || w.Has(Vertical, Cell{X: left, Y: a.Y - 1})
	}
	return false
}

// List returns the anchors of one orientation ordered by row then column.
func (w Walls) List(o Orientation) []Cell {
	g := w.grid(o)
	out := []Cell{}
	for y := 1; y <= BoardSize; y++ {
		for x := 1; x <= BoardSize; x++ {
			if g[x][y] {
				out = append(out, Cell{X: x, Y: y})
			}
		}
	}
	return out
}

// Count returns the total number of placed walls.
func (w Walls) Count() int {
	return len(w.List(Horizontal)) + len(w.List(Vertical))
}
