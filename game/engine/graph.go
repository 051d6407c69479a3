package engine

import (
	"cmp"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

var directions = [4]Cell{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0}}

// Graph is the directed movement graph: one node per board cell plus the two
// goal nodes, one edge per legal single step. It is rebuilt from the state
// for every query and never updated in place.
type Graph struct {
	succ map[Cell]mapset.Set[Cell]
}

// BuildGraph derives the movement graph from pawn positions and walls.
//
// Orthogonal steps are open unless a wall spans the boundary. A step onto a
// pawn is replaced by a straight jump over it when the cell beyond is open,
// and by diagonal jumps to the pawn's open side cells otherwise. Every cell of
// row 9 leads to GoalRow9 and every cell of row 1 to GoalRow1.
func BuildGraph(positions [2]Cell, walls Walls) *Graph {
	g := &Graph{succ: make(map[Cell]mapset.Set[Cell], BoardSize*BoardSize+2)}
	g.succ[GoalRow9] = mapset.New[Cell]()
	g.succ[GoalRow1] = mapset.New[Cell]()

	open := func(a, b Cell) bool {
		return a.OnBoard() && b.OnBoard() && !walls.Blocked(a, b)
	}
	occupied := func(c Cell) bool {
		return c == positions[0] || c == positions[1]
	}

	for x := 1; x <= BoardSize; x++ {
		for y := 1; y <= BoardSize; y++ {
			c := Cell{X: x, Y: y}
			s := mapset.New[Cell]()
			for _, d := range directions {
				if n := c.Add(d.X, d.Y); open(c, n) {
					s.Put(n)
				}
			}
			g.succ[c] = s
		}
	}

	for _, pawn := range positions {
		if !pawn.OnBoard() {
			continue
		}
		for _, d := range directions {
			from := pawn.Add(-d.X, -d.Y)
			if !open(from, pawn) {
				continue
			}
			g.succ[from].Remove(pawn)

			beyond := pawn.Add(d.X, d.Y)
			if open(pawn, beyond) && !occupied(beyond) {
				g.succ[from].Put(beyond)
				continue
			}
			for _, side := range [2]Cell{{X: d.Y, Y: d.X}, {X: -d.Y, Y: -d.X}} {
				if c := pawn.Add(side.X, side.Y); open(pawn, c) && !occupied(c) {
					g.succ[from].Put(c)
				}
			}
		}
	}

	for x := 1; x <= BoardSize; x++ {
		g.succ[Cell{X: x, Y: BoardSize}].Put(GoalRow9)
		g.succ[Cell{X: x, Y: 1}].Put(GoalRow1)
	}
	return g
}

// Successors returns the cells reachable from c in one step, goal nodes
// first and then by column and row.
func (g *Graph) Successors(c Cell) []Cell {
	s, ok := g.succ[c]
	if !ok {
		return nil
	}
	out := make([]Cell, 0, s.Size())
	s.Each(func(n Cell) {
		out = append(out, n)
	})
	slices.SortFunc(out, compareCells)
	return out
}

func compareCells(a, b Cell) int {
	ag, bg := !a.OnBoard(), !b.OnBoard()
	switch {
	case ag && !bg:
		return -1
	case bg && !ag:
		return 1
	}
	return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
}

// HasEdge reports whether to is a successor of from.
func (g *Graph) HasEdge(from, to Cell) bool {
	s, ok := g.succ[from]
	return ok && s.Has(to)
}

// ShortestPath returns a shortest path from one node to another, both ends
// included, or nil when to is unreachable.
func (g *Graph) ShortestPath(from, to Cell) []Cell {
	if _, ok := g.succ[from]; !ok {
		return nil
	}
	visited := mapset.New[Cell]()
	visited.Put(from)
	parent := make(map[Cell]Cell)
	queue := []Cell{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == to {
			path := []Cell{to}
			for c := to; c != from; {
				c = parent[c]
				path = append(path, c)
			}
			slices.Reverse(path)
			return path
		}

		for _, n := range g.Successors(current) {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			parent[n] = current
			queue = append(queue, n)
		}
	}
	return nil
}

// HasPath reports whether to is reachable from from.
func (g *Graph) HasPath(from, to Cell) bool {
	return g.ShortestPath(from, to) != nil
}
