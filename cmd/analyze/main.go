// Command analyze prints quick, human-readable heuristics about the openings
// in the project's openings directory: the board, how far each player is from
// its goal row, where it would step next and which pawn moves are open.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wricardo/quoridor/game/config"
	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/service"
	"github.com/wricardo/quoridor/render/text"
)

// PlayerAnalysis summarizes one side of a position.
type PlayerAnalysis struct {
	Name       string
	Position   engine.Cell
	WallsLeft  int
	Distance   int
	NextStep   engine.Cell
	LegalMoves []engine.Cell
}

// Analysis summarizes a position.
type Analysis struct {
	Turn        int
	WallsPlaced int
	Winner      string
	Players     [2]PlayerAnalysis
	Leader      string
}

func main() {
	dir := "openings"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := run(os.Stdout, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, dir string) error {
	m, err := config.NewManager(dir)
	if err != nil {
		return err
	}
	openings, err := m.ListOpenings()
	if err != nil {
		return err
	}
	if len(openings) == 0 {
		return fmt.Errorf("no valid openings in %s", dir)
	}

	for _, info := range openings {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.Filename)
		o, err := m.LoadOpening(info.OpeningID)
		if err != nil {
			fmt.Fprintf(w, "Error loading opening: %v\n", err)
			continue
		}
		a, err := analyzeOpening(o)
		if err != nil {
			fmt.Fprintf(w, "Error analyzing opening: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "Name: %s\n", o.Name)
		if o.Description != "" {
			fmt.Fprintf(w, "Description: %s\n", o.Description)
		}
		fmt.Fprintln(w, text.Format(o.StateFor("joueur1", "joueur2")))
		printAnalysis(w, a)
	}
	return nil
}

// analyzeOpening plays nothing; it only measures the position.
func analyzeOpening(o *service.Opening) (Analysis, error) {
	e, err := engine.New(o.StateFor("joueur1", "joueur2"))
	if err != nil {
		return Analysis{}, err
	}
	s := e.Snapshot()
	a := Analysis{Turn: s.Turn, WallsPlaced: s.Walls.Count()}
	a.Winner, _ = e.Winner()

	for i, p := range s.Players {
		path, err := e.ShortestPath(p.Name)
		if err != nil {
			return Analysis{}, err
		}
		moves, err := e.LegalMoves(p.Name)
		if err != nil {
			return Analysis{}, err
		}
		pa := PlayerAnalysis{
			Name:       p.Name,
			Position:   p.Position,
			WallsLeft:  p.Walls,
			Distance:   len(path) - 2,
			LegalMoves: moves,
		}
		if len(path) > 2 {
			pa.NextStep = path[1]
		}
		a.Players[i] = pa
	}

	// Player 1 moves first, so a tie favors it.
	switch d0, d1 := a.Players[0].Distance, a.Players[1].Distance; {
	case d0 <= d1:
		a.Leader = a.Players[0].Name
	default:
		a.Leader = a.Players[1].Name
	}
	return a, nil
}

func printAnalysis(w io.Writer, a Analysis) {
	fmt.Fprintf(w, "Turn: %d, walls placed: %d\n", a.Turn, a.WallsPlaced)
	if a.Winner != "" {
		fmt.Fprintf(w, "Already won by %s\n", a.Winner)
		return
	}
	for i, p := range a.Players {
		moves := make([]string, len(p.LegalMoves))
		for j, c := range p.LegalMoves {
			moves[j] = c.String()
		}
		fmt.Fprintf(w, "Player %d at %s: %d walls, %d moves to row %d, next %s\n",
			i+1, p.Position, p.WallsLeft, p.Distance, engine.GoalRow(i), p.NextStep)
		fmt.Fprintf(w, "  Legal moves: %s\n", strings.Join(moves, " "))
	}
	fmt.Fprintf(w, "Race leader: %s\n", a.Leader)
}
