// Command validate checks the opening files of a directory (./openings by
// default). For each file it checks:
//   - JSON structure and the state wire format
//   - Wall anchors in range, without overlaps or crossings
//   - Pawn positions, wall stock and the number of walls on the board
//   - That both players can still reach their goal row
//
// With --fix, valid openings are rewritten in canonical form.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/quoridor/game/config"
	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/service"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Notes contains informational messages; otherwise
// Errors lists what was wrong.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

// validateOpening loads and validates a single opening file.
func validateOpening(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}
	fail := func(format string, args ...any) ValidationResult {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
		return result
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fail("Failed to read file: %v", err)
	}

	var opening service.Opening
	if err := json.Unmarshal(data, &opening); err != nil {
		return fail("Invalid JSON: %v", err)
	}
	if opening.Name == "" {
		result.Notes = append(result.Notes, "no name, the file name will be used")
	}
	if err := config.ValidateOpening(&opening); err != nil {
		return fail("%v", err)
	}

	e, err := engine.New(opening.StateFor("joueur1", "joueur2"))
	if err != nil {
		return fail("%v", err)
	}
	s := e.Snapshot()
	result.Notes = append(result.Notes, fmt.Sprintf("turn %d, %d walls on the board", s.Turn, s.Walls.Count()))
	for i, p := range s.Players {
		path, err := e.ShortestPath(p.Name)
		if err != nil {
			return fail("%v", err)
		}
		result.Notes = append(result.Notes, fmt.Sprintf("player %d at %s, %d walls left, %d moves from row %d",
			i+1, p.Position, p.Walls, len(path)-2, engine.GoalRow(i)))
	}
	if _, over := e.Winner(); over {
		result.Notes = append(result.Notes, "the game is already over in this position")
	}

	return result
}

var errInvalidOpenings = errors.New("some openings have errors")

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check the opening files of a directory",
		ArgsUsage: "[DIR]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fix",
				Usage: "rewrite valid openings in canonical form, naming unnamed ones after their file",
			},
		},
		Action: validateDir,
	}
}

// validateDir validates every *.json file of the directory named by the
// first argument and fails if any is invalid.
func validateDir(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	dir := cmd.Args().First()
	if dir == "" {
		dir = "openings"
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("finding opening files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no opening files in %s", dir)
	}

	var m *config.Manager
	if cmd.Bool("fix") {
		if m, err = config.NewManager(dir); err != nil {
			return err
		}
	}

	allValid := true
	for _, file := range files {
		result := validateOpening(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)
		if !result.Valid {
			fmt.Fprintln(w, "INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  "+err)
			}
			continue
		}

		fmt.Fprintln(w, "VALID")
		for _, note := range result.Notes {
			fmt.Fprintln(w, "  "+note)
		}
		if m != nil {
			if err := fixOpening(m, result.File); err != nil {
				return err
			}
			fmt.Fprintln(w, "  rewritten")
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		return errInvalidOpenings
	}
	fmt.Fprintln(w, "All openings are valid")
	return nil
}

// fixOpening writes a valid opening back through the manager.
func fixOpening(m *config.Manager, file string) error {
	name := strings.TrimSuffix(file, ".json")
	o, err := m.LoadOpening(name)
	if err != nil {
		return err
	}
	return m.SaveOpening(name, o)
}
