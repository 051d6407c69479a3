package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wricardo/quoridor/game/engine"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// ErrMalformedPosition is reported when a position is not two integers.
var ErrMalformedPosition = errors.New("enter two integers separated by a comma")

// Prompter collects moves from a human on a line-oriented stream.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a prompter reading answers from r and writing prompts
// and diagnostics to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(r), out: w}
}

// Collect asks for moves until one is accepted by a trial copy of e, and
// returns it. e itself is not modified. The only error is the input running
// out.
func (p *Prompter) Collect(e engine.Engine, name string) (engine.Move, error) {
	for {
		kind, err := p.ask(fmt.Sprintf("%s, enter the move kind (D, MH, MV): ", name))
		if err != nil {
			return engine.Move{}, err
		}
		answer, err := p.ask(fmt.Sprintf("%s, enter the position as x,y: ", name))
		if err != nil {
			return engine.Move{}, err
		}

		target, err := ParseCell(answer)
		if err != nil {
			p.warn("Invalid position: %v.", err)
			continue
		}
		m, err := e.Clone().ApplyMove(name, engine.MoveKind(strings.ToUpper(kind)), target)
		if err != nil {
			p.warn("Invalid move: %v. Please try again.", err)
			continue
		}
		return m, nil
	}
}

// Play collects a move and applies it to e.
func (p *Prompter) Play(e engine.Engine, name string) (engine.Move, error) {
	m, err := p.Collect(e, name)
	if err != nil {
		return engine.Move{}, err
	}
	return e.ApplyMove(name, m.Kind, m.Target)
}

func (p *Prompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, promptStyle.Render(prompt))
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading move: %w", err)
		}
		return "", fmt.Errorf("reading move: %w", io.EOF)
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Prompter) warn(format string, args ...any) {
	fmt.Fprintln(p.out, errorStyle.Render(fmt.Sprintf(format, args...)))
}

// ParseCell parses "x,y" (spaces allowed) into a cell.
func ParseCell(s string) (engine.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return engine.Cell{}, fmt.Errorf("%w: %q", ErrMalformedPosition, s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return engine.Cell{}, fmt.Errorf("%w: %q", ErrMalformedPosition, s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return engine.Cell{}, fmt.Errorf("%w: %q", ErrMalformedPosition, s)
	}
	return engine.Cell{X: x, Y: y}, nil
}
