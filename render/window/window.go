// Package window shows the game in a desktop window using ebiten.
//
// The window owns the device handle; the rest of the program only hands it
// snapshots through Render, from any goroutine. Run must be called from the
// main goroutine and blocks until Close is called or the window is closed.
package window

import (
	"errors"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/render/graphic"
)

var background = color.RGBA{R: 0xf5, G: 0xf0, B: 0xe1, A: 0xff}

// Window is an ebiten.Game drawing the latest frame.
type Window struct {
	mu     sync.Mutex
	frame  graphic.Frame
	closed bool
}

// New creates a window showing an empty board.
func New() *Window {
	return &Window{frame: graphic.Frame{Width: graphic.Width, Height: graphic.Height}}
}

// Render replaces the displayed frame with the layout of s.
func (w *Window) Render(s engine.State) error {
	f := graphic.Layout(s)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frame = f
	return nil
}

// Close makes Run return at the next update.
func (w *Window) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run(title string) error {
	ebiten.SetWindowSize(graphic.Width, graphic.Height)
	ebiten.SetWindowTitle(title)
	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (w *Window) Update() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ebiten.Termination
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	f := w.frame
	w.mu.Unlock()

	screen.Fill(background)
	for _, l := range f.Lines {
		vector.StrokeLine(screen, float32(l.From.X), float32(l.From.Y), float32(l.To.X), float32(l.To.Y), float32(l.Width), l.Color, true)
	}
	for _, d := range f.Dots {
		vector.DrawFilledCircle(screen, float32(d.Center.X), float32(d.Center.Y), float32(d.Radius), d.Color, true)
	}
	for _, label := range f.Labels {
		ebitenutil.DebugPrintAt(screen, label.Text, int(label.At.X)-3, int(label.At.Y)-8)
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return graphic.Width, graphic.Height
}
