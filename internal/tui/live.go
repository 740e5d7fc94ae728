package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/cannon/internal/physics"
)

const (
	width       = 70
	height      = 24
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws the world as ASCII art while a headless run is in
// progress. It satisfies sim.Observer and redraws at most frameRate times a
// second of wall time.
type LiveRenderer struct {
	out       io.Writer
	name      string
	frameRate int
	lastFrame time.Time
	now       func() time.Time
	canvas    [][]rune
	frames    int
}

func NewLiveRenderer(out io.Writer, name string, frameRate int) *LiveRenderer {
	if frameRate < 1 {
		frameRate = 30
	}
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       out,
		name:      name,
		frameRate: frameRate,
		now:       time.Now,
		canvas:    canvas,
	}
}

func (r *LiveRenderer) OnStep(w *physics.World, t float64) {
	now := r.now()
	if now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now
	r.Draw(w)
}

// Draw renders one frame unconditionally.
func (r *LiveRenderer) Draw(w *physics.World) {
	r.clear()
	r.drawWorld(w)
	r.render(w)
	r.frames++
}

// Frames counts rendered frames.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// project maps world coordinates to cells. Cells are about twice as tall as
// wide, so x is stretched to keep circles round.
func (r *LiveRenderer) project(w *physics.World, x, y float64) (int, int) {
	extent := 1.3 * r.extent(w)
	scale := float64(height/2) / extent
	return width/2 + int(math.Round(2*x*scale)), height/2 - int(math.Round(y*scale))
}

func (r *LiveRenderer) extent(w *physics.World) float64 {
	e := w.Attractor().Radius
	for _, h := range w.Projectiles() {
		if b, err := w.Body(h); err == nil {
			e = math.Max(e, b.Pos.Len())
		}
	}
	return e
}

func (r *LiveRenderer) drawWorld(w *physics.World) {
	planet := w.Attractor()
	for i := 0; i < 64; i++ {
		a := 2 * math.Pi * float64(i) / 64
		x, y := r.project(w, planet.Radius*math.Cos(a), planet.Radius*math.Sin(a))
		r.set(x, y, '#')
	}

	for _, p := range w.TracePoints() {
		x, y := r.project(w, p.X, p.Y)
		r.set(x, y, '.')
	}

	active, _ := w.Active()
	for _, h := range w.Projectiles() {
		b, err := w.Body(h)
		if err != nil {
			continue
		}
		x, y := r.project(w, b.Pos.X, b.Pos.Y)
		if h == active {
			r.set(x, y, 'O')
		} else {
			r.set(x, y, 'o')
		}
	}
}

func (r *LiveRenderer) render(w *physics.World) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs  hits=%d\n", r.name, w.Time(), w.Collisions()))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	if h, ok := w.Active(); ok {
		body, _ := w.Body(h)
		b.WriteString(fmt.Sprintf("  ball %d  alt=%.1f  v=%.2f  %s\n",
			h, body.Altitude(w.Attractor().Radius), body.Vel.Len(), body.Phase))
	}

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
