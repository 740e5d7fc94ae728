package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cannon/internal/control"
	"github.com/san-kum/cannon/internal/dynamo"
	"github.com/san-kum/cannon/internal/physics"
	"github.com/san-kum/cannon/internal/sim"
)

const (
	width           = 80
	height          = 24
	panelWidth      = 46
	historyCapacity = 600
	minZoom         = 0.25
	maxZoom         = 8.0
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model steps the world once per frame and draws it.
type Model struct {
	world    *physics.World
	launcher *control.Launcher
	schedule *sim.Schedule
	name     string

	canvas   *Canvas
	backdrop *Canvas
	zoom     float64
	paused   bool
	theme    int
	styles   styles
	altitude []float64
	active   physics.Handle
	err      error
}

// NewModel builds a live view. Scheduled launches fire as the world clock
// reaches them; launches at t=0 fire on the first frame.
func NewModel(w *physics.World, l *control.Launcher, name string, launchAt []float64) Model {
	return Model{
		world:    w,
		launcher: l,
		schedule: sim.NewSchedule(launchAt),
		name:     name,
		canvas:   NewCanvas(width, height),
		backdrop: NewCanvas(width, height),
		zoom:     1,
		styles:   newStyles(Themes[0]),
		altitude: make([]float64, 0, historyCapacity),
		active:   -1,
	}
}

// WithTheme switches to the named theme; unknown names select the default.
func (m Model) WithTheme(name string) Model {
	m.theme = themeIndex(name)
	m.styles = newStyles(GetTheme(name))
	return m
}

// Err returns the fault that ended the session, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		w := max(msg.Width-panelWidth-6, 20)
		h := max(msg.Height-3, 8)
		m.canvas = NewCanvas(w, h)
		m.backdrop = NewCanvas(w, h)
		return m, nil
	case TickMsg:
		if !m.paused {
			if _, err := m.schedule.Launch(m.world, m.launcher); err != nil {
				m.err = err
				return m, tea.Quit
			}
			if err := m.world.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.record()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(key string) (Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "p":
		m.paused = !m.paused
		return m, nil
	case "+", "=":
		m.zoom = math.Min(m.zoom*1.25, maxZoom)
		return m, nil
	case "-", "_":
		m.zoom = math.Max(m.zoom/1.25, minZoom)
		return m, nil
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.styles = newStyles(Themes[m.theme])
		return m, nil
	}

	if _, _, err := m.launcher.Apply(control.ActionFor(key), m.world); err != nil {
		m.err = err
		return m, tea.Quit
	}
	return m, nil
}

// record keeps the altitude history of the active ball, restarting it on
// every launch.
func (m *Model) record() {
	h, ok := m.world.Active()
	if !ok {
		return
	}
	if h != m.active {
		m.active = h
		m.altitude = m.altitude[:0]
	}
	b, err := m.world.Body(h)
	if err != nil {
		return
	}
	m.altitude = append(m.altitude, b.Altitude(m.world.Attractor().Radius))
	if len(m.altitude) > historyCapacity {
		m.altitude = m.altitude[1:]
	}
}

// project maps world coordinates to canvas dots with the planet centered
// and y pointing up.
func (m *Model) project(p dynamo.Vec2) (int, int) {
	cw, ch := m.canvas.Dots()
	s := m.scale()
	return cw/2 + int(math.Round(p.X*s)), ch/2 - int(math.Round(p.Y*s))
}

func (m *Model) scale() float64 {
	cw, ch := m.canvas.Dots()
	extent := m.launcher.Muzzle().Len() * 1.3
	return m.zoom * float64(min(cw, ch)) / (2 * extent)
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.backdrop.Clear()
	s := m.scale()

	planet := m.world.Attractor()
	cx, cy := m.project(planet.Pos)
	m.backdrop.DrawCircle(cx, cy, int(math.Round(planet.Radius*s)))

	mx, my := m.project(m.launcher.Muzzle())
	m.canvas.DrawLine(mx-2, my, mx+2, my)

	for _, p := range m.world.TracePoints() {
		m.canvas.Set(m.project(p))
	}

	for _, h := range m.world.Projectiles() {
		b, err := m.world.Body(h)
		if err != nil {
			continue
		}
		x, y := m.project(b.Pos)
		m.canvas.FillDisc(x, y, max(int(math.Round(b.Radius*s)), 1))
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := m.styles.canvas.Render(layered(m.canvas, m.backdrop, m.styles.ball, m.styles.planet))

	var s strings.Builder
	st := m.styles
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	s.WriteString(st.header.Render(strings.ToUpper(m.name)) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(st.err.Render("FAULT: "+m.err.Error()) + "\n\n")
	case m.paused:
		s.WriteString(st.warn.Render("PAUSED") + "\n\n")
	default:
		s.WriteString("RUNNING\n\n")
	}

	row("Time", fmt.Sprintf("%.2fs", m.world.Time()))
	row("Launched", fmt.Sprintf("%d", m.launcher.Fired()))
	row("Collisions", fmt.Sprintf("%d", m.world.Collisions()))

	speed := m.launcher.Speed()
	row("Next speed", fmt.Sprintf("%.1f", speed))
	if esc := m.escapeSpeed(); esc > 0 {
		row("", ProgressBar(speed/esc, 20)+fmt.Sprintf(" %3.0f%%", 100*speed/esc))
	}

	s.WriteString("\nACTIVE BALL\n")
	if h, ok := m.world.Active(); ok {
		b, _ := m.world.Body(h)
		row("Handle", fmt.Sprintf("%d", h))
		row("Altitude", fmt.Sprintf("%.1f", b.Altitude(m.world.Attractor().Radius)))
		row("Speed", fmt.Sprintf("%.2f", b.Vel.Len()))
		row("Phase", b.Phase.String())
		row("Bounces", fmt.Sprintf("%d", b.Bounces))
	} else {
		s.WriteString(st.label.Render("  (none)") + "\n")
	}

	if len(m.altitude) > 1 {
		chart := asciigraph.Plot(m.altitude, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption("Altitude"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString(st.help.Render("─────────────────────\n↑↓:Speed SP:Fire P:Pause\n+/-:Zoom T:Theme Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
}

// escapeSpeed is the escape velocity at the muzzle.
func (m Model) escapeSpeed() float64 {
	r := m.launcher.Muzzle().Len()
	if r <= 0 {
		return 0
	}
	return math.Sqrt(2 * m.world.Params().G * float64(m.world.Attractor().Mass) / r)
}

// layered renders scene over backdrop. A cell takes the scene style when the
// scene lit any of its dots, otherwise the backdrop style; consecutive cells
// of one layer share a single styled run.
func layered(scene, backdrop *Canvas, fg, bg lipgloss.Style) string {
	var b strings.Builder
	run := make([]rune, 0, scene.Width)
	for row := range scene.Grid {
		run = run[:0]
		under := false
		flush := func() {
			if len(run) == 0 {
				return
			}
			style := fg
			if under {
				style = bg
			}
			b.WriteString(style.Render(string(run)))
			run = run[:0]
		}

		for col, r := range scene.Grid[row] {
			var back rune = blank
			if row < backdrop.Height && col < backdrop.Width {
				back = backdrop.Grid[row][col]
			}
			u := r == blank && back != blank
			if u != under {
				flush()
				under = u
			}
			run = append(run, r|back)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}
