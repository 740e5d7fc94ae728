package viz

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/cannon/internal/control"
	"github.com/san-kum/cannon/internal/dynamo"
	"github.com/san-kum/cannon/internal/physics"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(100, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 lit, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8 lit, got %U", c.Grid[0][1])
	}
	if !lit(c, 3, 3) || lit(c, 1, 1) {
		t.Error("lit disagrees with Set")
	}

	c.Clear()
	if lit(c, 0, 0) {
		t.Error("expected canvas cleared")
	}
}

func lit(c *Canvas, x, y int) bool {
	col, row := x/2, y/4
	if x < 0 || y < 0 || col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func TestLayered(t *testing.T) {
	scene := NewCanvas(3, 1)
	backdrop := NewCanvas(3, 1)
	scene.Set(0, 0)
	backdrop.Set(0, 1)
	backdrop.Set(2, 0)

	plain := lipgloss.NewStyle()
	got := layered(scene, backdrop, plain, plain)
	if want := "\u2803\u2801\u2800\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 10)

	for _, p := range [][2]int{{30, 20}, {10, 20}, {20, 30}, {20, 10}} {
		if !lit(c, p[0], p[1]) {
			t.Errorf("expected (%d, %d) on the circle", p[0], p[1])
		}
	}
	if lit(c, 20, 20) {
		t.Error("expected the center empty")
	}
}

func TestCanvasFillDisc(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillDisc(10, 10, 3)

	if !lit(c, 10, 10) || !lit(c, 12, 10) {
		t.Error("expected interior filled")
	}
	if lit(c, 14, 10) {
		t.Error("expected outside empty")
	}
}

func newModel(t *testing.T) Model {
	t.Helper()
	w, err := physics.NewWorld(physics.DefaultParams(), 1_000_000, 378.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := control.DefaultLaunch()
	cfg.Speed = 30
	return NewModel(w, control.NewLauncher(cfg, 378.4), "test", nil)
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelKeys(t *testing.T) {
	m := newModel(t)

	m = press(m, "up")
	m = press(m, "up")
	m = press(m, "down")
	if got := m.launcher.Speed(); got != 31 {
		t.Errorf("expected speed 31, got %f", got)
	}

	m = press(m, " ")
	if m.launcher.Fired() != 1 {
		t.Errorf("expected one launch, got %d", m.launcher.Fired())
	}
	if h, ok := m.world.Active(); !ok || h != 1 {
		t.Errorf("expected handle 1 active, got %d", h)
	}

	m = press(m, "p")
	if !m.paused {
		t.Error("expected paused")
	}

	zoom := m.zoom
	m = press(m, "+")
	if m.zoom <= zoom {
		t.Errorf("expected zoom in, got %f", m.zoom)
	}
}

func TestModelTick(t *testing.T) {
	m := newModel(t)
	m = press(m, " ")

	for i := 0; i < 5; i++ {
		next, cmd := m.Update(TickMsg{})
		m = next.(Model)
		if cmd == nil {
			t.Fatal("expected another tick")
		}
	}
	if m.world.Tick() != 5 {
		t.Errorf("expected 5 ticks, got %d", m.world.Tick())
	}
	if len(m.altitude) != 5 {
		t.Errorf("expected 5 altitude samples, got %d", len(m.altitude))
	}

	m = press(m, "p")
	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	if m.world.Tick() != 5 {
		t.Error("expected no step while paused")
	}
}

func TestModelFault(t *testing.T) {
	w, err := physics.NewWorld(physics.DefaultParams(), 10, 378.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := w.Spawn(dynamo.Vec2{Y: 378.4 + 8.5}, dynamo.Vec2{Y: -300}, 1, 7.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := NewModel(w, control.NewLauncher(control.DefaultLaunch(), 378.4), "fault", nil)

	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	if !errors.Is(m.Err(), dynamo.ErrIntegrity) {
		t.Errorf("expected integrity fault, got %v", m.Err())
	}
	if !strings.Contains(m.View(), "FAULT") {
		t.Error("expected the fault shown")
	}
}

func TestModelView(t *testing.T) {
	m := newModel(t)
	m = press(m, " ")
	next, _ := m.Update(TickMsg{})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"TEST", "Next speed", "ACTIVE BALL", "Altitude"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestPickerStart(t *testing.T) {
	p := NewPicker(nil)
	if len(p.presets) == 0 {
		t.Fatal("expected presets")
	}

	next, _ := p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p = next.(Picker)
	if p.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", p.cursor)
	}

	next, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = next.(Picker)
	if p.state != stateSim {
		t.Error("expected live session started")
	}
	if cmd == nil {
		t.Error("expected tick command")
	}
	next, _ = p.Update(TickMsg{})
	p = next.(Picker)
	if p.live.launcher.Fired() == 0 {
		t.Error("expected the t=0 launch fired")
	}
}

func TestModelScheduledLaunches(t *testing.T) {
	w, err := physics.NewWorld(physics.DefaultParams(), 1_000_000, 378.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := NewModel(w, control.NewLauncher(control.DefaultLaunch(), 378.4), "volley", []float64{0, 0.5, 1})

	step := func(n int) {
		for i := 0; i < n; i++ {
			next, _ := m.Update(TickMsg{})
			m = next.(Model)
		}
	}

	step(1)
	if got := m.launcher.Fired(); got != 1 {
		t.Fatalf("expected the t=0 launch on the first frame, got %d", got)
	}
	step(30)
	if got := m.launcher.Fired(); got != 2 {
		t.Errorf("expected 2 launches by t=0.5, got %d", got)
	}
	step(30)
	if got := len(m.world.Projectiles()); got != 3 {
		t.Errorf("expected 3 balls by t=1, got %d", got)
	}
}

func TestModelWithTheme(t *testing.T) {
	m := newModel(t).WithTheme("sunset")
	if Themes[m.theme].Name != "sunset" {
		t.Errorf("expected sunset, got %s", Themes[m.theme].Name)
	}
	if m = m.WithTheme("missing"); m.theme != 0 {
		t.Errorf("expected fallback to the first theme, got %d", m.theme)
	}

	m = press(m, "t")
	if m.theme != 1 {
		t.Errorf("expected theme cycling to continue from the selection, got %d", m.theme)
	}
}
