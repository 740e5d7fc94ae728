package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/cannon/internal/control"
	"github.com/san-kum/cannon/internal/physics"
	"github.com/san-kum/cannon/internal/sim"
)

const (
	screenW          = 1280
	screenH          = 720
	maxStepsPerFrame = 8
	telemetrySize    = 300
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColPlanet  = rl.NewColor(70, 130, 180, 255)
	ColBall    = rl.NewColor(0, 255, 136, 255)
	ColOld     = rl.NewColor(120, 120, 120, 255)
	ColTrace   = rl.NewColor(255, 255, 255, 120)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type App struct {
	World     *physics.World
	Launcher  *control.Launcher
	Name      string
	Camera    rl.Camera2D
	Running   bool
	Telemetry []float64 // altitude of the active ball
	Err       error

	clock    *sim.Clock
	schedule *sim.Schedule
	active   physics.Handle
	quit     bool
}

func initWindow() {
	rl.InitWindow(screenW, screenH, "cannon")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// NewApp fits the camera so the launch point is on screen. launchAt is the
// volley fired as the world clock reaches each time.
func NewApp(w *physics.World, l *control.Launcher, name string, launchAt []float64) *App {
	extent := l.Muzzle().Len() * 1.3
	zoom := float32(math.Min(screenW, screenH) / (2 * extent))

	return &App{
		World:    w,
		Launcher: l,
		Name:     name,
		Camera: rl.Camera2D{
			Offset: rl.NewVector2(screenW/2, screenH/2),
			Target: rl.NewVector2(0, 0),
			Zoom:   zoom,
		},
		Running:   true,
		Telemetry: make([]float64, 0, telemetrySize),
		clock:     sim.NewClock(w.Params().Dt, maxStepsPerFrame),
		schedule:  sim.NewSchedule(launchAt),
		active:    -1,
	}
}

// Run opens a window and blocks until it is closed or the world faults.
func Run(w *physics.World, l *control.Launcher, name string, launchAt []float64) error {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(w, l, name, launchAt)
	app.RunLoop()
	return app.Err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit && a.Err == nil {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.Running = !a.Running
		a.clock.Reset()
	}

	// speed keys are level events, fire is an edge
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyRight) {
		a.Launcher.Faster()
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyLeft) {
		a.Launcher.Slower()
	}
	if rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyEnter) {
		if _, err := a.Launcher.Fire(a.World); err != nil {
			a.Err = err
			return
		}
	}

	a.updateCamera()

	if !a.Running {
		return
	}
	for n := a.clock.Advance(float64(rl.GetFrameTime())); n > 0; n-- {
		if _, err := a.schedule.Launch(a.World, a.Launcher); err != nil {
			a.Err = err
			return
		}
		if err := a.World.Step(); err != nil {
			a.Err = err
			return
		}
	}
	a.record()
}

func (a *App) updateCamera() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Camera.Zoom *= float32(math.Pow(1.1, float64(wheel)))
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		a.Camera.Target.X -= d.X / a.Camera.Zoom
		a.Camera.Target.Y -= d.Y / a.Camera.Zoom
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.Camera.Target = rl.NewVector2(0, 0)
	}
}

func (a *App) record() {
	h, ok := a.World.Active()
	if !ok {
		return
	}
	if h != a.active {
		a.active = h
		a.Telemetry = a.Telemetry[:0]
	}
	b, err := a.World.Body(h)
	if err != nil {
		return
	}
	a.Telemetry = append(a.Telemetry, b.Altitude(a.World.Attractor().Radius))
	if len(a.Telemetry) > telemetrySize {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode2D(a.Camera)
	a.drawScene()
	rl.EndMode2D()

	a.DrawHUD()
	a.DrawTelemetry()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawText("cannon", 30, 30, 24, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %s", a.Name), 130, 34, 16, ColText)

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, screenW-130, 30, 16, col)

	y := int32(80)
	line := func(format string, args ...any) {
		rl.DrawText(fmt.Sprintf(format, args...), 30, y, 16, ColAccent)
		y += 22
	}
	line("t        %.2fs", a.World.Time())
	line("speed    %.1f", a.Launcher.Speed())
	line("launched %d", a.Launcher.Fired())
	line("hits     %d", a.World.Collisions())
	if h, ok := a.World.Active(); ok {
		b, _ := a.World.Body(h)
		line("altitude %.1f", b.Altitude(a.World.Attractor().Radius))
		line("velocity %.2f", b.Vel.Len())
		line("phase    %s", b.Phase)
	}

	rl.DrawText("[ARROWS] SPEED  [SPACE] FIRE  [P] PAUSE  [WHEEL] ZOOM  [RMB] PAN  [C] CENTER  [Q] QUIT", 380, screenH-40, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, screenH-40, 14, ColTextDim)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := float32(30), float32(screenH-140)
	width, height := float32(400), float32(60)

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := rectX + float32(i)/float32(telemetrySize)*width
		norm := (val - minVal) / (maxVal - minVal)
		points[i] = rl.NewVector2(px, rectY+height-float32(norm)*height)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("alt %.1f", a.Telemetry[len(a.Telemetry)-1]), int32(rectX+width+10), int32(rectY+height-10), 14, ColText)
}
