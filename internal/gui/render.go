package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/cannon/internal/dynamo"
)

// toScreen flips y so the world's up is the window's up.
func toScreen(v dynamo.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(-v.Y))
}

func (a *App) drawScene() {
	planet := a.World.Attractor()
	rl.DrawCircleV(toScreen(planet.Pos), float32(planet.Radius), ColPlanet)

	muzzle := toScreen(a.Launcher.Muzzle())
	rl.DrawRectangleV(rl.NewVector2(muzzle.X-12, muzzle.Y-4), rl.NewVector2(24, 8), ColAccent)

	trace := a.World.TracePoints()
	for i := 1; i < len(trace); i++ {
		rl.DrawLineV(toScreen(trace[i-1]), toScreen(trace[i]), ColTrace)
	}

	active, _ := a.World.Active()
	for _, h := range a.World.Projectiles() {
		b, err := a.World.Body(h)
		if err != nil {
			continue
		}
		col := ColOld
		if h == active {
			col = ColBall
		}
		rl.DrawCircleV(toScreen(b.Pos), float32(b.Radius), col)
	}
}
