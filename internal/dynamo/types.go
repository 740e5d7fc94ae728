package dynamo

import "math"

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{v.X * factor, v.Y * factor}
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Rotate turns v counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Sample is the kinematic state of one projectile after a tick.
type Sample struct {
	Tick     int     `json:"tick"`
	Time     float64 `json:"time"`
	Handle   int     `json:"handle"`
	Pos      Vec2    `json:"pos"`
	Vel      Vec2    `json:"vel"`
	Acc      Vec2    `json:"acc"`
	Collided bool    `json:"collided"`
}

// Altitude returns the height of the sample above a surface of the given radius.
func (s Sample) Altitude(surface float64) float64 {
	return s.Pos.Len() - surface
}
