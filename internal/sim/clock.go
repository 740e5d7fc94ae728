package sim

// Clock converts variable frame times into a whole number of fixed steps.
// Leftover time carries into the next frame.
type Clock struct {
	dt       float64
	maxSteps int
	acc      float64
}

// NewClock returns a clock for step size dt that never asks for more than
// maxSteps per frame, dropping the backlog instead.
func NewClock(dt float64, maxSteps int) *Clock {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &Clock{dt: dt, maxSteps: maxSteps}
}

// Advance adds frame seconds and returns how many steps to run.
func (c *Clock) Advance(frame float64) int {
	if frame > 0 {
		c.acc += frame
	}
	n := 0
	for c.acc >= c.dt && n < c.maxSteps {
		c.acc -= c.dt
		n++
	}
	if n == c.maxSteps && c.acc >= c.dt {
		c.acc = 0
	}
	return n
}

func (c *Clock) Reset() { c.acc = 0 }
