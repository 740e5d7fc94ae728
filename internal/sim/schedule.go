package sim

import (
	"sort"

	"github.com/san-kum/cannon/internal/control"
	"github.com/san-kum/cannon/internal/physics"
)

// Schedule hands out launch times in order. Live views share it with the
// headless runner so a preset fires the same volley everywhere.
type Schedule struct {
	times []float64
	next  int
}

func NewSchedule(at []float64) *Schedule {
	times := make([]float64, len(at))
	copy(times, at)
	sort.Float64s(times)
	return &Schedule{times: times}
}

// Due reports and consumes the next launch at or before t.
func (s *Schedule) Due(t float64) bool {
	const eps = 1e-9
	if s.next >= len(s.times) || s.times[s.next] > t+eps {
		return false
	}
	s.next++
	return true
}

// Remaining is the number of launches not yet handed out.
func (s *Schedule) Remaining() int { return len(s.times) - s.next }

// Launch fires every launch due at the world's current time and returns
// how many balls it spawned.
func (s *Schedule) Launch(w *physics.World, l *control.Launcher) (int, error) {
	n := 0
	for s.Due(w.Time()) {
		if _, err := l.Fire(w); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
