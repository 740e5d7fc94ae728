package analysis

import (
	"math"

	"github.com/san-kum/cannon/internal/dynamo"
)

// Summary describes one projectile's recorded flight.
type Summary struct {
	Handle      int
	Samples     int
	Duration    float64
	MinAltitude float64
	MaxAltitude float64
	Bounces     int
	Energy      float64 // mean specific energy
	Period      float64 // 0 when no period was found
}

// Altitudes extracts the altitude series of handle above planetRadius.
func Altitudes(samples []dynamo.Sample, handle int, planetRadius float64) []float64 {
	out := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s.Handle == handle {
			out = append(out, s.Altitude(planetRadius))
		}
	}
	return out
}

// Handles lists the projectile handles present in samples, in first-seen order.
func Handles(samples []dynamo.Sample) []int {
	seen := make(map[int]bool)
	var out []int
	for _, s := range samples {
		if !seen[s.Handle] {
			seen[s.Handle] = true
			out = append(out, s.Handle)
		}
	}
	return out
}

// Summarize reduces the samples of one handle. gm is G times the planet mass.
func Summarize(samples []dynamo.Sample, handle int, planetRadius, gm, dt float64) Summary {
	sum := Summary{
		Handle:      handle,
		MinAltitude: math.Inf(1),
		MaxAltitude: math.Inf(-1),
	}

	first, last := -1.0, 0.0
	for _, s := range samples {
		if s.Handle != handle {
			continue
		}
		if first < 0 {
			first = s.Time
		}
		last = s.Time

		alt := s.Altitude(planetRadius)
		sum.MinAltitude = math.Min(sum.MinAltitude, alt)
		sum.MaxAltitude = math.Max(sum.MaxAltitude, alt)
		if s.Collided {
			sum.Bounces++
		}

		d := math.Max(s.Pos.Len(), 1)
		v := s.Vel.Len()
		sum.Energy += 0.5*v*v - gm/d
		sum.Samples++
	}

	if sum.Samples == 0 {
		return Summary{Handle: handle}
	}
	sum.Energy /= float64(sum.Samples)
	sum.Duration = last - first

	if period, err := DominantPeriod(Altitudes(samples, handle, planetRadius), dt); err == nil {
		sum.Period = period
	}
	return sum
}
