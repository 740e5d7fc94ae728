// Package analysis characterizes recorded trajectories.
//
//   - [PowerSpectrum]: windowed magnitude spectrum of a real series
//   - [DominantPeriod]: period of the strongest non-DC component
//   - [Summarize]: altitude range, orbital period and energy of one ball
//
// An orbiting ball's altitude oscillates once per revolution, so the
// dominant period of its altitude series estimates the orbital period:
//
//	alt := analysis.Altitudes(samples, 1, planetRadius)
//	period, err := analysis.DominantPeriod(alt, dt)
package analysis
