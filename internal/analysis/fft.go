package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrTooShort = errors.New("analysis: series too short")
	ErrNoPeak   = errors.New("analysis: no periodic component")
)

const minSeries = 4

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data after removing the mean and applying a Hann window. The input is
// zero-padded to a power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	n := nextPow2(len(data))
	buf := make([]float64, n)
	for i, v := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(max(len(data)-1, 1))))
		buf[i] = (v - mean) * window
	}

	spectrum := fft.FFTReal(buf)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod estimates the period, in seconds, of the strongest
// component of a series sampled every dt seconds.
func DominantPeriod(data []float64, dt float64) (float64, error) {
	if len(data) < minSeries {
		return 0, ErrTooShort
	}

	ps := PowerSpectrum(data)
	peak, best := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			peak, best = k, ps[k]
		}
	}
	if peak == 0 || best < 1e-9 {
		return 0, ErrNoPeak
	}

	n := 2 * len(ps)
	return float64(n) * dt / float64(peak), nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
