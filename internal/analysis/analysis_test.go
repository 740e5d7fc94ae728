package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/cannon/internal/dynamo"
)

func sine(n int, dt, period float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 5*math.Sin(2*math.Pi*float64(i)*dt/period)
	}
	return out
}

func TestPowerSpectrum(t *testing.T) {
	ps := PowerSpectrum(sine(100, 0.1, 1.0))
	if len(ps) != 64 {
		t.Errorf("expected 64 bins, got %d", len(ps))
	}
	if ps[0] > 0.01*ps[13] {
		t.Errorf("expected the mean removed, dc bin %f", ps[0])
	}

	if PowerSpectrum(nil) != nil {
		t.Error("expected nil spectrum for empty input")
	}
}

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		name   string
		period float64
		n      int
		dt     float64
	}{
		{"two seconds", 2.0, 1200, 1.0 / 60.0},
		{"orbit-like", 10.0, 3600, 1.0 / 60.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DominantPeriod(sine(tt.n, tt.dt, tt.period), tt.dt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.period)/tt.period > 0.05 {
				t.Errorf("expected period %f, got %f", tt.period, got)
			}
		})
	}
}

func TestDominantPeriodErrors(t *testing.T) {
	if _, err := DominantPeriod([]float64{1, 2}, 0.1); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	if _, err := DominantPeriod([]float64{3, 3, 3, 3, 3, 3}, 0.1); !errors.Is(err, ErrNoPeak) {
		t.Errorf("expected ErrNoPeak, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	const r = 100.0
	samples := []dynamo.Sample{
		{Time: 0.1, Handle: 1, Pos: dynamo.Vec2{Y: 150}, Vel: dynamo.Vec2{X: 2}},
		{Time: 0.1, Handle: 2, Pos: dynamo.Vec2{Y: 500}},
		{Time: 0.2, Handle: 1, Pos: dynamo.Vec2{Y: 110}, Collided: true},
		{Time: 0.3, Handle: 1, Pos: dynamo.Vec2{Y: 130}},
	}

	sum := Summarize(samples, 1, r, 1000, 0.1)
	if sum.Samples != 3 {
		t.Errorf("expected 3 samples, got %d", sum.Samples)
	}
	if sum.MinAltitude != 10 || sum.MaxAltitude != 50 {
		t.Errorf("expected altitude range [10, 50], got [%f, %f]", sum.MinAltitude, sum.MaxAltitude)
	}
	if sum.Bounces != 1 {
		t.Errorf("expected 1 bounce, got %d", sum.Bounces)
	}
	if math.Abs(sum.Duration-0.2) > 1e-9 {
		t.Errorf("expected duration 0.2, got %f", sum.Duration)
	}

	wantEnergy := (2.0 - 1000.0/150 - 1000.0/110 - 1000.0/130) / 3
	if math.Abs(sum.Energy-wantEnergy) > 1e-9 {
		t.Errorf("expected energy %f, got %f", wantEnergy, sum.Energy)
	}

	empty := Summarize(samples, 9, r, 1000, 0.1)
	if empty.Samples != 0 || empty.MinAltitude != 0 {
		t.Errorf("expected zero summary for unknown handle, got %+v", empty)
	}
}

func TestHandles(t *testing.T) {
	samples := []dynamo.Sample{{Handle: 2}, {Handle: 1}, {Handle: 2}, {Handle: 3}}
	got := Handles(samples)
	want := []int{2, 1, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}
