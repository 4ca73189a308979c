package analysis

import (
	"math"
	"testing"
)

func TestMeasureSineLevels(t *testing.T) {
	const sr = 48000
	x := make([]float32, sr)
	for i := range x {
		x[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/sr))
	}
	l := Measure(x, sr)
	if math.Abs(l.Peak-0.5) > 1e-3 {
		t.Fatalf("peak = %f, want 0.5", l.Peak)
	}
	if math.Abs(l.RMS-0.5/math.Sqrt2) > 1e-3 {
		t.Fatalf("rms = %f, want %f", l.RMS, 0.5/math.Sqrt2)
	}
	if math.Abs(l.PeakDBFS-(-6.0206)) > 0.05 {
		t.Fatalf("peak dBFS = %f, want about -6.02", l.PeakDBFS)
	}
	if l.Clipped != 0 {
		t.Fatalf("clipped = %d, want 0", l.Clipped)
	}
	if l.Duration() != 1.0 {
		t.Fatalf("duration = %f, want 1", l.Duration())
	}
}

func TestMeasureSilenceAndClipping(t *testing.T) {
	silent := Measure(make([]float32, 10), 1000)
	if !math.IsInf(silent.PeakDBFS, -1) || silent.Silent != 10 {
		t.Fatalf("silence: %+v", silent)
	}
	empty := Measure(nil, 1000)
	if empty.Frames != 0 || !math.IsInf(empty.RMSDBFS, -1) {
		t.Fatalf("empty: %+v", empty)
	}

	hot := Measure([]float32{1.2, -1.0, 0.3}, 1000)
	if hot.Clipped != 2 {
		t.Fatalf("clipped = %d, want 2", hot.Clipped)
	}
}

func TestApplyGainClamps(t *testing.T) {
	x := []float32{0.25, -0.5, 0.9}
	ApplyGain(x, 2)
	want := []float32{0.5, -1.0, 1.0}
	for i := range want {
		if x[i] != want[i] {
			t.Fatalf("x[%d] = %f, want %f", i, x[i], want[i])
		}
	}
}
