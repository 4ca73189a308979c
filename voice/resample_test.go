package voice

import (
	"fmt"
	"testing"
)

func TestResampleLinearOutputLength(t *testing.T) {
	src := ramp(17)
	for _, m := range []int{1, 2, 16, 17, 18, 100, 1023} {
		t.Run(fmt.Sprintf("M%d", m), func(t *testing.T) {
			if got := len(ResampleLinear(src, m)); got != m {
				t.Fatalf("len = %d, want %d", got, m)
			}
		})
	}
}

func TestResampleLinearIdentityWhenLengthsMatch(t *testing.T) {
	src := ramp(32)
	got := ResampleLinear(src, len(src))
	if d := maxAbsDiff(got, src); d > 1e-6 {
		t.Fatalf("identity resample differs by %g", d)
	}
}

func TestResampleLinearHalvesOnIntegerPositions(t *testing.T) {
	got := ResampleLinear([]float32{0, 1, 2, 3}, 2)
	want := []float32{0, 2}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !nearly(got[i], want[i], 1e-6) {
			t.Fatalf("out[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestResampleLinearInterpolatesAndClampsTail(t *testing.T) {
	got := ResampleLinear([]float32{0, 1}, 4)
	want := []float32{0, 0.5, 1, 1}
	for i := range want {
		if !nearly(got[i], want[i], 1e-6) {
			t.Fatalf("out[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestResampleLinearPreservesEndpoints(t *testing.T) {
	src := ramp(10)
	for _, m := range []int{37, 400} {
		stretched := ResampleLinear(src, m)
		if !nearly(stretched[0], src[0], 1e-6) || !nearly(stretched[m-1], src[len(src)-1], 1e-6) {
			t.Fatalf("M=%d: stretched endpoints = (%f, %f)", m, stretched[0], stretched[m-1])
		}
		back := ResampleLinear(stretched, len(src))
		if !nearly(back[0], src[0], 1e-6) {
			t.Fatalf("M=%d: first = %f, want %f", m, back[0], src[0])
		}
		// The round trip lands between stretched frames, so the last value
		// is only good to one stretched step.
		step := float64(len(src)) / float64(m)
		if !nearly(back[len(back)-1], src[len(src)-1], step) {
			t.Fatalf("M=%d: last = %f, want %f within %f", m, back[len(back)-1], src[len(src)-1], step)
		}
	}
}

func TestResampleLinearDegenerateInputs(t *testing.T) {
	if got := ResampleLinear(nil, 10); len(got) != 0 {
		t.Fatalf("empty source: len = %d", len(got))
	}
	if got := ResampleLinear(ramp(4), 0); len(got) != 0 {
		t.Fatalf("zero target: len = %d", len(got))
	}
	if got := ResampleLinear(ramp(4), -3); len(got) != 0 {
		t.Fatalf("negative target: len = %d", len(got))
	}
}

func TestResampleLinearHeadMatchesFullStretch(t *testing.T) {
	src := ramp(10)
	full := ResampleLinear(src, 37)
	for _, n := range []int{1, 12, 36, 37, 50} {
		head := resampleLinearHead(src, 37, n)
		want := min(n, 37)
		if len(head) != want {
			t.Fatalf("n=%d: len = %d, want %d", n, len(head), want)
		}
		if d := maxAbsDiff(head, full[:want]); d != 0 {
			t.Fatalf("n=%d: head differs from full stretch by %g", n, d)
		}
	}
}
