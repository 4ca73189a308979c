package analysis

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

// Levels summarizes the amplitude of a rendered signal.
type Levels struct {
	SampleRate int `json:"sample_rate"`
	Frames     int `json:"frames"`

	Peak     float64 `json:"peak"`
	RMS      float64 `json:"rms"`
	PeakDBFS float64 `json:"peak_dbfs"`
	RMSDBFS  float64 `json:"rms_dbfs"`

	// Frames at or beyond full scale; these clip when encoded to PCM.
	Clipped int `json:"clipped"`
	// Frames at exactly zero.
	Silent int `json:"silent"`
}

// Measure computes Levels for a mono signal. Silence reports -Inf dBFS.
func Measure(samples []float32, sampleRate int) Levels {
	l := Levels{
		SampleRate: sampleRate,
		Frames:     len(samples),
		PeakDBFS:   math.Inf(-1),
		RMSDBFS:    math.Inf(-1),
	}
	if len(samples) == 0 {
		return l
	}

	var sum float64
	for _, s := range samples {
		v := float64(s)
		a := math.Abs(v)
		if a > l.Peak {
			l.Peak = a
		}
		if a >= 1.0 {
			l.Clipped++
		}
		if v == 0 {
			l.Silent++
		}
		sum += v * v
	}
	l.RMS = math.Sqrt(sum / float64(len(samples)))
	l.PeakDBFS = core.LinearToDB(l.Peak)
	l.RMSDBFS = core.LinearToDB(l.RMS)
	return l
}

// Duration returns the measured length in seconds.
func (l Levels) Duration() float64 {
	if l.SampleRate <= 0 {
		return 0
	}
	return float64(l.Frames) / float64(l.SampleRate)
}

// ApplyGain scales samples in place, clamping to [-1, 1].
func ApplyGain(samples []float32, gain float32) {
	for i, s := range samples {
		samples[i] = float32(core.Clamp(float64(s*gain), -1, 1))
	}
}
