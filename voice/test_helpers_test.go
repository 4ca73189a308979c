package voice

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

func constant(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i)
	}
	return out
}

func maxAbsDiff(a []float32, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	max := 0.0
	for i := 0; i < n; i++ {
		d := math.Abs(float64(a[i] - b[i]))
		if d > max {
			max = d
		}
	}
	return max
}

func nearly(a float32, b float32, tol float64) bool {
	return core.NearlyEqual(float64(a), float64(b), tol)
}

// vowelLibrary is the two-phoneme bank used by the end-to-end scenarios:
// "a" is 100 frames of +1 and "i" is 100 frames of -1.
func vowelLibrary() *Library {
	lib := NewLibrary(nil)
	lib.Put("a", constant(100, 1.0), 1000)
	lib.Put("i", constant(100, -1.0), 1000)
	return lib
}

func writeTempWav(t *testing.T, dir string, name string, data []float32, sampleRate int, numCh int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, numCh, 1)
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: numCh,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("wav write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("wav close: %v", err)
	}
	return path
}

// writeVoicebank creates a directory with two phonemes plus files the
// loader must ignore or skip.
func writeVoicebank(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTempWav(t, dir, "a.wav", constant(100, 0.5), 22050, 1)
	writeTempWav(t, dir, "i.WAV", constant(80, -0.25), 44100, 1)
	if err := os.WriteFile(filepath.Join(dir, "broken.wav"), []byte("not a wav file"), 0o644); err != nil {
		t.Fatalf("write broken: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("phonemes"), 0o644); err != nil {
		t.Fatalf("write readme: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.wav"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return dir
}
