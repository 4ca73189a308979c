package voice

import (
	"errors"
	"fmt"
	"math"
)

// maxNoteFrames bounds a note's length in frames so slot arithmetic stays
// exact in float64.
const maxNoteFrames = 1 << 53

var (
	// ErrTrackTooLong is returned when a render window would exceed
	// Params.MaxTrackSeconds or a note is too long to count in frames.
	ErrTrackTooLong = errors.New("track render too long")
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("invalid sample rate")
)

// TrackBuffer owns a rendered mono track. Once Release is called the
// samples are dropped; Release is safe to repeat and safe on nil.
type TrackBuffer struct {
	samples    []float32
	sampleRate int
}

// Samples returns the rendered frames, or nil after Release.
func (b *TrackBuffer) Samples() []float32 {
	if b == nil {
		return nil
	}
	return b.samples
}

// Len returns the number of frames.
func (b *TrackBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.samples)
}

// SampleRate returns the rate the track was rendered at.
func (b *TrackBuffer) SampleRate() int {
	if b == nil {
		return 0
	}
	return b.sampleRate
}

// Release drops the buffer's samples.
func (b *TrackBuffer) Release() {
	if b == nil {
		return
	}
	b.samples = nil
}

// RenderTrack mixes notes into a new buffer covering [start, end) at
// sampleRate with default parameters.
func RenderTrack(lib *Library, notes []NoteEvent, pitch []PitchEvent, start, end float64, sampleRate int) (*TrackBuffer, error) {
	p := NewDefaultParams()
	p.SampleRate = sampleRate
	return mixTrack(lib.snapshot(), notes, start, end, p)
}

// SynthesizeFull renders from time zero to the end of the last note plus
// the default trailing margin.
func SynthesizeFull(lib *Library, notes []NoteEvent, pitch []PitchEvent, sampleRate int) (*TrackBuffer, error) {
	p := NewDefaultParams()
	p.SampleRate = sampleRate
	return mixTrack(lib.snapshot(), notes, 0, FullEnd(notes, p.TrailingMargin), p)
}

// FullEnd returns the latest note end plus margin. Notes ending before zero
// count as zero.
func FullEnd(notes []NoteEvent, margin float64) float64 {
	maxEnd := 0.0
	for _, n := range notes {
		if e := n.End(); e > maxEnd {
			maxEnd = e
		}
	}
	return maxEnd + margin
}

// mixTrack renders each note into its own zeroed buffer and adds it into
// the track at its time-aligned offset. Notes starting outside the window
// are skipped; notes running past its end are truncated without rendering
// the hidden frames.
func mixTrack(tbl *phonemeTable, notes []NoteEvent, start, end float64, p *Params) (*TrackBuffer, error) {
	sr := p.SampleRate
	if sr <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sr)
	}
	span := (end - start) * float64(sr)
	if math.IsNaN(span) || span <= 0 {
		return &TrackBuffer{samples: []float32{}, sampleRate: sr}, nil
	}
	maxFrames := math.Inf(1)
	if p.MaxTrackSeconds > 0 {
		maxFrames = p.MaxTrackSeconds * float64(sr)
	}
	if math.IsInf(span, 1) || math.Round(span) > maxFrames {
		return nil, fmt.Errorf("%w: %.3fs exceeds %.3fs", ErrTrackTooLong, end-start, p.MaxTrackSeconds)
	}
	length := int(math.Round(span))
	if length <= 0 {
		return &TrackBuffer{samples: []float32{}, sampleRate: sr}, nil
	}

	out := make([]float32, length)
	fadeLen := p.fadeLength()
	for _, n := range notes {
		offset := math.Round((n.Start - start) * float64(sr))
		if math.IsNaN(offset) || offset < 0 || offset >= float64(length) {
			continue
		}
		frames := math.Round(n.Duration * float64(sr))
		if math.IsNaN(frames) || frames <= 0 {
			continue
		}
		if frames > maxNoteFrames {
			return nil, fmt.Errorf("%w: note at %.3fs lasts %.3fs", ErrTrackTooLong, n.Start, n.Duration)
		}

		// Only the part of the note inside the window is rendered.
		total := int(frames)
		visible := min(total, length-int(offset))
		noteBuf := make([]float32, visible)
		renderNote(tbl, n, noteBuf, total, fadeLen)
		mixInto(out, int(offset), noteBuf)
	}
	return &TrackBuffer{samples: out, sampleRate: sr}, nil
}

// mixInto adds src into dst at offset, dropping frames past len(dst).
func mixInto(dst []float32, offset int, src []float32) {
	n := len(src)
	if offset+n > len(dst) {
		n = len(dst) - offset
	}
	for i := 0; i < n; i++ {
		dst[offset+i] += src[i]
	}
}
