package voice

import (
	"github.com/cwbudde/algo-dsp/dsp/core"
)

// NoteEvent is one sung note.
type NoteEvent struct {
	Note     int     // MIDI note number
	Start    float64 // seconds
	Duration float64 // seconds
	Velocity int     // 0..127
	Lyric    string  // display only
	Phonemes []string
}

// End returns the note's end time in seconds.
func (n NoteEvent) End() float64 {
	return n.Start + n.Duration
}

// RenderNote renders note into out at sampleRate with the default 5 ms
// fade. out must be zeroed and sized to the note duration in frames. Pitch
// events are accepted but do not alter the rendered samples. Callers that
// need a configured fade length go through Engine.RenderNote.
func RenderNote(lib *Library, note NoteEvent, pitch []PitchEvent, out []float32, sampleRate int) {
	renderNote(lib.snapshot(), note, out, len(out), FadeLength(sampleRate, DefaultFadeSeconds))
}

// renderNote splits a note of total frames evenly across its phonemes and
// fills each slot with the stretched recording. From the second slot on,
// the segment is stretched by an extra fadeLen frames and its head is
// crossfaded into the tail of the previous slot, so every slot stays fully
// covered. Slots whose phoneme is unknown stay silent. Leftover frames past
// the last whole slot are not touched.
//
// out holds the leading frames of the note and may be shorter than total;
// only the frames that land in out are computed.
func renderNote(tbl *phonemeTable, note NoteEvent, out []float32, total int, fadeLen int) {
	count := len(note.Phonemes)
	if count == 0 || len(out) == 0 || total <= 0 {
		return
	}
	slot := total / count
	if slot == 0 {
		return
	}

	cursor := 0
	for p, id := range note.Phonemes {
		ph, ok := tbl.find(id)
		if !ok || ph.Frames() == 0 {
			cursor += slot
			continue
		}
		if p == 0 || fadeLen <= 0 || cursor < fadeLen {
			if cursor >= len(out) {
				break
			}
			seg := resampleLinearHead(ph.Samples, slot, len(out)-cursor)
			copy(out[cursor:], seg)
		} else {
			base := cursor - fadeLen
			if base >= len(out) {
				break
			}
			seg := resampleLinearHead(ph.Samples, slot+fadeLen, len(out)-base)
			ApplyCrossfade(out, base, seg, fadeLen)
		}
		cursor += slot
	}

	amp := velocityGain(note.Velocity)
	for i := range out {
		out[i] *= amp
	}
}

// velocityGain maps MIDI velocity linearly to amplitude.
func velocityGain(velocity int) float32 {
	return float32(core.Clamp(float64(velocity), 0, 127) / 127.0)
}
