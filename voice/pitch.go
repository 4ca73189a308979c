package voice

import (
	"github.com/cwbudde/algo-approx"
)

const (
	pitchBendMin = -8192
	pitchBendMax = 8191
)

// PitchEvent is a pitch-bend change at Time seconds. Value is in
// [-8192, 8191]; zero means no bend.
type PitchEvent struct {
	Time  float64
	Value int
}

// NoteToHz converts a MIDI note number to frequency in Hz (A4 = 440 Hz).
func NoteToHz(note int) float32 {
	const a4Freq = 440.0
	const a4Note = 69
	exponent := float32(note-a4Note) / 12.0
	return a4Freq * pow2Approx(exponent)
}

// BendAt returns the bend value in effect at time t: the last event at or
// before t. Events must be sorted by time.
func BendAt(events []PitchEvent, t float64) int {
	val := 0
	for _, ev := range events {
		if ev.Time > t {
			break
		}
		val = ev.Value
	}
	return val
}

// BendRatio converts a bend value to a frequency multiplier, where a
// full-scale bend spans rangeSemitones.
func BendRatio(value int, rangeSemitones float32) float32 {
	if value < pitchBendMin {
		value = pitchBendMin
	}
	if value > pitchBendMax {
		value = pitchBendMax
	}
	semitones := float32(value) / 8192.0 * rangeSemitones
	return pow2Approx(semitones / 12.0)
}

// NoteFrequency is the bent fundamental of note at its onset.
// Rendering does not apply it; it is reported for display.
func NoteFrequency(note NoteEvent, events []PitchEvent, rangeSemitones float32) float32 {
	return NoteToHz(note.Note) * BendRatio(BendAt(events, note.Start), rangeSemitones)
}

func pow2Approx(x float32) float32 {
	const ln2 = 0.69314718055994530942
	return approx.FastExp(x * ln2)
}
