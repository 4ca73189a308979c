package voice

const (
	DefaultSampleRate      = 44100
	DefaultFadeSeconds     = 0.005
	DefaultTrailingMargin  = 0.5
	DefaultPitchBendRange  = 2.0
	DefaultMaxTrackSeconds = 600.0
)

// Params holds engine configuration.
type Params struct {
	SampleRate int

	// Crossfade window between adjacent phonemes of one note.
	FadeSeconds float64

	// Silence appended after the last note by SynthesizeFull.
	TrailingMargin float64

	// Pitch-bend range in semitones for a full-scale bend value.
	PitchBendRange float32

	// Upper bound on a single track render; longer requests fail
	// with ErrTrackTooLong instead of allocating.
	MaxTrackSeconds float64

	// Gain applied on export only; the engine never scales by it.
	OutputGain float32

	// Voicebank loaded by NewEngine when non-empty.
	VoicebankDir string
	Character    string
}

// NewDefaultParams creates default parameters.
func NewDefaultParams() *Params {
	return &Params{
		SampleRate:      DefaultSampleRate,
		FadeSeconds:     DefaultFadeSeconds,
		TrailingMargin:  DefaultTrailingMargin,
		PitchBendRange:  DefaultPitchBendRange,
		MaxTrackSeconds: DefaultMaxTrackSeconds,
		OutputGain:      1.0,
	}
}

func (p *Params) fadeLength() int {
	return FadeLength(p.SampleRate, p.FadeSeconds)
}
