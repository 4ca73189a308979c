package voice

import (
	"io"
	"log/slog"
	"sync"
)

// Engine is the synthesis entry point: one phoneme library plus the
// parameters every render uses. It is safe for concurrent use; reloading
// the voicebank never disturbs a render already in progress.
type Engine struct {
	params  Params
	library *Library
	log     *slog.Logger

	mu        sync.RWMutex
	character string
}

// NewEngine creates a new engine. Nil params use defaults and a nil logger
// discards output. If params names a voicebank directory it is loaded
// immediately; a load failure is logged and leaves the library empty.
func NewEngine(params *Params, logger *slog.Logger) *Engine {
	if params == nil {
		params = NewDefaultParams()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Engine{
		params:  *params,
		library: NewLibrary(logger),
		log:     logger.With(slog.String("component", "voice.engine")),
	}
	if e.params.SampleRate <= 0 {
		e.params.SampleRate = DefaultSampleRate
	}
	if params.VoicebankDir != "" {
		if err := e.LoadVoicebank(params.Character, params.VoicebankDir); err != nil {
			e.log.Warn("initial voicebank load failed", slog.String("error", err.Error()))
		}
	}
	return e
}

// LoadVoicebank replaces the library with the recordings in dir and makes
// characterID the active character. On failure the library is left empty.
func (e *Engine) LoadVoicebank(characterID string, dir string) error {
	err := e.library.Load(dir)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.character = ""
		return err
	}
	e.character = characterID
	e.log.Info("voicebank active", slog.String("character", characterID), slog.Int("phonemes", e.library.Len()))
	return nil
}

// UnloadVoicebank releases all phonemes.
func (e *Engine) UnloadVoicebank() {
	e.library.Unload()
	e.mu.Lock()
	e.character = ""
	e.mu.Unlock()
}

// Character returns the active character id, or "" when none is loaded.
func (e *Engine) Character() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.character
}

// Library returns the engine's phoneme library.
func (e *Engine) Library() *Library {
	return e.library
}

// SampleRate returns the render sample rate.
func (e *Engine) SampleRate() int {
	return e.params.SampleRate
}

// Params returns a copy of the engine parameters.
func (e *Engine) Params() Params {
	return e.params
}

// RenderNote writes note into caller-owned storage. out must be zeroed and
// sized to the note duration at the engine sample rate.
func (e *Engine) RenderNote(note NoteEvent, pitch []PitchEvent, out []float32) {
	renderNote(e.library.snapshot(), note, out, len(out), e.params.fadeLength())
}

// RenderTrack mixes notes over [start, end). The caller owns the returned
// buffer and should hand it back with ReleaseBuffer.
func (e *Engine) RenderTrack(notes []NoteEvent, pitch []PitchEvent, start, end float64) (*TrackBuffer, error) {
	buf, err := mixTrack(e.library.snapshot(), notes, start, end, &e.params)
	if err != nil {
		e.log.Error("track render failed", slog.String("error", err.Error()))
		return nil, err
	}
	e.log.Debug("track rendered",
		slog.Int("notes", len(notes)),
		slog.Int("pitch_events", len(pitch)),
		slog.Int("frames", buf.Len()),
	)
	return buf, nil
}

// SynthesizeFull renders from zero to the last note end plus the trailing
// margin, so no note is cut short.
func (e *Engine) SynthesizeFull(notes []NoteEvent, pitch []PitchEvent) (*TrackBuffer, error) {
	return e.RenderTrack(notes, pitch, 0, FullEnd(notes, e.params.TrailingMargin))
}

// ReleaseBuffer releases a buffer returned by RenderTrack or SynthesizeFull.
// Nil and already released buffers are ignored.
func (e *Engine) ReleaseBuffer(b *TrackBuffer) {
	b.Release()
}

// NoteFrequency reports the bent onset frequency of note using the
// engine's pitch-bend range.
func (e *Engine) NoteFrequency(note NoteEvent, pitch []PitchEvent) float32 {
	return NoteFrequency(note, pitch, e.params.PitchBendRange)
}
