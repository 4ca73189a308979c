package score

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cwbudde/algo-vose/voice"
	"gopkg.in/yaml.v3"
)

const defaultVelocity = 100

// File is the on-disk score schema shared by the JSON and YAML formats.
type File struct {
	StartTime   *float64     `json:"start_time" yaml:"start_time"`
	EndTime     *float64     `json:"end_time" yaml:"end_time"`
	Notes       []NoteEntry  `json:"notes" yaml:"notes"`
	PitchEvents []PitchEntry `json:"pitch_events" yaml:"pitch_events"`
}

// NoteEntry is one note in a score file.
type NoteEntry struct {
	Pitch    int      `json:"pitch" yaml:"pitch"`
	Start    float64  `json:"start" yaml:"start"`
	Duration float64  `json:"duration" yaml:"duration"`
	Velocity *int     `json:"velocity" yaml:"velocity"`
	Lyrics   string   `json:"lyrics" yaml:"lyrics"`
	Phonemes []string `json:"phonemes" yaml:"phonemes"`
}

// PitchEntry is one pitch-bend event in a score file.
type PitchEntry struct {
	Time  float64 `json:"time" yaml:"time"`
	Value int     `json:"value" yaml:"value"`
}

// Score is a validated score ready to render.
type Score struct {
	Notes []voice.NoteEvent
	Pitch []voice.PitchEvent

	// Optional render window; nil means derive it from the notes.
	Start *float64
	End   *float64
}

// Load reads a score from a .json, .yaml or .yml file.
func Load(path string) (*Score, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &f)
	default:
		return nil, fmt.Errorf("unsupported score format %q (expected .json, .yaml or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return FromFile(&f)
}

// FromFile validates a parsed score file. Pitch events are stably sorted by
// time so that the last event at a given time wins.
func FromFile(f *File) (*Score, error) {
	if f == nil {
		return nil, fmt.Errorf("nil score file")
	}

	s := &Score{
		Notes: make([]voice.NoteEvent, 0, len(f.Notes)),
		Pitch: make([]voice.PitchEvent, 0, len(f.PitchEvents)),
		Start: f.StartTime,
		End:   f.EndTime,
	}
	if s.Start != nil && s.End != nil && *s.End < *s.Start {
		return nil, fmt.Errorf("end_time must be >= start_time")
	}

	for i, n := range f.Notes {
		if n.Pitch < 0 || n.Pitch > 127 {
			return nil, fmt.Errorf("notes[%d].pitch must be in 0..127", i)
		}
		if !isFinite(n.Start) || n.Start < 0 {
			return nil, fmt.Errorf("notes[%d].start must be >= 0", i)
		}
		if !isFinite(n.Duration) || n.Duration <= 0 {
			return nil, fmt.Errorf("notes[%d].duration must be > 0", i)
		}
		velocity := defaultVelocity
		if n.Velocity != nil {
			velocity = *n.Velocity
		}
		if velocity < 0 || velocity > 127 {
			return nil, fmt.Errorf("notes[%d].velocity must be in 0..127", i)
		}
		phonemes := make([]string, 0, len(n.Phonemes))
		for _, ph := range n.Phonemes {
			if ph = strings.TrimSpace(ph); ph != "" {
				phonemes = append(phonemes, ph)
			}
		}
		s.Notes = append(s.Notes, voice.NoteEvent{
			Note:     n.Pitch,
			Start:    n.Start,
			Duration: n.Duration,
			Velocity: velocity,
			Lyric:    n.Lyrics,
			Phonemes: phonemes,
		})
	}

	for i, p := range f.PitchEvents {
		if !isFinite(p.Time) {
			return nil, fmt.Errorf("pitch_events[%d].time must be finite", i)
		}
		if p.Value < -8192 || p.Value > 8191 {
			return nil, fmt.Errorf("pitch_events[%d].value must be in -8192..8191", i)
		}
		s.Pitch = append(s.Pitch, voice.PitchEvent{Time: p.Time, Value: p.Value})
	}
	sort.SliceStable(s.Pitch, func(a, b int) bool {
		return s.Pitch[a].Time < s.Pitch[b].Time
	})
	return s, nil
}

// PhonemeIDs returns every distinct phoneme the score references, sorted.
func (s *Score) PhonemeIDs() []string {
	seen := map[string]struct{}{}
	for _, n := range s.Notes {
		for _, ph := range n.Phonemes {
			seen[ph] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
