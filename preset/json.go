package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-vose/voice"
)

// File is the JSON schema for engine presets.
type File struct {
	SampleRate      *int     `json:"sample_rate"`
	FadeMS          *float64 `json:"fade_ms"`
	TrailingMargin  *float64 `json:"trailing_margin"`
	PitchBendRange  *float32 `json:"pitch_bend_range"`
	MaxTrackSeconds *float64 `json:"max_track_seconds"`
	OutputGain      *float32 `json:"output_gain"`
	VoicebankDir    string   `json:"voicebank_dir"`
	Character       string   `json:"character"`
}

// LoadJSON loads a preset JSON file and applies it on top of default params.
func LoadJSON(path string) (*voice.Params, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	p := voice.NewDefaultParams()
	if err := ApplyFile(p, &f); err != nil {
		return nil, err
	}

	if p.VoicebankDir != "" && !filepath.IsAbs(p.VoicebankDir) {
		base := filepath.Dir(path)
		p.VoicebankDir = filepath.Clean(filepath.Join(base, p.VoicebankDir))
	}
	return p, nil
}

// ApplyFile applies a parsed preset file onto an existing params object.
func ApplyFile(dst *voice.Params, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination params")
	}
	if f == nil {
		return nil
	}

	if f.SampleRate != nil {
		if *f.SampleRate < 1000 || *f.SampleRate > 384000 {
			return fmt.Errorf("sample_rate must be in 1000..384000")
		}
		dst.SampleRate = *f.SampleRate
	}
	if f.FadeMS != nil {
		if *f.FadeMS < 0 || *f.FadeMS > 100 {
			return fmt.Errorf("fade_ms must be in [0,100]")
		}
		dst.FadeSeconds = *f.FadeMS / 1000.0
	}
	if f.TrailingMargin != nil {
		if *f.TrailingMargin < 0 {
			return fmt.Errorf("trailing_margin must be >= 0")
		}
		dst.TrailingMargin = *f.TrailingMargin
	}
	if f.PitchBendRange != nil {
		if *f.PitchBendRange <= 0 || *f.PitchBendRange > 24 {
			return fmt.Errorf("pitch_bend_range must be in (0,24]")
		}
		dst.PitchBendRange = *f.PitchBendRange
	}
	if f.MaxTrackSeconds != nil {
		if *f.MaxTrackSeconds <= 0 {
			return fmt.Errorf("max_track_seconds must be > 0")
		}
		dst.MaxTrackSeconds = *f.MaxTrackSeconds
	}
	if f.OutputGain != nil {
		if *f.OutputGain <= 0 {
			return fmt.Errorf("output_gain must be > 0")
		}
		dst.OutputGain = *f.OutputGain
	}
	if f.VoicebankDir != "" {
		dst.VoicebankDir = strings.TrimSpace(f.VoicebankDir)
	}
	if f.Character != "" {
		dst.Character = strings.TrimSpace(f.Character)
	}
	return nil
}
