package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-vose/analysis"
	"github.com/cwbudde/algo-vose/internal/wavio"
	"github.com/cwbudde/algo-vose/preset"
	"github.com/cwbudde/algo-vose/score"
	"github.com/cwbudde/algo-vose/voice"
)

func main() {
	presetPath := flag.String("preset", "", "Preset JSON file path (optional)")
	voicebank := flag.String("voicebank", "", "Voicebank directory override")
	character := flag.String("character", "", "Character id override")
	scorePath := flag.String("score", "", "Score file (.json, .yaml or .yml)")
	sampleRate := flag.Int("sample-rate", 0, "Render sample rate in Hz (0 = preset value)")
	start := flag.Float64("start", -1, "Render window start in seconds (negative = score value or full render)")
	end := flag.Float64("end", -1, "Render window end in seconds (negative = score value or full render)")
	outRate := flag.Int("out-rate", 0, "Resample the export to this rate in Hz (0 = render rate)")
	output := flag.String("output", "output.wav", "Output WAV file path")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *scorePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -score is required")
		flag.Usage()
		os.Exit(2)
	}

	params := voice.NewDefaultParams()
	if *presetPath != "" {
		p, err := preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
		params = p
	}
	if *voicebank != "" {
		params.VoicebankDir = *voicebank
	}
	if *character != "" {
		params.Character = *character
	}
	if *sampleRate > 0 {
		params.SampleRate = *sampleRate
	}
	if params.VoicebankDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no voicebank directory (use -voicebank or a preset voicebank_dir)")
		os.Exit(2)
	}

	s, err := score.Load(*scorePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading score %q: %v\n", *scorePath, err)
		os.Exit(1)
	}

	bankDir := params.VoicebankDir
	params.VoicebankDir = ""
	engine := voice.NewEngine(params, logger)
	if err := engine.LoadVoicebank(params.Character, bankDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading voicebank %q: %v\n", bankDir, err)
		os.Exit(1)
	}

	missing := 0
	for _, id := range s.PhonemeIDs() {
		if _, ok := engine.Library().Find(id); !ok {
			logger.Warn("phoneme not in voicebank", slog.String("phoneme", id))
			missing++
		}
	}

	for i, n := range s.Notes {
		fmt.Printf("note %3d: midi %3d  %.3fs +%.3fs  vel %3d  %-8q %7.2f Hz\n",
			i, n.Note, n.Start, n.Duration, n.Velocity, n.Lyric, engine.NoteFrequency(n, s.Pitch))
	}

	var buf *voice.TrackBuffer
	winStart, winEnd, full := window(s, *start, *end, params.TrailingMargin)
	if full {
		buf, err = engine.SynthesizeFull(s.Notes, s.Pitch)
	} else {
		buf, err = engine.RenderTrack(s.Notes, s.Pitch, winStart, winEnd)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
	defer engine.ReleaseBuffer(buf)

	samples := append([]float32(nil), buf.Samples()...)
	analysis.ApplyGain(samples, params.OutputGain)

	rate := buf.SampleRate()
	if *outRate > 0 && *outRate != rate {
		samples, err = wavio.Resample(samples, rate, *outRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resampling to %d Hz: %v\n", *outRate, err)
			os.Exit(1)
		}
		rate = *outRate
	}

	if err := wavio.WriteMono(*output, samples, rate); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *output, err)
		os.Exit(1)
	}

	l := analysis.Measure(samples, rate)
	fmt.Printf("Wrote %s (%d frames, %.3fs at %d Hz, character %q, %d missing phonemes)\n",
		*output, l.Frames, l.Duration(), rate, engine.Character(), missing)
	fmt.Printf("Peak %.4f (%.2f dBFS)  RMS %.4f (%.2f dBFS)  clipped %d\n",
		l.Peak, l.PeakDBFS, l.RMS, l.RMSDBFS, l.Clipped)
}

// window resolves the render window. Flags win over the score; when neither
// gives an end the whole score is rendered with the trailing margin.
func window(s *score.Score, start, end, margin float64) (float64, float64, bool) {
	ws, we := 0.0, -1.0
	if s.Start != nil {
		ws = *s.Start
	}
	if s.End != nil {
		we = *s.End
	}
	if start >= 0 {
		ws = start
	}
	if end >= 0 {
		we = end
	}
	if we < 0 {
		if ws == 0 {
			return 0, 0, true
		}
		we = voice.FullEnd(s.Notes, margin)
	}
	return ws, we, false
}
