package voice

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-vose/internal/wavio"
)

// ErrDirectoryNotFound is returned when a voicebank directory cannot be read.
var ErrDirectoryNotFound = errors.New("voicebank directory not found")

// PhonemeSample is one decoded phoneme recording.
// Samples are owned by the Library and must not be modified by callers.
type PhonemeSample struct {
	ID         string
	Samples    []float32
	SampleRate int
}

// Frames returns the number of mono frames.
func (s *PhonemeSample) Frames() int {
	return len(s.Samples)
}

// phonemeTable is immutable once published.
type phonemeTable struct {
	entries map[string]*PhonemeSample
}

func (t *phonemeTable) find(id string) (*PhonemeSample, bool) {
	if t == nil {
		return nil, false
	}
	s, ok := t.entries[id]
	return s, ok
}

// Library maps phoneme identifiers to decoded waveforms. The zero value is
// an empty library.
//
// Readers work on an immutable snapshot, so a Load or Unload running
// concurrently with a render swaps the table without disturbing it.
type Library struct {
	mu    sync.Mutex // serializes writers
	table atomic.Pointer[phonemeTable]
	log   *slog.Logger
}

// NewLibrary creates an empty library. A nil logger discards output.
func NewLibrary(logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l := &Library{log: logger.With(slog.String("component", "voice.library"))}
	l.table.Store(&phonemeTable{entries: map[string]*PhonemeSample{}})
	return l
}

// Load replaces the library contents with every WAV file found directly in
// dir. The phoneme identifier is the file name without its extension.
// Undecodable files are skipped. If dir cannot be read the library is left
// empty and the returned error wraps ErrDirectoryNotFound.
func (l *Library) Load(dir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		l.table.Store(&phonemeTable{entries: map[string]*PhonemeSample{}})
		l.logger().Error("cannot open voicebank directory", slog.String("dir", dir), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", ErrDirectoryNotFound, err)
	}

	next := &phonemeTable{entries: make(map[string]*PhonemeSample, len(entries))}
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, ".wav") {
			continue
		}
		id := strings.TrimSuffix(name, ext)
		if id == "" {
			continue
		}
		samples, rate, err := wavio.ReadMono(filepath.Join(dir, name))
		if err != nil {
			l.logger().Warn("skipping phoneme", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		next.entries[id] = &PhonemeSample{ID: id, Samples: samples, SampleRate: rate}
		l.logger().Debug("loaded phoneme", slog.String("id", id), slog.Int("frames", len(samples)), slog.Int("sample_rate", rate))
	}

	l.table.Store(next)
	l.logger().Info("voicebank loaded", slog.String("dir", dir), slog.Int("phonemes", len(next.entries)))
	return nil
}

// Put inserts or replaces a single phoneme. The samples are copied.
func (l *Library) Put(id string, samples []float32, sampleRate int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := &phonemeTable{entries: map[string]*PhonemeSample{}}
	if cur := l.table.Load(); cur != nil {
		for k, v := range cur.entries {
			next.entries[k] = v
		}
	}
	owned := make([]float32, len(samples))
	copy(owned, samples)
	next.entries[id] = &PhonemeSample{ID: id, Samples: owned, SampleRate: sampleRate}
	l.table.Store(next)
}

// Unload releases all phonemes. Safe to call on an empty library.
func (l *Library) Unload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.table.Store(&phonemeTable{entries: map[string]*PhonemeSample{}})
}

// Find looks up a phoneme. A miss is not an error.
func (l *Library) Find(id string) (*PhonemeSample, bool) {
	return l.snapshot().find(id)
}

// Len returns the number of loaded phonemes.
func (l *Library) Len() int {
	t := l.snapshot()
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// IDs returns the loaded phoneme identifiers in sorted order.
func (l *Library) IDs() []string {
	t := l.snapshot()
	if t == nil {
		return nil
	}
	ids := make([]string, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (l *Library) logger() *slog.Logger {
	if l.log == nil {
		l.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.log
}

func (l *Library) snapshot() *phonemeTable {
	if l == nil {
		return nil
	}
	return l.table.Load()
}
