// Package dataset assembles augmented feature tensors and label tables
// from a directory tree of source recordings.
package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind describes where one track kind's recordings live: a base directory
// with one subdirectory per instrument model, and a fixed subpath between
// the model directory and the .wav files.
type Kind struct {
	Trace string
	Ext   string
}

// Registry maps track-kind keys to their source layout plus the shared
// data directory and run configuration path.
type Registry struct {
	DataDir string
	Config  string
	Kinds   map[string]Kind
}

// DefaultRegistry returns the standard layout under dataDir: power chords
// under raw/power, single notes under raw/sn (whose extra directory level
// sits below the model directory).
func DefaultRegistry(dataDir, configPath string) Registry {
	return Registry{
		DataDir: dataDir,
		Config:  configPath,
		Kinds: map[string]Kind{
			"power": {Trace: filepath.Join(dataDir, "raw", "power"), Ext: "audio"},
			"sn":    {Trace: filepath.Join(dataDir, "raw", "sn"), Ext: filepath.Join("audio", "notes")},
		},
	}
}

// ProcessedDir is where training artifacts are persisted.
func (r Registry) ProcessedDir() string { return filepath.Join(r.DataDir, "processed") }

// InterimDir is where optional augmented renders are written.
func (r Registry) InterimDir() string { return filepath.Join(r.DataDir, "interim") }

// TrackFile is one enumerated source recording with its metadata attached
// at enumeration time, so nothing downstream has to parse path segments.
type TrackFile struct {
	Path  string
	Model string // instrument model identity
	Chord string // chord or note identity
}

// Enumerate lists the .wav files of the given models under a kind's
// layout. Metadata comes from the enumeration itself: the model is the
// directory being listed, the chord is the file basename.
func Enumerate(kind Kind, models []string) ([]TrackFile, error) {
	var out []TrackFile
	for _, model := range models {
		pattern := filepath.Join(kind.Trace, model, kind.Ext, "*.wav")
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, path := range matches {
			out = append(out, TrackFile{
				Path:  path,
				Model: model,
				Chord: strings.TrimSuffix(filepath.Base(path), ".wav"),
			})
		}
	}
	return out, nil
}
