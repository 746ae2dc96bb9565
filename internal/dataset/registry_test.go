package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestEnumerateAttachesMetadata(t *testing.T) {
	root := t.TempDir()
	kind := Kind{Trace: root, Ext: "audio"}

	touch(t, filepath.Join(root, "fender", "audio", "a5.wav"))
	touch(t, filepath.Join(root, "fender", "audio", "e5.wav"))
	touch(t, filepath.Join(root, "gibson", "audio", "d5.wav"))
	touch(t, filepath.Join(root, "gibson", "audio", "notes.txt")) // ignored
	touch(t, filepath.Join(root, "ignored", "audio", "g5.wav"))   // model not requested

	files, err := Enumerate(kind, []string{"fender", "gibson"})
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, "fender", files[0].Model)
	assert.Equal(t, "a5", files[0].Chord)
	assert.Equal(t, "e5", files[1].Chord)
	assert.Equal(t, "gibson", files[2].Model)
	assert.Equal(t, "d5", files[2].Chord)
}

func TestEnumerateDeeperLayout(t *testing.T) {
	root := t.TempDir()
	kind := Kind{Trace: root, Ext: filepath.Join("audio", "notes")}

	touch(t, filepath.Join(root, "fender", "audio", "notes", "e2.wav"))

	files, err := Enumerate(kind, []string{"fender"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "fender", files[0].Model, "model known from enumeration, not path depth")
	assert.Equal(t, "e2", files[0].Chord)
}

func TestEnumerateMissingModelDirIsEmpty(t *testing.T) {
	kind := Kind{Trace: t.TempDir(), Ext: "audio"}
	files, err := Enumerate(kind, []string{"nothing"})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDefaultRegistryLayout(t *testing.T) {
	reg := DefaultRegistry("data", "config.yaml")
	assert.Equal(t, filepath.Join("data", "processed"), reg.ProcessedDir())
	assert.Equal(t, filepath.Join("data", "interim"), reg.InterimDir())
	assert.Contains(t, reg.Kinds, "power")
	assert.Contains(t, reg.Kinds, "sn")
}
