package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/video-overlay/internal/editor"
	"github.com/ZacxDev/video-overlay/internal/engine"
	"github.com/ZacxDev/video-overlay/internal/overlay"
	"github.com/ZacxDev/video-overlay/pkg/types"
)

type fakeEngine struct {
	state     engine.State
	applied   []overlay.Operation
	exported  []string
	exportErr error
}

func (f *fakeEngine) ApplyOperations(ops []overlay.Operation) error {
	f.applied = ops
	f.state = engine.StateConfigured
	return nil
}

func (f *fakeEngine) Export(outputPath string) error {
	f.exported = append(f.exported, outputPath)
	if f.exportErr != nil {
		f.state = engine.StateFailed
		return f.exportErr
	}
	f.state = engine.StateSucceeded
	return nil
}

func (f *fakeEngine) State() engine.State { return f.state }

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.mp4")
	require.NoError(t, os.WriteFile(path, []byte("not really a video"), 0644))
	return path
}

func TestExportMissingInputSkipsEngine(t *testing.T) {
	s := editor.NewSession(filepath.Join(t.TempDir(), "missing.mp4"))
	s.AddOverlay("Hi", overlay.Position{}, overlay.DefaultStyle(), nil, nil)
	eng := &fakeEngine{}

	err := New(s, eng, zerolog.Nop()).Export(filepath.Join(t.TempDir(), "out.mp4"))
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrorKindInputNotFound))
	assert.Nil(t, eng.applied)
	assert.Empty(t, eng.exported)
	assert.Equal(t, engine.StateIdle, eng.State())
}

func TestExportAppliesCurrentOperations(t *testing.T) {
	s := editor.NewSession(writeInput(t))
	first := s.AddOverlay("one", overlay.Position{}, overlay.DefaultStyle(), nil, nil)
	eng := &fakeEngine{}
	x := New(s, eng, zerolog.Nop())

	out := filepath.Join(t.TempDir(), "nested", "dir", "out.mp4")
	require.NoError(t, x.Export(out))
	assert.Len(t, eng.applied, 1)
	assert.Equal(t, []string{out}, eng.exported)
	assert.DirExists(t, filepath.Dir(out))

	require.NoError(t, s.Remove(first.ID))
	s.AddOverlay("two", overlay.Position{}, overlay.DefaultStyle(), nil, nil)
	s.AddOverlay("three", overlay.Position{}, overlay.DefaultStyle(), nil, nil)
	require.NoError(t, x.Export(out))
	require.Len(t, eng.applied, 2)
	assert.Equal(t, "two", eng.applied[0].(overlay.TextOperation).Text)
}

func TestExportPassesEngineFailureThrough(t *testing.T) {
	s := editor.NewSession(writeInput(t))
	failure := types.NewEditError(types.ErrorKindEncodingFailure, "ffmpeg failed: boom", errors.New("exit status 1"))
	eng := &fakeEngine{exportErr: failure}

	err := New(s, eng, zerolog.Nop()).Export(filepath.Join(t.TempDir(), "out.mp4"))
	assert.True(t, types.IsKind(err, types.ErrorKindEncodingFailure))
	assert.Equal(t, engine.StateFailed, eng.State())
}

func TestEnsureOutputPath(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureOutputPath(filepath.Join(dir, "a", "clip.mov"), "mp4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a", "clip.mp4"), path)
	assert.DirExists(t, filepath.Join(dir, "a"))

	path, err = EnsureOutputPath(filepath.Join(dir, "clip.WEBM"), "webm")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clip.WEBM"), path)

	path, err = EnsureOutputPath("out", "")
	require.NoError(t, err)
	assert.Equal(t, "out", path)
}
