package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/video-overlay/internal/overlay"
)

type recordingEngine struct {
	input string
	opts  Options
	state State
}

func (e *recordingEngine) ApplyOperations([]overlay.Operation) error {
	e.state = StateConfigured
	return nil
}

func (e *recordingEngine) Export(string) error {
	e.state = StateSucceeded
	return nil
}

func (e *recordingEngine) State() State { return e.state }

func TestRegistryBuildsWithDefaultPlatform(t *testing.T) {
	Register("recording", func(input string, opts Options) (Engine, error) {
		return &recordingEngine{input: input, opts: opts}, nil
	})

	e, err := New("recording", "in.mp4", Options{})
	require.NoError(t, err)
	rec := e.(*recordingEngine)
	assert.Equal(t, "in.mp4", rec.input)
	require.NotNil(t, rec.opts.Platform)
	assert.Equal(t, "web", rec.opts.Platform.GetName())
	assert.Contains(t, Names(), "recording")
}

func TestNewUnknownEngine(t *testing.T) {
	_, err := New("gstreamer", "in.mp4", Options{})
	assert.EqualError(t, err, "unsupported engine: gstreamer")
}

func TestStateTransitions(t *testing.T) {
	assert.True(t, StateIdle.CanConfigure())
	assert.False(t, StateRunning.CanConfigure())
	assert.True(t, StateFailed.CanConfigure())

	assert.False(t, StateIdle.CanExport())
	assert.False(t, StateRunning.CanExport())
	assert.True(t, StateConfigured.CanExport())
	assert.True(t, StateSucceeded.CanExport())
	assert.True(t, StateFailed.CanExport())

	assert.Equal(t, "running", StateRunning.String())
}
