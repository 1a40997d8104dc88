package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/video-overlay/internal/editor"
	"github.com/ZacxDev/video-overlay/internal/overlay"
	"github.com/ZacxDev/video-overlay/pkg/types"
)

func TestToPositionClamps(t *testing.T) {
	c := Canvas{Width: 640, Height: 360}
	assert.Equal(t, overlay.Position{X: 50, Y: 25}, c.ToPosition(320, 90))
	assert.Equal(t, overlay.Position{X: 0, Y: 100}, c.ToPosition(-20, 400))

	px, py := c.ToPixels(overlay.Position{X: 50, Y: 25})
	assert.Equal(t, 320.0, px)
	assert.Equal(t, 90.0, py)
}

func TestDragChangesOnlyPosition(t *testing.T) {
	s := editor.NewSession("in.mp4")
	start, duration := 2.0, 5.0
	orig := s.AddOverlay("Hi", overlay.Position{X: 10, Y: 10}, overlay.DefaultStyle(), &start, &duration)

	moved, err := Drag(s, orig.ID, Canvas{Width: 200, Height: 100}, 150, 120)
	require.NoError(t, err)
	assert.Equal(t, overlay.Position{X: 75, Y: 100}, moved.Position)

	got, err := s.Get(orig.ID)
	require.NoError(t, err)
	orig.Position = moved.Position
	assert.Equal(t, orig, got)
}

func TestDragErrors(t *testing.T) {
	s := editor.NewSession("in.mp4")
	op := s.AddOverlay("Hi", overlay.Position{}, overlay.DefaultStyle(), nil, nil)

	_, err := Drag(s, op.ID, Canvas{}, 1, 1)
	assert.Error(t, err)

	_, err = Drag(s, "missing", Canvas{Width: 10, Height: 10}, 1, 1)
	assert.True(t, types.IsKind(err, types.ErrorKindInvalidOperation))
}

func TestVisibleUsesHalfOpenWindow(t *testing.T) {
	s := editor.NewSession("in.mp4")
	a, b := 2.0, 4.0
	first := s.AddOverlay("first", overlay.Position{}, overlay.DefaultStyle(), &a, nil)
	second := s.AddOverlay("second", overlay.Position{}, overlay.DefaultStyle(), &b, nil)

	assert.Empty(t, Visible(s.Operations(), 1.99))
	assert.Equal(t, []overlay.TextOperation{first}, Visible(s.Operations(), 2))
	assert.Equal(t, []overlay.TextOperation{first, second}, Visible(s.Operations(), 6.5))
	assert.Equal(t, []overlay.TextOperation{second}, Visible(s.Operations(), 7))
	assert.Empty(t, Visible(s.Operations(), 9))
}

func TestCSSBackground(t *testing.T) {
	assert.Equal(t, "#00000080", CSSBackground(overlay.DefaultStyle()))
	assert.Equal(t, "#ff0000ff", CSSBackground(overlay.DefaultStyle().WithBackground("#ff0000", 1)))
}
