// Package preview maps pointer positions on the preview canvas to overlay
// positions and decides which overlays show at a playhead time.
package preview

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/ZacxDev/video-overlay/internal/editor"
	"github.com/ZacxDev/video-overlay/internal/filter"
	"github.com/ZacxDev/video-overlay/internal/overlay"
)

// Canvas is the rendered size of the preview in pixels
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (c Canvas) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("invalid canvas size %gx%g", c.Width, c.Height)
	}
	return nil
}

// ToPosition converts a pointer offset inside the canvas to a percentage
// position, clamped to the frame.
func (c Canvas) ToPosition(px, py float64) overlay.Position {
	return overlay.Position{
		X: px / c.Width * 100,
		Y: py / c.Height * 100,
	}.Clamp()
}

// ToPixels is the inverse of ToPosition for positions inside the frame
func (c Canvas) ToPixels(p overlay.Position) (px, py float64) {
	p = p.Clamp()
	return p.X / 100 * c.Width, p.Y / 100 * c.Height
}

// Drag moves an overlay to the pointer position. Only the position changes.
func Drag(session *editor.Session, id string, canvas Canvas, px, py float64) (overlay.TextOperation, error) {
	if err := canvas.validate(); err != nil {
		return overlay.TextOperation{}, err
	}
	return session.ApplyEdit(id, editor.MoveTo(canvas.ToPosition(px, py)))
}

// Visible returns the text overlays shown at time t, in list order. The
// window is the same half-open one the filter compiler emits.
func Visible(ops []overlay.Operation, t float64) []overlay.TextOperation {
	var out []overlay.TextOperation
	for _, op := range ops {
		text, ok := op.(overlay.TextOperation)
		if !ok {
			continue
		}
		w := filter.Window{Start: text.Start, End: text.End()}
		if w.Active(t) {
			out = append(out, text)
		}
	}
	return out
}

// CSSBackground renders the style's box color with its opacity folded in as
// an #RRGGBBAA hex string.
func CSSBackground(style overlay.TextStyle) string {
	alpha := int(math.Round(overlay.Clamp(style.BackgroundOpacity, 0, 1) * 255))
	return fmt.Sprintf("%s%02x", style.BackgroundColor, alpha)
}
