package editor

import "github.com/ZacxDev/video-overlay/internal/overlay"

// Patch lists the fields an edit replaces. Nil fields are left untouched.
type Patch struct {
	Text     *string
	Position *overlay.Position
	Style    *overlay.TextStyle
	Start    *float64
	Duration *float64
}

// MoveTo is the patch produced by preview-canvas drags.
func MoveTo(p overlay.Position) Patch {
	return Patch{Position: &p}
}

// Retime is the patch produced by timeline drags and resizes.
func Retime(start, duration float64) Patch {
	return Patch{Start: &start, Duration: &duration}
}

// Restyle replaces the whole style.
func Restyle(style overlay.TextStyle) Patch {
	return Patch{Style: &style}
}

func (p Patch) apply(op overlay.TextOperation) overlay.TextOperation {
	if p.Text != nil {
		op.Text = *p.Text
	}
	if p.Position != nil {
		op.Position = *p.Position
	}
	if p.Style != nil {
		op.Style = *p.Style
	}
	if p.Start != nil {
		op.Start = *p.Start
	}
	if p.Duration != nil {
		op.Duration = *p.Duration
	}
	return op
}
