package filter

import (
	"math"
	"strconv"

	"github.com/ZacxDev/video-overlay/internal/overlay"
)

// Options tunes compilation.
type Options struct {
	// MediaDuration clamps overlay windows to the source length when positive.
	MediaDuration float64
}

// Compile maps operations to filter stages, one per overlay, in input order.
// It never fails: values it cannot interpret are passed through as given.
func Compile(ops []overlay.Operation, opts Options) []Stage {
	stages := make([]Stage, 0, len(ops))
	for _, op := range ops {
		switch op := op.(type) {
		case overlay.TextOperation:
			stages = append(stages, compileText(op, opts))
		}
	}
	return stages
}

// CompileText is Compile for a typed text overlay list.
func CompileText(ops []overlay.TextOperation, opts Options) []Stage {
	generic := make([]overlay.Operation, len(ops))
	for i, op := range ops {
		generic[i] = op
	}
	return Compile(generic, opts)
}

func compileText(op overlay.TextOperation, opts Options) Stage {
	xNorm, yNorm := op.Position.Normalized()
	style := op.Style

	placement := Placement{XNorm: xNorm, YNorm: yNorm, Padding: style.Padding}
	window := textWindow(op, opts.MediaDuration)

	options := []Option{
		{"fontfile", style.FontFamily},
		{"text", op.Text},
		{"expansion", "none"},
		{"x", placement.XExpression()},
		{"y", placement.YExpression()},
		{"fontsize", strconv.Itoa(style.FontSize)},
		{"fontcolor", Color(style.FontColor)},
		{"borderw", strconv.Itoa(style.BorderWidth)},
		{"bordercolor", Color(style.BorderColor)},
		{"box", "1"},
		{"boxcolor", ColorWithAlpha(style.BackgroundColor, style.BackgroundOpacity)},
		{"boxborderw", strconv.Itoa(style.Padding)},
		{"enable", window.Expression()},
	}

	return Stage{
		Name:        "drawtext",
		OperationID: op.ID,
		Options:     options,
		Window:      window,
		Placement:   placement,
	}
}

func textWindow(op overlay.TextOperation, mediaDuration float64) Window {
	w := Window{Start: op.Start, End: op.End()}
	if mediaDuration > 0 {
		w.Start = math.Min(w.Start, mediaDuration)
		w.End = math.Min(w.End, mediaDuration)
	}
	return w
}
