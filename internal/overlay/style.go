package overlay

// TextStyle describes how an overlay's text is drawn. It is a value type:
// edits replace the whole style rather than mutating fields in place.
type TextStyle struct {
	FontFamily        string  `json:"fontFamily"` // font file path handed to drawtext
	FontSize          int     `json:"fontSize"`
	FontColor         string  `json:"fontColor"`
	BackgroundColor   string  `json:"backgroundColor"`
	BackgroundOpacity float64 `json:"backgroundOpacity"` // 0-1
	Padding           int     `json:"padding"`
	BorderWidth       int     `json:"borderWidth"`
	BorderColor       string  `json:"borderColor"`
}

const (
	DefaultFontFamily        = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
	DefaultFontSize          = 32
	DefaultFontColor         = "#FFFFFF"
	DefaultBackgroundColor   = "#000000"
	DefaultBackgroundOpacity = 0.5
	DefaultPadding           = 10
	DefaultBorderWidth       = 2
	DefaultBorderColor       = "#000000"
)

// DefaultStyle returns the style new overlays start with.
func DefaultStyle() TextStyle {
	return TextStyle{
		FontFamily:        DefaultFontFamily,
		FontSize:          DefaultFontSize,
		FontColor:         DefaultFontColor,
		BackgroundColor:   DefaultBackgroundColor,
		BackgroundOpacity: DefaultBackgroundOpacity,
		Padding:           DefaultPadding,
		BorderWidth:       DefaultBorderWidth,
		BorderColor:       DefaultBorderColor,
	}
}

// WithFontColor returns a copy of the style with a new font color.
func (s TextStyle) WithFontColor(color string) TextStyle {
	s.FontColor = color
	return s
}

// WithFontSize returns a copy of the style with a new font size.
func (s TextStyle) WithFontSize(size int) TextStyle {
	s.FontSize = size
	return s
}

// WithBackground returns a copy of the style with a new box fill.
func (s TextStyle) WithBackground(color string, opacity float64) TextStyle {
	s.BackgroundColor = color
	s.BackgroundOpacity = opacity
	return s
}

// WithBorder returns a copy of the style with a new outline.
func (s TextStyle) WithBorder(color string, width int) TextStyle {
	s.BorderColor = color
	s.BorderWidth = width
	return s
}

// WithPadding returns a copy of the style with new padding.
func (s TextStyle) WithPadding(padding int) TextStyle {
	s.Padding = padding
	return s
}

// Position is a point in percentage-of-frame coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Clamp returns the position with both axes forced into [0,100].
func (p Position) Clamp() Position {
	return Position{
		X: Clamp(p.X, 0, 100),
		Y: Clamp(p.Y, 0, 100),
	}
}

// Normalized returns the clamped position scaled to [0,1].
func (p Position) Normalized() (x, y float64) {
	c := p.Clamp()
	return c.X / 100, c.Y / 100
}
