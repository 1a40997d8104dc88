package filter

import "strings"

// Color converts a UI color to ffmpeg notation. Hex colors ("#RRGGBB") become
// "0xRRGGBB"; anything else is assumed to be a named color and passed through.
func Color(c string) string {
	if strings.HasPrefix(c, "#") {
		return "0x" + strings.TrimPrefix(c, "#")
	}
	return c
}

// ColorWithAlpha appends an ffmpeg alpha suffix to a converted color.
func ColorWithAlpha(c string, alpha float64) string {
	return Color(c) + "@" + formatFloat(alpha)
}
