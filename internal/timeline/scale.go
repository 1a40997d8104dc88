package timeline

import (
	"fmt"
	"math"

	"github.com/ZacxDev/video-overlay/internal/overlay"
)

const (
	// BasePixelsPerSecond is the track width of one second at zoom 1
	BasePixelsPerSecond = 100.0

	MinZoom     = 0.2
	MaxZoom     = 5.0
	DefaultZoom = 1.0
	ZoomStep    = 1.2
)

// TimeToPixels converts seconds to horizontal pixels at the given zoom
func TimeToPixels(t, zoom float64) float64 {
	return t * BasePixelsPerSecond * zoom
}

// PixelsToTime converts horizontal pixels back to seconds at the given zoom
func PixelsToTime(px, zoom float64) float64 {
	return px / (BasePixelsPerSecond * zoom)
}

// ClampZoom keeps zoom inside [MinZoom, MaxZoom]
func ClampZoom(zoom float64) float64 {
	return overlay.Clamp(zoom, MinZoom, MaxZoom)
}

// Marker is one labelled tick on the ruler
type Marker struct {
	Time   float64 `json:"time"`
	Offset float64 `json:"offset"`
	Label  string  `json:"label"`
}

// MarkerStep is the ruler spacing in seconds: every second when zoomed in,
// every five otherwise.
func MarkerStep(zoom float64) float64 {
	if zoom >= 1 {
		return 1
	}
	return 5
}

// FormatTime renders whole seconds as m:ss
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", whole/60, whole%60)
}
