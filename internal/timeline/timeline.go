// Package timeline maps overlay timing onto a zoomable horizontal track view
// and turns track gestures back into session edits.
package timeline

import (
	"math"
	"sync"

	"github.com/ZacxDev/video-overlay/internal/editor"
	"github.com/ZacxDev/video-overlay/internal/overlay"
)

// TrackKind names what a track renders
type TrackKind string

const TrackKindOverlay TrackKind = "overlay"

// Track is the timeline view of one overlay, with its bounds clamped into
// the media. It is derived from the session on every read and never stored.
type Track struct {
	ID        string                `json:"id"`
	Kind      TrackKind             `json:"type"`
	StartTime float64               `json:"startTime"`
	EndTime   float64               `json:"endTime"`
	Overlay   overlay.TextOperation `json:"data"`
}

// Timeline holds the view state for one session. A duration of zero or less
// means the media length is unknown and tracks are only bounded below.
type Timeline struct {
	session  *editor.Session
	duration float64

	mu   sync.Mutex
	zoom float64
}

// New creates a timeline over session at the default zoom
func New(session *editor.Session, duration float64) *Timeline {
	return &Timeline{
		session:  session,
		duration: duration,
		zoom:     DefaultZoom,
	}
}

// Duration returns the media length the timeline is bounded by
func (tl *Timeline) Duration() float64 {
	return tl.duration
}

func (tl *Timeline) Zoom() float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.zoom
}

// SetZoom stores zoom clamped to the supported range and returns it
func (tl *Timeline) SetZoom(zoom float64) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.zoom = ClampZoom(zoom)
	return tl.zoom
}

func (tl *Timeline) ZoomIn() float64 {
	return tl.SetZoom(tl.Zoom() * ZoomStep)
}

func (tl *Timeline) ZoomOut() float64 {
	return tl.SetZoom(tl.Zoom() / ZoomStep)
}

// Width is the pixel width of the whole media at the current zoom
func (tl *Timeline) Width() float64 {
	if tl.duration <= 0 {
		return 0
	}
	return TimeToPixels(tl.duration, tl.Zoom())
}

// Tracks returns one track per text overlay, in session order
func (tl *Timeline) Tracks() []Track {
	ops := tl.session.TextOperations()
	tracks := make([]Track, 0, len(ops))
	for _, op := range ops {
		tracks = append(tracks, tl.trackOf(op))
	}
	return tracks
}

// Track returns the track for one overlay
func (tl *Timeline) Track(id string) (Track, error) {
	op, err := tl.session.Get(id)
	if err != nil {
		return Track{}, err
	}
	return tl.trackOf(op), nil
}

// ApplyDrag slides a track by delta seconds. The span is kept intact: delta
// is clamped so the track stays within [0, duration].
func (tl *Timeline) ApplyDrag(id string, delta float64) (Track, error) {
	op, err := tl.session.Get(id)
	if err != nil {
		return Track{}, err
	}
	start, end := op.Start, op.End()

	lo := -start
	hi := tl.upper() - end
	if hi < lo {
		// already longer than the media, only pin the start
		hi = lo
	}
	delta = overlay.Clamp(delta, lo, hi)

	return tl.retime(id, start+delta, end+delta)
}

// DragPixels is ApplyDrag with the delta measured in pixels at the current zoom
func (tl *Timeline) DragPixels(id string, deltaPx float64) (Track, error) {
	return tl.ApplyDrag(id, PixelsToTime(deltaPx, tl.Zoom()))
}

// ApplyResize moves the start (isStart) or end bound by delta seconds. The
// moving bound stops at the frame edge and at the opposite bound.
func (tl *Timeline) ApplyResize(id string, isStart bool, delta float64) (Track, error) {
	op, err := tl.session.Get(id)
	if err != nil {
		return Track{}, err
	}
	start, end := op.Start, op.End()

	if isStart {
		start = overlay.Clamp(start+delta, 0, math.Max(end, 0))
	} else {
		end = overlay.Clamp(end+delta, start, math.Max(tl.upper(), start))
	}
	return tl.retime(id, start, end)
}

// ResizePixels is ApplyResize with the delta measured in pixels
func (tl *Timeline) ResizePixels(id string, isStart bool, deltaPx float64) (Track, error) {
	return tl.ApplyResize(id, isStart, PixelsToTime(deltaPx, tl.Zoom()))
}

// DeleteTrack removes the overlay behind a track from the session
func (tl *Timeline) DeleteTrack(id string) error {
	return tl.session.Remove(id)
}

// Seek converts a click offset in pixels to a playhead time in [0, duration]
func (tl *Timeline) Seek(px float64) float64 {
	return overlay.Clamp(PixelsToTime(px, tl.Zoom()), 0, tl.upper())
}

// Markers lists the ruler ticks from 0 through the media duration
func (tl *Timeline) Markers() []Marker {
	zoom := tl.Zoom()
	step := MarkerStep(zoom)

	var markers []Marker
	for i := 0; ; i++ {
		t := float64(i) * step
		if t > tl.duration && i > 0 {
			break
		}
		markers = append(markers, Marker{
			Time:   t,
			Offset: TimeToPixels(t, zoom),
			Label:  FormatTime(t),
		})
	}
	return markers
}

func (tl *Timeline) upper() float64 {
	if tl.duration <= 0 {
		return math.Inf(1)
	}
	return tl.duration
}

func (tl *Timeline) retime(id string, start, end float64) (Track, error) {
	op, err := tl.session.ApplyEdit(id, editor.Retime(start, end-start))
	if err != nil {
		return Track{}, err
	}
	return tl.trackOf(op), nil
}

func (tl *Timeline) trackOf(op overlay.TextOperation) Track {
	upper := tl.upper()
	start := overlay.Clamp(op.Start, 0, upper)
	return Track{
		ID:        op.ID,
		Kind:      TrackKindOverlay,
		StartTime: start,
		EndTime:   overlay.Clamp(op.End(), start, upper),
		Overlay:   op,
	}
}
