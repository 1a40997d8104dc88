package types

import (
	"encoding/json"

	"github.com/ZacxDev/video-overlay/internal/overlay"
)

// ApiResponse is the envelope every HTTP endpoint answers with
type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// TextOverlay is an overlay as clients submit it. Timestamp is the start
// time; Duration is optional.
type TextOverlay struct {
	ID        string            `json:"id,omitempty"`
	Text      string            `json:"text"`
	Position  overlay.Position  `json:"position"`
	Timestamp float64           `json:"timestamp"`
	Duration  *float64          `json:"duration,omitempty"`
	Style     overlay.TextStyle `json:"style"`
}

// UnmarshalJSON fills style fields the client left out from the default style
func (o *TextOverlay) UnmarshalJSON(b []byte) error {
	type plain TextOverlay
	decoded := plain{Style: overlay.DefaultStyle()}
	if err := json.Unmarshal(b, &decoded); err != nil {
		return err
	}
	*o = TextOverlay(decoded)
	return nil
}

// Operation converts the overlay to a text operation, using defaultDuration
// when the client sent none.
func (o TextOverlay) Operation(defaultDuration float64) overlay.TextOperation {
	duration := defaultDuration
	if o.Duration != nil {
		duration = *o.Duration
	}
	return overlay.TextOperation{
		ID:       o.ID,
		Text:     o.Text,
		Position: o.Position,
		Style:    o.Style,
		Start:    o.Timestamp,
		Duration: duration,
	}
}

// EditVideoRequest renders a list of overlays onto an uploaded video
type EditVideoRequest struct {
	VideoID      string        `json:"videoId"`
	TextOverlays []TextOverlay `json:"textOverlays"`
}

type UploadedVideo struct {
	FileName string `json:"fileName"`
}

type EditedVideo struct {
	OutputPath string `json:"outputPath"`
}
