package overlay

import "fmt"

// Kind discriminates the operation union.
type Kind string

const (
	KindText Kind = "text"
)

const (
	// DefaultStart and DefaultDuration are applied to text operations that
	// do not carry their own timing.
	DefaultStart    = 0.0
	DefaultDuration = 5.0
)

// Operation is the closed set of edits a session can hold. Only types in this
// package implement it; interpreters type-switch over the concrete kinds.
type Operation interface {
	Kind() Kind
	OperationID() string
	isOperation()
}

// TextOperation places a timed text overlay on the video.
type TextOperation struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Position Position  `json:"position"`
	Style    TextStyle `json:"style"`
	Start    float64   `json:"start"`
	Duration float64   `json:"duration"`
}

func (TextOperation) Kind() Kind { return KindText }

func (o TextOperation) OperationID() string { return o.ID }

func (TextOperation) isOperation() {}

// End is the exclusive end of the overlay's visibility window in seconds.
func (o TextOperation) End() float64 {
	return o.Start + o.Duration
}

// Normalize applies timing defaults: a negative start becomes 0 and a
// non-positive duration becomes DefaultDuration.
func (o TextOperation) Normalize() TextOperation {
	if o.Start < 0 {
		o.Start = DefaultStart
	}
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	return o
}

func (o TextOperation) String() string {
	return fmt.Sprintf("text %q [%g,%g) at (%g%%,%g%%)", o.Text, o.Start, o.End(), o.Position.X, o.Position.Y)
}
