package editor

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ZacxDev/video-overlay/internal/overlay"
	"github.com/ZacxDev/video-overlay/pkg/types"
)

// Session is the single editing context tying one input video to its ordered
// overlay list. All mutations go through its methods.
type Session struct {
	ID        string
	InputPath string

	mu         sync.Mutex
	operations []overlay.Operation
}

// NewSession creates an empty session for the given input.
func NewSession(inputPath string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		InputPath: inputPath,
	}
}

// AddText appends a normalized copy of op and returns it. An operation
// without an ID gets a fresh one.
func (s *Session) AddText(op overlay.TextOperation) overlay.TextOperation {
	op = op.Normalize()
	if op.ID == "" {
		op.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.operations = append(s.operations, op)
	return op
}

// AddOverlay is the positional form of AddText. Nil start and duration take
// the package defaults.
func (s *Session) AddOverlay(text string, position overlay.Position, style overlay.TextStyle, start, duration *float64) overlay.TextOperation {
	op := overlay.TextOperation{
		Text:     text,
		Position: position,
		Style:    style,
		Start:    overlay.DefaultStart,
		Duration: overlay.DefaultDuration,
	}
	if start != nil {
		op.Start = *start
	}
	if duration != nil {
		op.Duration = *duration
	}
	return s.AddText(op)
}

// Operations returns a copy of the ordered operation list.
func (s *Session) Operations() []overlay.Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]overlay.Operation, len(s.operations))
	copy(out, s.operations)
	return out
}

// TextOperations returns a copy of the text operations in list order.
func (s *Session) TextOperations() []overlay.TextOperation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]overlay.TextOperation, 0, len(s.operations))
	for _, op := range s.operations {
		if text, ok := op.(overlay.TextOperation); ok {
			out = append(out, text)
		}
	}
	return out
}

// Len returns the number of operations in the session.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.operations)
}

// Get returns the text operation with the given ID.
func (s *Session) Get(id string) (overlay.TextOperation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexOf(id)
	if err != nil {
		return overlay.TextOperation{}, err
	}
	return s.textAt(i)
}

// Remove deletes the operation with the given ID.
func (s *Session) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexOf(id)
	if err != nil {
		return err
	}
	s.operations = append(s.operations[:i], s.operations[i+1:]...)
	return nil
}

// ApplyEdit replaces the fields set in patch on the operation with the given
// ID and returns the new value. It is the only way existing operations change.
func (s *Session) ApplyEdit(id string, patch Patch) (overlay.TextOperation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.indexOf(id)
	if err != nil {
		return overlay.TextOperation{}, err
	}
	op, err := s.textAt(i)
	if err != nil {
		return overlay.TextOperation{}, err
	}
	op = patch.apply(op)
	s.operations[i] = op
	return op, nil
}

// Find resolves an operation by its text and start time, for clients that
// address overlays without IDs. A missing or non-unique match is an error.
func (s *Session) Find(text string, start float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found []string
	for _, op := range s.operations {
		if t, ok := op.(overlay.TextOperation); ok && t.Text == text && t.Start == start {
			found = append(found, t.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", types.NewEditError(types.ErrorKindInvalidOperation,
			fmt.Sprintf("no overlay %q at %gs", text, start), nil)
	case 1:
		return found[0], nil
	default:
		return "", types.NewEditError(types.ErrorKindInvalidOperation,
			fmt.Sprintf("%d overlays match %q at %gs", len(found), text, start), nil)
	}
}

func (s *Session) indexOf(id string) (int, error) {
	for i, op := range s.operations {
		if op.OperationID() == id {
			return i, nil
		}
	}
	return -1, types.NewEditError(types.ErrorKindInvalidOperation, fmt.Sprintf("unknown overlay %s", id), nil)
}

func (s *Session) textAt(i int) (overlay.TextOperation, error) {
	switch op := s.operations[i].(type) {
	case overlay.TextOperation:
		return op, nil
	default:
		return overlay.TextOperation{}, types.NewEditError(types.ErrorKindInvalidOperation,
			fmt.Sprintf("operation %s is not a text overlay", op.OperationID()), nil)
	}
}
