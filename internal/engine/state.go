package engine

import "fmt"

// State is the engine lifecycle: Idle -> Configured -> Running -> Succeeded|Failed.
type State int

const (
	StateIdle State = iota
	StateConfigured
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfigured:
		return "configured"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CanConfigure reports whether ApplyOperations is allowed from s.
func (s State) CanConfigure() bool {
	return s != StateRunning
}

// CanExport reports whether Export is allowed from s. Finished engines may
// export again; the whole render is repeated.
func (s State) CanExport() bool {
	switch s {
	case StateConfigured, StateSucceeded, StateFailed:
		return true
	default:
		return false
	}
}
