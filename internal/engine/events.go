package engine

import "time"

// EventKind tags a build lifecycle event.
type EventKind int

const (
	// EventStart signals that a watch session has begun.
	EventStart EventKind = iota
	// EventStageStart signals the beginning of one bundle rebuild.
	EventStageStart
	// EventStageEnd signals a completed rebuild, carrying its duration.
	EventStageEnd
	// EventComplete signals a finished batch build.
	EventComplete
	// EventError reports a recoverable rebuild failure; the session
	// continues to react to file changes.
	EventError
	// EventFatal reports an unrecoverable session failure.
	EventFatal
	// EventEnd signals a graceful session shutdown.
	EventEnd
)

// String returns the event kind's wire-style name.
func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventStageStart:
		return "stage_start"
	case EventStageEnd:
		return "stage_end"
	case EventComplete:
		return "complete"
	case EventError:
		return "error"
	case EventFatal:
		return "fatal"
	case EventEnd:
		return "end"
	}
	return "unknown"
}

// Event is one build lifecycle event. It is a plain value carrying no
// references into pipeline state.
type Event struct {
	Kind EventKind
	// Duration is set on EventStageEnd.
	Duration time.Duration
	// Detail is set on EventError and EventFatal.
	Detail string
}

// SessionState is the watch session's coarse lifecycle state.
type SessionState int32

const (
	// StateIdle is the initial state, before Watch is called.
	StateIdle SessionState = iota
	// StateStarting covers session setup up to the first watch registration.
	StateStarting
	// StateWatching means the session is waiting for file changes.
	StateWatching
	// StateRebuilding means a rebuild cycle is in flight.
	StateRebuilding
	// StateTerminated is the terminal state, entered on fatal events or
	// shutdown.
	StateTerminated
)

// String returns the state's name.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateWatching:
		return "watching"
	case StateRebuilding:
		return "rebuilding"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}
