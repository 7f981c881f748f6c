package domain

// Stage is a step of the worker pipeline. Stages only move forward; any
// failure ends in StageAborted.
type Stage int

const (
	StageConnecting Stage = iota
	StageAwaitingLength
	StageReadingPayload
	StageValidating
	StageAllocating
	StageCopying
	StageDispatched
	StageAborted
)

// String returns a human-readable representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageConnecting:
		return "Connecting"
	case StageAwaitingLength:
		return "AwaitingLength"
	case StageReadingPayload:
		return "ReadingPayload"
	case StageValidating:
		return "Validating"
	case StageAllocating:
		return "Allocating"
	case StageCopying:
		return "Copying"
	case StageDispatched:
		return "Dispatched"
	case StageAborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no transition leaves s.
func (s Stage) Terminal() bool {
	return s == StageDispatched || s == StageAborted
}

// CanTransition reports whether the pipeline may move from s to next.
// A live stage may advance to its immediate successor or abort.
func (s Stage) CanTransition(next Stage) bool {
	if s.Terminal() {
		return false
	}
	if next == StageAborted {
		return true
	}
	return next == s+1
}
