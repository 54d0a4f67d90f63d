package session

import (
	"time"

	"pomobar/internal/core/model"
)

// State is the controller's run state.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
)

// Phase is the presentation view of the state. Idle and Paused both mean
// "not ticking"; Paused means the countdown was started and then held.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePaused  Phase = "paused"
	PhaseRunning Phase = "running"
)

// EventType defines the type of controller event.
type EventType string

const (
	EventStateChange    EventType = "state_change"
	EventProgress       EventType = "progress"
	EventCompleted      EventType = "completed"
	EventDurationChange EventType = "duration_change"
	EventSoundChange    EventType = "sound_change"
)

// Snapshot is a consistent copy of the session used for rendering.
type Snapshot struct {
	State        State
	Remaining    int
	WorkDuration int
	Sound        model.Sound
	Started      bool
}

// Phase derives the presentation phase.
func (snapshot Snapshot) Phase() Phase {
	switch {
	case snapshot.State == StateRunning:
		return PhaseRunning
	case snapshot.Started:
		return PhasePaused
	default:
		return PhaseIdle
	}
}

// Running reports whether the countdown is ticking.
func (snapshot Snapshot) Running() bool {
	return snapshot.State == StateRunning
}

// Event is delivered synchronously to listeners after each mutation.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// Listener receives controller events.
type Listener func(Event)
