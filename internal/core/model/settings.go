package model

import "time"

// Persisted settings keys.
const (
	KeyTimeRemaining = "timeRemaining"
	KeyWorkDuration  = "workDuration"
	KeySelectedSound = "selectedSound"
	KeyBreakDuration = "breakDuration"
)

// Work duration bounds, in minutes.
const (
	MinWorkMinutes = 1
	MaxWorkMinutes = 90
)

// Break duration bounds, in minutes.
const (
	MinBreakMinutes = 1
	MaxBreakMinutes = 30
)

const (
	// DefaultWorkDuration is used when no duration has been saved.
	DefaultWorkDuration = 30 * time.Minute
	// DefaultBreakDuration is the stored break length. Nothing consumes it yet.
	DefaultBreakDuration = 5 * time.Minute
	// DefaultSound is the completion sound for a fresh install.
	DefaultSound = SoundPing
)

// ClampWorkMinutes keeps minutes inside [MinWorkMinutes, MaxWorkMinutes].
func ClampWorkMinutes(minutes int) int {
	if minutes < MinWorkMinutes {
		return MinWorkMinutes
	}
	if minutes > MaxWorkMinutes {
		return MaxWorkMinutes
	}
	return minutes
}

// ClampBreakMinutes keeps minutes inside [MinBreakMinutes, MaxBreakMinutes].
func ClampBreakMinutes(minutes int) int {
	if minutes < MinBreakMinutes {
		return MinBreakMinutes
	}
	if minutes > MaxBreakMinutes {
		return MaxBreakMinutes
	}
	return minutes
}
