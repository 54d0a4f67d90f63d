package preferences

import (
	"time"

	"pomobar/internal/core/model"
)

// Store is the subset of the settings store the window reads and writes.
type Store interface {
	Int(key string) (int, bool)
	SetInt(key string, value int) error
}

// Settings defines editable user preferences.
type Settings struct {
	WorkMinutes  int
	BreakMinutes int
}

// DefaultSettings returns default settings for Pomobar.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:  int(model.DefaultWorkDuration / time.Minute),
		BreakMinutes: int(model.DefaultBreakDuration / time.Minute),
	}
}

// LoadSettings reads the window's settings from store, keeping defaults
// for anything missing. workSeconds is the controller's current duration.
func LoadSettings(store Store, workSeconds int) Settings {
	settings := DefaultSettings()
	if workSeconds > 0 {
		settings.WorkMinutes = model.ClampWorkMinutes(workSeconds / 60)
	}
	if seconds, ok := store.Int(model.KeyBreakDuration); ok && seconds > 0 {
		settings.BreakMinutes = model.ClampBreakMinutes(seconds / 60)
	}
	return settings
}

// SaveBreakMinutes stores the break length. Nothing else reads it.
func SaveBreakMinutes(store Store, minutes int) error {
	return store.SetInt(model.KeyBreakDuration, model.ClampBreakMinutes(minutes)*60)
}
