// Package notify announces finished work sessions with an OS notification
// and the selected sound. Every call is fire-and-forget.
package notify

import (
	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"

	"pomobar/internal/core/model"
	"pomobar/internal/i18n"
)

// Fixed completion message, translated at send time.
const (
	CompletionTitle = "Work session ended"
	CompletionBody  = "Time to take a break or start again."
)

// Notifier posts OS notifications. fyne.App satisfies it; on macOS the
// driver asks for authorization the first time it posts.
type Notifier interface {
	SendNotification(*fyne.Notification)
}

// Player plays a named sound without waiting for it to finish.
type Player interface {
	Play(model.Sound) error
}

// Dispatcher announces completed sessions.
type Dispatcher struct {
	notifier Notifier
	player   Player
	logger   zerolog.Logger
	async    func(func())
}

// New creates a Dispatcher. Either collaborator may be nil.
func New(notifier Notifier, player Player, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		player:   player,
		logger:   logger,
		async: func(fn func()) {
			go fn()
		},
	}
}

// AnnounceCompletion posts the completion notification and plays sound
// unless it is Off.
func (dispatcher *Dispatcher) AnnounceCompletion(sound model.Sound) {
	if dispatcher.notifier != nil {
		dispatcher.notifier.SendNotification(fyne.NewNotification(i18n.T(CompletionTitle), i18n.T(CompletionBody)))
	}
	dispatcher.play(sound)
}

// Preview plays sound as confirmation of a selection.
func (dispatcher *Dispatcher) Preview(sound model.Sound) {
	dispatcher.play(sound)
}

func (dispatcher *Dispatcher) play(sound model.Sound) {
	if !sound.Audible() || dispatcher.player == nil {
		return
	}
	dispatcher.async(func() {
		if err := dispatcher.player.Play(sound); err != nil {
			dispatcher.logger.Debug().Err(err).Str("sound", sound.String()).Msg("sound playback failed")
		}
	})
}
