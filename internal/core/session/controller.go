package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pomobar/internal/core/model"
)

// SettingsStore persists the session keys between runs.
type SettingsStore interface {
	Int(key string) (int, bool)
	SetInt(key string, value int) error
	String(key string) (string, bool)
	SetString(key string, value string) error
}

// Dispatcher announces completed sessions and previews sounds.
type Dispatcher interface {
	AnnounceCompletion(sound model.Sound)
	Preview(sound model.Sound)
}

// Config contains runtime options for the Controller.
type Config struct {
	TickInterval time.Duration
	Logger       zerolog.Logger
	Now          func() time.Time
}

// Controller owns the countdown state machine for a single work session.
type Controller struct {
	mu           sync.Mutex
	store        SettingsStore
	clock        Clock
	dispatcher   Dispatcher
	options      Config
	logger       zerolog.Logger
	state        State
	remaining    int
	workDuration int
	sound        model.Sound
	started      bool
	ticker       Ticker
	generation   uint64
	listeners    []Listener
}

// New creates a Controller seeded from store.
func New(store SettingsStore, clock Clock, dispatcher Dispatcher, options Config) *Controller {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	controller := &Controller{
		store:      store,
		clock:      clock,
		dispatcher: dispatcher,
		options:    options,
		logger:     options.Logger,
		state:      StateStopped,
	}
	controller.restore()
	return controller
}

// restore applies the startup sequencing: a saved remaining time wins and
// also becomes the work duration.
func (controller *Controller) restore() {
	maxDuration := model.MaxWorkMinutes * 60

	workDuration := int(model.DefaultWorkDuration / time.Second)
	if saved, ok := controller.store.Int(model.KeyWorkDuration); ok && saved > 0 {
		workDuration = clampWorkSeconds(saved)
	}

	remaining := workDuration
	if saved, ok := controller.store.Int(model.KeyTimeRemaining); ok && saved > 0 {
		remaining = min(saved, maxDuration)
		workDuration = clampWorkSeconds(remaining)
		controller.persistInt(model.KeyWorkDuration, workDuration)
	}

	sound := model.DefaultSound
	if saved, ok := controller.store.String(model.KeySelectedSound); ok {
		sound = model.ParseSound(saved)
	}

	controller.workDuration = workDuration
	controller.remaining = remaining
	controller.sound = sound

	controller.logger.Debug().
		Int("remaining", remaining).
		Int("work_duration", workDuration).
		Str("sound", sound.String()).
		Msg("session restored")
}

// Subscribe registers a listener. Listeners run synchronously on the
// goroutine that caused the mutation.
func (controller *Controller) Subscribe(listener Listener) {
	if listener == nil {
		return
	}
	controller.mu.Lock()
	controller.listeners = append(controller.listeners, listener)
	controller.mu.Unlock()
}

// Snapshot returns a copy of the current session.
func (controller *Controller) Snapshot() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.snapshotLocked()
}

// Start arms the tick source. It is a no-op while running.
func (controller *Controller) Start() {
	controller.mu.Lock()
	if controller.state == StateRunning {
		controller.mu.Unlock()
		return
	}
	if controller.remaining <= 0 {
		controller.remaining = controller.workDuration
	}
	controller.state = StateRunning
	controller.started = true
	controller.armLocked()
	snapshot := controller.snapshotLocked()
	controller.mu.Unlock()

	controller.logger.Info().Int("remaining", snapshot.Remaining).Msg("session started")
	controller.emit(EventStateChange, snapshot)
}

// Pause disarms the tick source and keeps the remaining time.
func (controller *Controller) Pause() {
	controller.mu.Lock()
	if controller.state != StateRunning {
		controller.mu.Unlock()
		return
	}
	controller.disarmLocked()
	controller.state = StateStopped
	snapshot := controller.snapshotLocked()
	controller.mu.Unlock()

	controller.logger.Info().Int("remaining", snapshot.Remaining).Msg("session paused")
	controller.emit(EventStateChange, snapshot)
}

// Reset stops the countdown and refills it to the work duration.
func (controller *Controller) Reset() {
	controller.mu.Lock()
	controller.resetLocked()
	snapshot := controller.snapshotLocked()
	controller.mu.Unlock()

	controller.logger.Info().Msg("session reset")
	controller.emit(EventStateChange, snapshot)
}

// Tick advances the running countdown by one second.
func (controller *Controller) Tick() {
	controller.mu.Lock()
	generation := controller.generation
	controller.mu.Unlock()
	controller.tick(generation)
}

// SetWorkDuration changes the session length and resets the session,
// stopping it if it was running.
func (controller *Controller) SetWorkDuration(minutes int) {
	minutes = model.ClampWorkMinutes(minutes)

	controller.mu.Lock()
	controller.workDuration = minutes * 60
	controller.resetLocked()
	snapshot := controller.snapshotLocked()
	controller.mu.Unlock()

	controller.persistInt(model.KeyWorkDuration, snapshot.WorkDuration)
	controller.logger.Info().Int("minutes", minutes).Msg("work duration changed")
	controller.emit(EventDurationChange, snapshot)
}

// SelectSound sets the completion sound and previews it.
func (controller *Controller) SelectSound(name string) {
	sound := model.ParseSound(name)

	controller.mu.Lock()
	controller.sound = sound
	snapshot := controller.snapshotLocked()
	controller.mu.Unlock()

	if err := controller.store.SetString(model.KeySelectedSound, sound.String()); err != nil {
		controller.logger.Warn().Err(err).Str("key", model.KeySelectedSound).Msg("persist setting")
	}
	controller.emit(EventSoundChange, snapshot)

	if sound.Audible() && controller.dispatcher != nil {
		controller.dispatcher.Preview(sound)
	}
}

// Shutdown disarms the tick source and saves the remaining time.
func (controller *Controller) Shutdown() error {
	controller.mu.Lock()
	controller.disarmLocked()
	controller.state = StateStopped
	remaining := controller.remaining
	controller.mu.Unlock()

	return controller.store.SetInt(model.KeyTimeRemaining, remaining)
}

func (controller *Controller) tick(generation uint64) {
	controller.mu.Lock()
	if controller.state != StateRunning || generation != controller.generation {
		controller.mu.Unlock()
		return
	}

	if controller.remaining > 0 {
		controller.remaining--
		progress := controller.snapshotLocked()
		controller.mu.Unlock()
		controller.emit(EventProgress, progress)
		if progress.Remaining > 0 {
			return
		}

		// A listener may have paused or reset the session on the final frame.
		controller.mu.Lock()
		if controller.state != StateRunning || generation != controller.generation {
			controller.mu.Unlock()
			return
		}
	}

	controller.disarmLocked()
	controller.state = StateStopped
	sound := controller.sound
	completed := controller.snapshotLocked()
	controller.remaining = controller.workDuration
	controller.started = false
	rearmed := controller.snapshotLocked()
	controller.mu.Unlock()

	controller.logger.Info().Str("sound", sound.String()).Msg("session completed")
	if controller.dispatcher != nil {
		controller.dispatcher.AnnounceCompletion(sound)
	}
	controller.emit(EventCompleted, completed)
	controller.emit(EventStateChange, rearmed)
}

// clampWorkSeconds keeps a stored duration inside the slider range.
func clampWorkSeconds(seconds int) int {
	return min(max(seconds, model.MinWorkMinutes*60), model.MaxWorkMinutes*60)
}

func (controller *Controller) armLocked() {
	controller.disarmLocked()
	generation := controller.generation
	controller.ticker = controller.clock.Every(controller.options.TickInterval, func() {
		controller.tick(generation)
	})
}

func (controller *Controller) disarmLocked() {
	if controller.ticker != nil {
		controller.ticker.Stop()
		controller.ticker = nil
	}
	controller.generation++
}

func (controller *Controller) resetLocked() {
	controller.disarmLocked()
	controller.state = StateStopped
	controller.started = false
	controller.remaining = controller.workDuration
}

func (controller *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:        controller.state,
		Remaining:    controller.remaining,
		WorkDuration: controller.workDuration,
		Sound:        controller.sound,
		Started:      controller.started,
	}
}

func (controller *Controller) persistInt(key string, value int) {
	if err := controller.store.SetInt(key, value); err != nil {
		controller.logger.Warn().Err(err).Str("key", key).Msg("persist setting")
	}
}

func (controller *Controller) emit(eventType EventType, snapshot Snapshot) {
	controller.mu.Lock()
	listeners := append([]Listener(nil), controller.listeners...)
	controller.mu.Unlock()

	event := Event{
		Type:     eventType,
		Snapshot: snapshot,
		At:       controller.options.Now(),
	}
	for _, listener := range listeners {
		listener(event)
	}
}
