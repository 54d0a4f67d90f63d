package session

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomobar/internal/core/model"
	"pomobar/internal/storage"
)

type fakeClock struct {
	tickers []*fakeTicker
}

type fakeTicker struct {
	fn      func()
	stopped bool
}

func (ticker *fakeTicker) Stop() {
	ticker.stopped = true
}

func (clock *fakeClock) Every(_ time.Duration, fn func()) Ticker {
	ticker := &fakeTicker{fn: fn}
	clock.tickers = append(clock.tickers, ticker)
	return ticker
}

func (clock *fakeClock) active() []*fakeTicker {
	var live []*fakeTicker
	for _, ticker := range clock.tickers {
		if !ticker.stopped {
			live = append(live, ticker)
		}
	}
	return live
}

// fire delivers one tick from every live source.
func (clock *fakeClock) fire() {
	for _, ticker := range clock.active() {
		ticker.fn()
	}
}

type recordingDispatcher struct {
	completions []model.Sound
	previews    []model.Sound
}

func (dispatcher *recordingDispatcher) AnnounceCompletion(sound model.Sound) {
	dispatcher.completions = append(dispatcher.completions, sound)
}

func (dispatcher *recordingDispatcher) Preview(sound model.Sound) {
	dispatcher.previews = append(dispatcher.previews, sound)
}

type harness struct {
	store      *storage.MemoryStore
	clock      *fakeClock
	dispatcher *recordingDispatcher
	controller *Controller
	events     []Event
}

func newHarness(t *testing.T, store *storage.MemoryStore) *harness {
	t.Helper()
	if store == nil {
		store = storage.NewMemoryStore()
	}
	h := &harness{
		store:      store,
		clock:      &fakeClock{},
		dispatcher: &recordingDispatcher{},
	}
	h.controller = New(h.store, h.clock, h.dispatcher, Config{Logger: zerolog.Nop()})
	h.controller.Subscribe(func(event Event) {
		h.events = append(h.events, event)
	})
	return h
}

func (h *harness) countEvents(eventType EventType) int {
	count := 0
	for _, event := range h.events {
		if event.Type == eventType {
			count++
		}
	}
	return count
}

func TestNewUsesDefaults(t *testing.T) {
	h := newHarness(t, nil)

	snapshot := h.controller.Snapshot()
	assert.Equal(t, StateStopped, snapshot.State)
	assert.Equal(t, 1800, snapshot.WorkDuration)
	assert.Equal(t, 1800, snapshot.Remaining)
	assert.Equal(t, model.SoundPing, snapshot.Sound)
	assert.Equal(t, PhaseIdle, snapshot.Phase())
}

func TestNewResumesSavedRemaining(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.SetInt(model.KeyWorkDuration, 2400))
	require.NoError(t, store.SetInt(model.KeyTimeRemaining, 900))

	h := newHarness(t, store)

	snapshot := h.controller.Snapshot()
	assert.Equal(t, 900, snapshot.Remaining)
	assert.Equal(t, 900, snapshot.WorkDuration)

	saved, ok := store.Int(model.KeyWorkDuration)
	require.True(t, ok)
	assert.Equal(t, 900, saved, "resumed length is written back as the work duration")
}

func TestNewSeedsFromWorkDurationWhenNoRemaining(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.SetInt(model.KeyWorkDuration, 1500))
	require.NoError(t, store.SetInt(model.KeyTimeRemaining, 0))

	snapshot := newHarness(t, store).controller.Snapshot()
	assert.Equal(t, 1500, snapshot.Remaining)
	assert.Equal(t, 1500, snapshot.WorkDuration)
}

func TestNewClampsResumedValues(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.SetInt(model.KeyTimeRemaining, 30))

	snapshot := newHarness(t, store).controller.Snapshot()
	assert.Equal(t, 30, snapshot.Remaining)
	assert.Equal(t, 60, snapshot.WorkDuration)

	store = storage.NewMemoryStore()
	require.NoError(t, store.SetInt(model.KeyTimeRemaining, 100000))

	snapshot = newHarness(t, store).controller.Snapshot()
	assert.Equal(t, 5400, snapshot.Remaining)
	assert.Equal(t, 5400, snapshot.WorkDuration)

	store = storage.NewMemoryStore()
	require.NoError(t, store.SetInt(model.KeyWorkDuration, 30))

	snapshot = newHarness(t, store).controller.Snapshot()
	assert.Equal(t, 60, snapshot.Remaining)
	assert.Equal(t, 60, snapshot.WorkDuration)

	store = storage.NewMemoryStore()
	require.NoError(t, store.SetInt(model.KeyWorkDuration, 9000))

	snapshot = newHarness(t, store).controller.Snapshot()
	assert.Equal(t, 5400, snapshot.Remaining)
	assert.Equal(t, 5400, snapshot.WorkDuration)
}

func TestNewTreatsUnknownSoundAsOff(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.SetString(model.KeySelectedSound, "Sosumi"))

	snapshot := newHarness(t, store).controller.Snapshot()
	assert.Equal(t, model.SoundOff, snapshot.Sound)
}

func TestStartIsIdempotent(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.Start()
	h.controller.Start()

	assert.Len(t, h.clock.active(), 1)
	assert.Len(t, h.clock.tickers, 1)
	assert.Equal(t, StateRunning, h.controller.Snapshot().State)
	assert.Equal(t, 1, h.countEvents(EventStateChange))
}

func TestPauseKeepsRemaining(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.Start()
	h.clock.fire()
	h.clock.fire()
	h.controller.Pause()

	snapshot := h.controller.Snapshot()
	assert.Equal(t, StateStopped, snapshot.State)
	assert.Equal(t, 1798, snapshot.Remaining)
	assert.Equal(t, PhasePaused, snapshot.Phase())
	assert.Empty(t, h.clock.active())
}

func TestPauseWhileStoppedIsNoop(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.Pause()

	assert.Empty(t, h.events)
}

func TestTickWhileStoppedIsNoop(t *testing.T) {
	h := newHarness(t, nil)
	before := h.controller.Snapshot()

	h.controller.Tick()

	assert.Equal(t, before, h.controller.Snapshot())
	assert.Empty(t, h.events)
}

func TestStaleTickAfterPauseIsIgnored(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.Start()
	stale := h.clock.tickers[0]
	h.controller.Pause()
	h.controller.Start()

	stale.fn()
	assert.Equal(t, 1800, h.controller.Snapshot().Remaining)

	h.clock.fire()
	assert.Equal(t, 1799, h.controller.Snapshot().Remaining)
}

func TestResetRefillsAndStops(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.Start()
	for i := 0; i < 10; i++ {
		h.clock.fire()
	}
	h.controller.Reset()

	snapshot := h.controller.Snapshot()
	assert.Equal(t, StateStopped, snapshot.State)
	assert.Equal(t, 1800, snapshot.Remaining)
	assert.Equal(t, PhaseIdle, snapshot.Phase())
	assert.Empty(t, h.clock.active())
}

func TestSetWorkDurationResetsFromAnyPhase(t *testing.T) {
	for minutes := model.MinWorkMinutes; minutes <= model.MaxWorkMinutes; minutes++ {
		h := newHarness(t, nil)
		switch minutes % 3 {
		case 1:
			h.controller.Start()
			h.clock.fire()
		case 2:
			h.controller.Start()
			h.clock.fire()
			h.controller.Pause()
		}

		h.controller.SetWorkDuration(minutes)

		snapshot := h.controller.Snapshot()
		assert.Equal(t, minutes*60, snapshot.WorkDuration)
		assert.Equal(t, snapshot.WorkDuration, snapshot.Remaining)
		assert.Equal(t, StateStopped, snapshot.State)
		assert.Empty(t, h.clock.active())

		saved, ok := h.store.Int(model.KeyWorkDuration)
		require.True(t, ok)
		assert.Equal(t, minutes*60, saved)
	}
}

func TestSetWorkDurationClamps(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.SetWorkDuration(0)
	assert.Equal(t, 60, h.controller.Snapshot().WorkDuration)

	h.controller.SetWorkDuration(500)
	assert.Equal(t, 5400, h.controller.Snapshot().WorkDuration)
	assert.Equal(t, 2, h.countEvents(EventDurationChange))
}

func TestCountdownCompletesOnce(t *testing.T) {
	h := newHarness(t, nil)
	h.controller.SetWorkDuration(1)
	h.events = nil

	h.controller.Start()
	for i := 0; i < 60; i++ {
		h.clock.fire()
	}

	require.Len(t, h.dispatcher.completions, 1)
	assert.Equal(t, model.SoundPing, h.dispatcher.completions[0])

	var completed *Event
	for i := range h.events {
		if h.events[i].Type == EventCompleted {
			completed = &h.events[i]
		}
	}
	require.NotNil(t, completed)
	assert.Equal(t, 0, completed.Snapshot.Remaining)
	assert.Equal(t, StateStopped, completed.Snapshot.State)

	snapshot := h.controller.Snapshot()
	assert.Equal(t, 60, snapshot.Remaining)
	assert.Equal(t, StateStopped, snapshot.State)
	assert.Equal(t, PhaseIdle, snapshot.Phase())
	assert.Empty(t, h.clock.active())

	h.clock.fire()
	assert.Len(t, h.dispatcher.completions, 1)
}

func TestProgressEventPerTick(t *testing.T) {
	h := newHarness(t, nil)
	h.controller.Start()
	h.events = nil

	for i := 0; i < 5; i++ {
		h.clock.fire()
	}

	require.Equal(t, 5, h.countEvents(EventProgress))
	assert.Equal(t, 1795, h.events[len(h.events)-1].Snapshot.Remaining)
}

func TestDefaultSessionEndToEnd(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.Start()
	for i := 0; i < 1800; i++ {
		h.clock.fire()
	}

	assert.Len(t, h.dispatcher.completions, 1)
	snapshot := h.controller.Snapshot()
	assert.Equal(t, 1800, snapshot.Remaining)
	assert.Equal(t, StateStopped, snapshot.State)
}

func TestPauseFromListenerOnFinalFrameCancelsCompletion(t *testing.T) {
	h := newHarness(t, nil)
	h.controller.SetWorkDuration(1)
	h.controller.Subscribe(func(event Event) {
		if event.Type == EventProgress && event.Snapshot.Remaining == 0 {
			h.controller.Pause()
		}
	})

	h.controller.Start()
	for i := 0; i < 60; i++ {
		h.clock.fire()
	}

	assert.Empty(t, h.dispatcher.completions)
	assert.Equal(t, 0, h.controller.Snapshot().Remaining)
}

func TestStartAfterZeroRemainingRefills(t *testing.T) {
	h := newHarness(t, nil)
	h.controller.SetWorkDuration(1)
	h.controller.Subscribe(func(event Event) {
		if event.Type == EventProgress && event.Snapshot.Remaining == 0 {
			h.controller.Pause()
		}
	})
	h.controller.Start()
	for i := 0; i < 60; i++ {
		h.clock.fire()
	}
	require.Equal(t, 0, h.controller.Snapshot().Remaining)

	h.controller.Start()
	assert.Equal(t, 60, h.controller.Snapshot().Remaining)
}

func TestSelectSound(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.SelectSound("Basso")
	h.controller.SelectSound("Off")

	assert.Equal(t, []model.Sound{model.SoundBasso}, h.dispatcher.previews)
	assert.Equal(t, model.SoundOff, h.controller.Snapshot().Sound)
	saved, _ := h.store.String(model.KeySelectedSound)
	assert.Equal(t, "Off", saved)

	h.controller.SetWorkDuration(1)
	h.controller.Start()
	for i := 0; i < 60; i++ {
		h.clock.fire()
	}
	require.Len(t, h.dispatcher.completions, 1)
	assert.Equal(t, model.SoundOff, h.dispatcher.completions[0])
}

func TestSelectUnknownSoundIsOff(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.SelectSound("Funk")

	assert.Equal(t, model.SoundOff, h.controller.Snapshot().Sound)
	assert.Empty(t, h.dispatcher.previews)
	assert.Equal(t, 1, h.countEvents(EventSoundChange))
}

func TestShutdownPersistsRemaining(t *testing.T) {
	store := storage.NewMemoryStore()
	h := newHarness(t, store)
	h.controller.SetWorkDuration(15)
	h.controller.Start()
	h.clock.fire()

	require.NoError(t, h.controller.Shutdown())
	assert.Empty(t, h.clock.active())

	saved, ok := store.Int(model.KeyTimeRemaining)
	require.True(t, ok)
	assert.Equal(t, 899, saved)

	restarted := newHarness(t, store).controller.Snapshot()
	assert.Equal(t, 899, restarted.Remaining)
	assert.Equal(t, 899, restarted.WorkDuration)
	assert.Equal(t, StateStopped, restarted.State)
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.SetInt(model.KeyTimeRemaining, 900))

	snapshot := newHarness(t, store).controller.Snapshot()
	assert.Equal(t, 900, snapshot.Remaining)
	assert.Equal(t, 900, snapshot.WorkDuration)
}

func TestSystemClockDispatchesAndStops(t *testing.T) {
	dispatched := make(chan struct{}, 8)
	clock := NewSystemClock(func(fn func()) {
		fn()
	})

	ticker := clock.Every(5*time.Millisecond, func() {
		select {
		case dispatched <- struct{}{}:
		default:
		}
	})

	select {
	case <-dispatched:
	case <-time.After(time.Second):
		t.Fatal("tick was not dispatched")
	}

	ticker.Stop()
	ticker.Stop()
}
