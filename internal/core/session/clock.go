package session

import (
	"sync"
	"time"
)

// Ticker is an armed periodic tick source.
type Ticker interface {
	Stop()
}

// Clock arms periodic tick sources.
type Clock interface {
	Every(interval time.Duration, fn func()) Ticker
}

// SystemClock drives ticks from time.Ticker and hands every tick to
// dispatch so that callbacks run on the caller's event loop.
type SystemClock struct {
	dispatch func(func())
}

// NewSystemClock creates a clock. A nil dispatch runs ticks on the ticker goroutine.
func NewSystemClock(dispatch func(func())) *SystemClock {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &SystemClock{dispatch: dispatch}
}

// Every starts a goroutine that invokes fn once per interval until Stop.
func (clock *SystemClock) Every(interval time.Duration, fn func()) Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := &systemTicker{
		ticker: time.NewTicker(interval),
		stopCh: make(chan struct{}),
	}
	go ticker.run(clock.dispatch, fn)
	return ticker
}

type systemTicker struct {
	ticker   *time.Ticker
	stopCh   chan struct{}
	stopOnce sync.Once
}

func (ticker *systemTicker) run(dispatch func(func()), fn func()) {
	defer ticker.ticker.Stop()
	for {
		select {
		case <-ticker.stopCh:
			return
		case <-ticker.ticker.C:
			dispatch(fn)
		}
	}
}

func (ticker *systemTicker) Stop() {
	ticker.stopOnce.Do(func() {
		close(ticker.stopCh)
	})
}
