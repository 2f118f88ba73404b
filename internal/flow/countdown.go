package flow

import (
	"fmt"
	"time"

	"anxonews-server/internal/localstore"
)

// The countdown is purely informational display state: it decrements once
// per tick while the flow sits in Success or Setup, floors at zero, and
// never drives a transition. The ticker goroutine is owned by the flow and
// torn down deterministically so no orphaned timer outlives its step.

// StartCountdown begins the periodic tick. A no-op when the flow is not in
// Success or Setup, or when a ticker is already running.
func (f *Flow) StartCountdown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != localstore.StepSuccess && f.step != localstore.StepSetup {
		return
	}
	if f.tickerStop != nil {
		return
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	f.tickerStop = stop
	f.tickerDone = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(f.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				f.mu.Lock()
				if f.step != localstore.StepSuccess && f.step != localstore.StepSetup {
					f.mu.Unlock()
					continue
				}
				if f.countdown > 0 {
					f.countdown--
				}
				f.mu.Unlock()
			}
		}
	}()
}

// StopCountdown tears the ticker down and waits for the goroutine to exit.
func (f *Flow) StopCountdown() {
	f.mu.Lock()
	stop, done := f.tickerStop, f.tickerDone
	f.tickerStop = nil
	f.tickerDone = nil
	f.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// stopCountdownLocked signals the ticker without waiting. Callers hold the
// mutex, so a blocking wait here could deadlock against a tick in flight.
func (f *Flow) stopCountdownLocked() {
	if f.tickerStop == nil {
		return
	}
	close(f.tickerStop)
	f.tickerStop = nil
	f.tickerDone = nil
}

// Close releases the flow's background resources.
func (f *Flow) Close() {
	f.StopCountdown()
}

// FormatCountdown renders seconds as M:SS for display.
func FormatCountdown(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
