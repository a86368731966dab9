// Package poll is the interval-based refresh driver behind every screen.
// There is deliberately no shared singleton: each mounted view starts its own
// intervals and must cancel them on unmount. Polling stands in for a push
// channel; consumers only see a callback firing, so a real push transport can
// replace this without touching them.
package poll

import (
	"sync"
	"time"
)

// Default intervals. Safety alerts poll faster because of their urgency.
const (
	AlertsInterval = 5 * time.Second
	FleetInterval  = 10 * time.Second
)

// CancelFunc stops a polling loop. It is idempotent and returns only after
// the loop has fully stopped, so no callback runs once cancel returns.
type CancelFunc func()

// Start invokes callback immediately and then once per interval until the
// returned CancelFunc is called.
func Start(callback func(), interval time.Duration) CancelFunc {
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		callback()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// A tick racing the stop signal must not fire the callback.
				select {
				case <-stop:
					return
				default:
				}
				callback()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stop) })
		<-done
	}
}
