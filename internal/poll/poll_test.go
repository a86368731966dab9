package poll_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fleetconsole/internal/poll"
)

func TestStart_FiresImmediatelyAndOnInterval(t *testing.T) {
	var calls int32
	cancel := poll.Start(func() { atomic.AddInt32(&calls, 1) }, 20*time.Millisecond)
	defer cancel()

	time.Sleep(70 * time.Millisecond)
	n := atomic.LoadInt32(&calls)
	assert.GreaterOrEqual(t, n, int32(2), "expected the immediate call plus at least one tick")
}

func TestCancel_StopsCallbacksDeterministically(t *testing.T) {
	var calls int32
	cancel := poll.Start(func() { atomic.AddInt32(&calls, 1) }, 10*time.Millisecond)

	time.Sleep(35 * time.Millisecond)
	cancel()
	after := atomic.LoadInt32(&calls)

	// Let several intervals elapse after cancel; no further fetch may occur.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&calls))
}

func TestCancel_IsIdempotent(t *testing.T) {
	cancel := poll.Start(func() {}, 10*time.Millisecond)
	cancel()
	assert.NotPanics(t, func() { cancel() })
}

func TestConcurrentPollersAreIndependent(t *testing.T) {
	var a, b int32
	cancelA := poll.Start(func() { atomic.AddInt32(&a, 1) }, 10*time.Millisecond)
	cancelB := poll.Start(func() { atomic.AddInt32(&b, 1) }, 10*time.Millisecond)

	time.Sleep(25 * time.Millisecond)
	cancelA()
	beforeA := atomic.LoadInt32(&a)

	time.Sleep(30 * time.Millisecond)
	cancelB()

	assert.Equal(t, beforeA, atomic.LoadInt32(&a), "cancelled poller must stay stopped")
	assert.Greater(t, atomic.LoadInt32(&b), beforeA, "sibling poller keeps running")
}
