package game

import (
	"sync"
	"time"
)

// Timer is a pausable countdown. When it runs out it calls onExpire exactly
// once; the game uses that to push a wake event into its input queue.
//
// Stop pauses the countdown and remembers the elapsed time, Start resumes it.
// Reset and SetDuration are only legal while stopped.
type Timer struct {
	mu       sync.Mutex
	duration time.Duration
	elapsed  time.Duration
	started  time.Time
	running  bool
	expired  bool
	gen      uint64
	t        *time.Timer
	onExpire func()
}

// NewTimer creates a stopped timer.
func NewTimer(d time.Duration, onExpire func()) *Timer {
	if onExpire == nil {
		onExpire = func() {}
	}
	return &Timer{duration: d, onExpire: onExpire}
}

// Start starts or resumes the countdown. It is a no-op on a running or
// expired timer.
func (t *Timer) Start() {
	t.mu.Lock()
	if t.running || t.expired {
		t.mu.Unlock()
		return
	}
	remaining := t.duration - t.elapsed
	if remaining <= 0 {
		t.expired = true
		t.elapsed = t.duration
		t.mu.Unlock()
		t.onExpire()
		return
	}
	t.gen++
	gen := t.gen
	t.started = time.Now()
	t.running = true
	t.t = time.AfterFunc(remaining, func() { t.fire(gen) })
	t.mu.Unlock()
}

func (t *Timer) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	t.expired = true
	t.elapsed = t.duration
	t.mu.Unlock()
	t.onExpire()
}

// Stop pauses the countdown, keeping the elapsed time.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.t.Stop()
	t.gen++
	t.elapsed += time.Since(t.started)
	t.running = false
}

// Reset rewinds a stopped timer to its full duration.
// It panics if the timer is running.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		panic("game: reset of a running timer")
	}
	t.elapsed = 0
	t.expired = false
}

// SetDuration changes the duration of a stopped timer.
// It panics if the timer is running.
func (t *Timer) SetDuration(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		panic("game: duration change of a running timer")
	}
	t.duration = d
}

// Restart stops, rewinds and starts the timer again.
func (t *Timer) Restart() {
	t.Stop()
	t.Reset()
	t.Start()
}

// Remaining returns the time left before expiry.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.expired {
		return 0
	}
	e := t.elapsed
	if t.running {
		e += time.Since(t.started)
	}
	return max(t.duration-e, 0)
}

// Expired reports whether the countdown has run out since the last Reset.
func (t *Timer) Expired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expired
}

// Running reports whether the countdown is active.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
