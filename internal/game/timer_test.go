package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerExpiresOnce(t *testing.T) {
	var fired atomic.Int32
	tm := NewTimer(20*time.Millisecond, func() { fired.Add(1) })
	tm.Start()

	require.Eventually(t, tm.Expired, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.False(t, tm.Running())
	assert.Zero(t, tm.Remaining())

	tm.Start()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "start on an expired timer is a no-op")
}

func TestTimerStopKeepsElapsed(t *testing.T) {
	var fired atomic.Int32
	tm := NewTimer(time.Hour, func() { fired.Add(1) })
	tm.Start()
	time.Sleep(10 * time.Millisecond)
	tm.Stop()

	rem := tm.Remaining()
	assert.Less(t, rem, time.Hour)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, rem, tm.Remaining(), "a stopped timer does not count down")

	tm.Start()
	assert.True(t, tm.Running())
	assert.LessOrEqual(t, tm.Remaining(), rem)
	tm.Stop()
	assert.Zero(t, fired.Load())
}

func TestTimerStopPreventsExpiry(t *testing.T) {
	var fired atomic.Int32
	tm := NewTimer(20*time.Millisecond, func() { fired.Add(1) })
	tm.Start()
	tm.Stop()
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, fired.Load())
	assert.False(t, tm.Expired())
}

func TestTimerReset(t *testing.T) {
	tm := NewTimer(20*time.Millisecond, nil)
	tm.Start()
	require.Panics(t, tm.Reset, "resetting a running timer must fail loudly")
	require.Panics(t, func() { tm.SetDuration(time.Second) })

	require.Eventually(t, tm.Expired, time.Second, 5*time.Millisecond)
	tm.Reset()
	assert.False(t, tm.Expired())
	assert.Equal(t, 20*time.Millisecond, tm.Remaining())
}

func TestTimerRestart(t *testing.T) {
	var fired atomic.Int32
	tm := NewTimer(100*time.Millisecond, func() { fired.Add(1) })
	tm.Start()
	for i := 0; i < 4; i++ {
		time.Sleep(20 * time.Millisecond)
		tm.Restart()
	}
	assert.Zero(t, fired.Load(), "restarts keep pushing expiry out")
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestTimerZeroDurationFiresOnStart(t *testing.T) {
	var fired atomic.Int32
	tm := NewTimer(0, func() { fired.Add(1) })
	tm.Start()
	assert.True(t, tm.Expired())
	assert.Equal(t, int32(1), fired.Load())
}
