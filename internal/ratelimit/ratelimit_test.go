package ratelimit

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestSlidingWindow_EleventhRejected(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewSlidingWindow(10, 30*time.Second, clock)

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "request %d", i+1)
		clock.Advance(time.Second)
	}
	assert.False(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"), "keys are independent")
}

func TestSlidingWindow_Slides(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewSlidingWindow(2, 30*time.Second, clock)

	assert.True(t, l.Allow("a"))
	clock.Advance(20 * time.Second)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	clock.Advance(11 * time.Second)
	assert.True(t, l.Allow("a"), "first hit left the window")
	assert.False(t, l.Allow("a"))
}

func TestSlidingWindow_Prune(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewSlidingWindow(10, 30*time.Second, clock)

	l.Allow("a")
	clock.Advance(20 * time.Second)
	l.Allow("b")
	clock.Advance(15 * time.Second)

	assert.Equal(t, 1, l.Prune())
	assert.Equal(t, 1, l.Keys())
}
