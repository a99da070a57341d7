package ratelimit

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Limiter decides whether a caller identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// SlidingWindow admits at most max requests per key within any window of
// the configured length. Rejected requests are not recorded.
type SlidingWindow struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	window time.Duration
	max    int
	clock  clockwork.Clock
}

var _ Limiter = (*SlidingWindow)(nil)

// NewSlidingWindow creates a limiter.
// Example: NewSlidingWindow(10, 30*time.Second, nil) -> 10 requests per 30s per key
func NewSlidingWindow(max int, window time.Duration, clock clockwork.Clock) *SlidingWindow {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SlidingWindow{
		hits:   make(map[string][]time.Time),
		window: window,
		max:    max,
		clock:  clock,
	}
}

func (l *SlidingWindow) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	recent := trim(l.hits[key], now.Add(-l.window))
	if len(recent) >= l.max {
		l.hits[key] = recent
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}

// Prune drops keys with no requests inside the window and returns how many
// were removed.
func (l *SlidingWindow) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.clock.Now().Add(-l.window)
	removed := 0
	for key, hits := range l.hits {
		if recent := trim(hits, cutoff); len(recent) == 0 {
			delete(l.hits, key)
			removed++
		} else {
			l.hits[key] = recent
		}
	}
	return removed
}

// Keys is the number of tracked callers.
func (l *SlidingWindow) Keys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}

// trim drops timestamps at or before cutoff. hits is sorted ascending.
func trim(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}
