package handle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(h string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, h)
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.calls...)
}

func TestChecker_DebouncesBursts(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := &recorder{}
	c := New(ReaderFunc(func(_ context.Context, h string) (bool, error) {
		rec.add(h)
		return h == "taken", nil
	}), clock, 300*time.Millisecond, logger.NewNop())
	defer c.Close()

	c.Input("v")
	clock.Advance(100 * time.Millisecond)
	c.Input("vi")
	clock.Advance(100 * time.Millisecond)
	c.Input("@vibe ")
	assert.Equal(t, StateChecking, c.Status().State)

	clock.Advance(300 * time.Millisecond)
	require.Eventually(t, func() bool { return c.Status().State == StateAvailable }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"vibe"}, rec.get())
	assert.True(t, c.Available("vibe"))
	assert.False(t, c.Available("vib"))

	c.Input("taken")
	clock.Advance(300 * time.Millisecond)
	require.Eventually(t, func() bool { return c.Status().State == StateTaken }, time.Second, 5*time.Millisecond)
	assert.False(t, c.Available("taken"))
}

func TestChecker_EmptyIsIdle(t *testing.T) {
	c := New(ReaderFunc(func(context.Context, string) (bool, error) {
		t.Fatal("no lookup expected")
		return false, nil
	}), clockwork.NewFakeClock(), 0, logger.NewNop())
	defer c.Close()

	c.Input("   ")
	assert.Equal(t, StateIdle, c.Status().State)
}

func TestChecker_StaleResultDiscarded(t *testing.T) {
	clock := clockwork.NewFakeClock()
	release := make(chan struct{})
	started := make(chan string, 2)

	c := New(ReaderFunc(func(_ context.Context, h string) (bool, error) {
		started <- h
		if h == "slow" {
			<-release
		}
		return false, nil
	}), clock, 300*time.Millisecond, logger.NewNop())
	defer c.Close()

	c.Input("slow")
	clock.Advance(300 * time.Millisecond)
	require.Equal(t, "slow", <-started)

	c.Input("fast")
	clock.Advance(300 * time.Millisecond)
	require.Equal(t, "fast", <-started)
	require.Eventually(t, func() bool { return c.Status().State == StateAvailable }, time.Second, 5*time.Millisecond)

	close(release)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "fast", c.Status().Handle)
}

func TestChecker_Error(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New(ReaderFunc(func(context.Context, string) (bool, error) {
		return false, errors.New("rpc down")
	}), clock, 300*time.Millisecond, logger.NewNop())
	defer c.Close()

	c.Input("vibe")
	clock.Advance(300 * time.Millisecond)
	require.Eventually(t, func() bool { return c.Status().State == StateError }, time.Second, 5*time.Millisecond)
	assert.False(t, c.Available("vibe"))
}
