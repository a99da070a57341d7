// Package handle runs the debounced availability check for a handle being
// typed. Only the newest settled input may publish a result.
package handle

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"github.com/jonboulle/clockwork"
)

type State string

const (
	StateIdle      State = "idle"
	StateChecking  State = "checking"
	StateAvailable State = "available"
	StateTaken     State = "taken"
	StateError     State = "error"
)

const (
	DefaultDebounce = 300 * time.Millisecond
	lookupTimeout   = 10 * time.Second
)

type Reader interface {
	IsHandleTaken(ctx context.Context, handle string) (bool, error)
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func(ctx context.Context, handle string) (bool, error)

func (f ReaderFunc) IsHandleTaken(ctx context.Context, handle string) (bool, error) {
	return f(ctx, handle)
}

type Status struct {
	Handle string
	State  State
	Err    error
}

type Checker struct {
	reader   Reader
	clock    clockwork.Clock
	debounce time.Duration
	logger   logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	input     string
	settled   string
	status    Status
	timer     clockwork.Timer
	listeners []func(Status)
}

func New(reader Reader, clock clockwork.Clock, debounce time.Duration, log logger.Logger) *Checker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Checker{
		reader:   reader,
		clock:    clock,
		debounce: debounce,
		logger:   log.WithComponent("HandleChecker"),
		ctx:      ctx,
		cancel:   cancel,
		status:   Status{State: StateIdle},
	}
}

// Normalize strips whitespace and a leading "@".
func Normalize(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// Input records a keystroke. Any pending check is superseded.
func (c *Checker) Input(text string) {
	text = Normalize(text)

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.input = text
	c.settled = ""
	if text == "" {
		st := c.setLocked(Status{State: StateIdle})
		c.mu.Unlock()
		c.publish(st)
		return
	}
	st := c.setLocked(Status{Handle: text, State: StateChecking})
	// Lookups never run on the clock's firing goroutine.
	c.timer = c.clock.AfterFunc(c.debounce, func() { go c.settle(text) })
	c.mu.Unlock()
	c.publish(st)
}

func (c *Checker) settle(text string) {
	c.mu.Lock()
	if c.input != text || c.ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	c.settled = text
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(c.ctx, lookupTimeout)
	taken, err := c.reader.IsHandleTaken(ctx, text)
	cancel()

	c.mu.Lock()
	if c.settled != text || c.input != text {
		c.mu.Unlock()
		c.logger.Debug("Discarded stale handle check", "handle", text)
		return
	}
	next := Status{Handle: text, State: StateAvailable}
	switch {
	case err != nil:
		next = Status{Handle: text, State: StateError, Err: err}
		c.logger.Warn("Handle availability check failed", "handle", text, "error", err)
	case taken:
		next.State = StateTaken
	}
	st := c.setLocked(next)
	c.mu.Unlock()
	c.publish(st)
}

func (c *Checker) setLocked(s Status) Status {
	c.status = s
	return s
}

func (c *Checker) publish(s Status) {
	c.mu.Lock()
	listeners := append([]func(Status){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(s)
	}
}

func (c *Checker) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Available reports whether handle is exactly the input last confirmed free.
func (c *Checker) Available(handle string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := Normalize(handle)
	return h != "" && c.status.State == StateAvailable && c.status.Handle == h && c.input == h
}

// OnChange registers fn to receive every state change.
func (c *Checker) OnChange(fn func(Status)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Close stops any pending check. Results arriving afterwards are dropped.
func (c *Checker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.input = ""
	c.settled = ""
	c.cancel()
}
