// Package theme holds the accent color shared by every themed surface of a
// session. Apply is the only way to change it.
package theme

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultBase = "#8b5cf6"
	glowAlpha   = 0.45
)

// Palette is the pair of style values derived from one accent color.
type Palette struct {
	Base string
	Glow string
}

type Theme struct {
	mu        sync.RWMutex
	palette   Palette
	listeners []func(Palette)
}

func New() *Theme {
	p, _ := Derive(DefaultBase)
	return &Theme{palette: p}
}

// Derive computes the palette for a hex color.
func Derive(color string) (Palette, error) {
	c, err := colorful.Hex(strings.TrimSpace(color))
	if err != nil {
		return Palette{}, fmt.Errorf("invalid theme color %q: %w", color, err)
	}
	r, g, b := c.RGB255()
	return Palette{
		Base: c.Hex(),
		Glow: fmt.Sprintf("rgba(%d, %d, %d, %.2f)", r, g, b, glowAlpha),
	}, nil
}

// Apply switches the accent color and notifies listeners when it changed.
// Invalid colors leave the current palette in place.
func (t *Theme) Apply(color string) error {
	p, err := Derive(color)
	if err != nil {
		return err
	}

	t.mu.Lock()
	if p == t.palette {
		t.mu.Unlock()
		return nil
	}
	t.palette = p
	listeners := append([]func(Palette){}, t.listeners...)
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(p)
	}
	return nil
}

func (t *Theme) Palette() Palette {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.palette
}

// Subscribe registers fn to run after every palette change.
func (t *Theme) Subscribe(fn func(Palette)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}
