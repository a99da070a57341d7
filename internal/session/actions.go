package session

import (
	"context"
	"math/big"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/internal/engine"
	"github.com/fiboy83/vibesphere--sub000/internal/handle"
	"github.com/fiboy83/vibesphere--sub000/internal/theme"
	"github.com/fiboy83/vibesphere--sub000/pkg/errors"
)

func (s *Session) Like(ctx context.Context, id int64) (bool, error) {
	liked, err := s.engine.ToggleLike(ctx, id)
	s.refreshFocused()
	return liked, err
}

func (s *Session) Bookmark(ctx context.Context, id int64) (bool, error) {
	return s.engine.ToggleBookmark(ctx, id)
}

// Comment replies to id. When id is the focused post the detail view is
// updated in place.
func (s *Session) Comment(ctx context.Context, id int64, text string) (*domain.Post, error) {
	target, err := s.engine.Comment(ctx, id, text)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	replaced := s.nav.ReplaceFocused(target)
	s.mu.Unlock()
	if !replaced {
		s.refreshFocused()
	}
	return target, nil
}

func (s *Session) Repost(ctx context.Context, id int64) (*domain.Post, error) {
	p, err := s.engine.Repost(ctx, id)
	s.refreshFocused()
	return p, err
}

func (s *Session) Broadcast(ctx context.Context, d engine.Draft) (*domain.Post, error) {
	return s.engine.Broadcast(ctx, d)
}

// TypeHandle feeds the availability checker one keystroke.
func (s *Session) TypeHandle(text string) {
	s.handles.Input(text)
}

func (s *Session) HandleStatus() handle.Status {
	return s.handles.Status()
}

// OnHandleStatus registers fn for every availability state change.
func (s *Session) OnHandleStatus(fn func(handle.Status)) {
	s.handles.OnChange(fn)
}

func (s *Session) ClaimHandle(ctx context.Context, candidate string) (string, error) {
	return s.engine.ClaimHandle(ctx, candidate)
}

func (s *Session) Send(ctx context.Context, to string, wei *big.Int) (domain.Transaction, error) {
	return s.engine.Send(ctx, to, wei)
}

// UpdateProfile applies edits and repaints the theme when the color changes.
// A color the theme cannot parse is rejected before anything is stored.
func (s *Session) UpdateProfile(ctx context.Context, edit engine.ProfileEdit) (domain.Profile, error) {
	if edit.ThemeColor != nil {
		if _, err := theme.Derive(*edit.ThemeColor); err != nil {
			return s.engine.Profile(), errors.WrapWithCode(errors.ErrInvalidInput, errors.CodeInvalidInput, err.Error())
		}
	}
	p, err := s.engine.UpdateProfile(ctx, edit)
	s.applyTheme(p.ThemeColor)
	return p, err
}
