// Package session composes one user's screen: the action engine, the view
// stack, the theme, the handle checker and the invite gate, fed by the
// shared mirror subscription.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/internal/engine"
	"github.com/fiboy83/vibesphere--sub000/internal/handle"
	"github.com/fiboy83/vibesphere--sub000/internal/invite"
	"github.com/fiboy83/vibesphere--sub000/internal/mirror"
	"github.com/fiboy83/vibesphere--sub000/internal/navigation"
	"github.com/fiboy83/vibesphere--sub000/internal/theme"
	"github.com/fiboy83/vibesphere--sub000/pkg/errors"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
)

type Opts struct {
	Engine  *engine.Engine
	Feed    mirror.FeedPort
	Theme   *theme.Theme
	Handles *handle.Checker
	Invite  *invite.Gate
	Scope   string
	Logger  logger.Logger
}

type Session struct {
	engine  *engine.Engine
	feed    mirror.FeedPort
	theme   *theme.Theme
	handles *handle.Checker
	invite  *invite.Gate
	scope   string
	logger  logger.Logger

	mu   sync.Mutex
	nav  *navigation.Stack
	stop func()
}

func New(opts Opts) *Session {
	return &Session{
		engine:  opts.Engine,
		feed:    opts.Feed,
		theme:   opts.Theme,
		handles: opts.Handles,
		invite:  opts.Invite,
		scope:   opts.Scope,
		logger:  opts.Logger.WithComponent("Session"),
		nav:     navigation.New(),
	}
}

// Start loads the feed and keeps it in step with the shared slot until
// Close or ctx cancellation.
func (s *Session) Start(ctx context.Context) error {
	stop, err := s.feed.Subscribe(ctx, func(posts []*domain.Post) {
		s.engine.ReplaceFeed(posts)
		s.refreshFocused()
	})
	if err != nil {
		return errors.Wrap(err, "failed to subscribe to shared feed")
	}

	s.mu.Lock()
	s.stop = stop
	s.mu.Unlock()
	return nil
}

// Close releases the poll subscription and any pending handle check.
func (s *Session) Close() {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	s.handles.Close()
}

func (s *Session) Authorized(ctx context.Context) bool {
	return s.invite.Authorized(ctx, s.scope)
}

func (s *Session) SubmitInvite(ctx context.Context, code string) error {
	return s.invite.Submit(ctx, s.scope, code)
}

// Connect switches to address, reloading its preferences and theme.
func (s *Session) Connect(ctx context.Context, address string) error {
	if strings.TrimSpace(address) == "" {
		return errors.WrapWithCode(errors.ErrInvalidInput, errors.CodeInvalidInput, "address is empty")
	}
	reloaded, err := s.engine.Connect(ctx, address)
	if err != nil {
		return err
	}
	if reloaded {
		s.applyTheme(s.engine.Profile().ThemeColor)
	}
	return nil
}

func (s *Session) Disconnect() {
	s.engine.Disconnect()
	s.applyTheme(theme.DefaultBase)
	s.Home()
}

func (s *Session) Address() string            { return s.engine.Address() }
func (s *Session) Profile() domain.Profile    { return s.engine.Profile() }
func (s *Session) Palette() theme.Palette     { return s.theme.Palette() }
func (s *Session) Feed() []*domain.Post       { return s.engine.Feed() }
func (s *Session) LikedPosts() []*domain.Post { return s.engine.LikedPosts() }

func (s *Session) Post(id int64) (*domain.Post, bool) {
	return s.engine.Post(id)
}

func (s *Session) BookmarkedPosts() []*domain.Post {
	return s.engine.BookmarkedPosts()
}

func (s *Session) Transactions() []domain.Transaction {
	return s.engine.Transactions()
}

func (s *Session) IsLiked(id int64) bool      { return s.engine.IsLiked(id) }
func (s *Session) IsBookmarked(id int64) bool { return s.engine.IsBookmarked(id) }

func (s *Session) applyTheme(color string) {
	if err := s.theme.Apply(color); err != nil {
		s.logger.Debug("Ignoring invalid theme color", "color", color, "error", err)
	}
}
