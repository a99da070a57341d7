package session

import (
	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/pkg/errors"
)

func (s *Session) View() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

func (s *Session) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Depth()
}

func (s *Session) Home() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Home()
}

func (s *Session) SwitchTab(tab domain.Tab) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.SwitchTab(tab)
}

// FocusPost opens the detail view of any post in the tree.
func (s *Session) FocusPost(id int64) (*domain.Post, error) {
	p, ok := s.engine.Post(id)
	if !ok {
		return nil, errors.WrapWithCode(errors.ErrNotFound, errors.CodeNotFound, "post not in feed")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.FocusPost(p)
	return p, nil
}

func (s *Session) ViewProfile(p domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.ViewProfile(p)
}

func (s *Session) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Back()
}

// Breadcrumb returns the parent post when the top frame is a comment view.
func (s *Session) Breadcrumb() (*domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.nav.IsCommentView() {
		return nil, false
	}
	return s.nav.Parent()
}

func (s *Session) OpenSidePanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.OpenSidePanel()
}

func (s *Session) CommentsExpanded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.CommentsExpanded()
}

// refreshFocused points the top frame at the current version of its post.
func (s *Session) refreshFocused() {
	s.mu.Lock()
	defer s.mu.Unlock()
	focused := s.nav.Current().FocusedPost
	if focused == nil {
		return
	}
	if p, ok := s.engine.Post(focused.ID); ok {
		s.nav.ReplaceFocused(p)
	}
}
