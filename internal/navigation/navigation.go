// Package navigation implements the view stack: a push/pop history of
// screens that always keeps the home frame at the bottom. It is not safe
// for concurrent use; the owning session serializes access.
package navigation

import (
	"errors"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
)

var ErrNotPrimaryTab = errors.New("not a primary tab")

var primaryTabs = map[domain.Tab]bool{
	domain.TabBookmarks:     true,
	domain.TabProfile:       true,
	domain.TabNotifications: true,
	domain.TabDefi:          true,
	domain.TabSwap:          true,
	domain.TabSettings:      true,
	domain.TabWallet:        true,
	domain.TabMarket:        true,
	domain.TabInbox:         true,
}

func IsPrimary(tab domain.Tab) bool {
	return primaryTabs[tab]
}

type Stack struct {
	frames           []domain.View
	sidePanelOpen    bool
	commentsExpanded bool
}

func New() *Stack {
	return &Stack{frames: []domain.View{{Tab: domain.TabHome}}}
}

// Current is the top frame.
func (s *Stack) Current() domain.View {
	return s.frames[len(s.frames)-1]
}

func (s *Stack) Depth() int {
	return len(s.frames)
}

// Home clears the history down to a single home frame.
func (s *Stack) Home() {
	s.frames = []domain.View{{Tab: domain.TabHome}}
	s.sidePanelOpen = false
	s.commentsExpanded = false
}

// SwitchTab pushes a fresh frame for a primary tab. Nothing is inherited
// from the current frame. Switching to home resets the stack.
func (s *Stack) SwitchTab(tab domain.Tab) error {
	if tab == domain.TabHome {
		s.Home()
		return nil
	}
	if !IsPrimary(tab) {
		return ErrNotPrimaryTab
	}
	s.push(domain.View{Tab: tab})
	return nil
}

// FocusPost drills into a post while staying on the current tab.
func (s *Stack) FocusPost(p *domain.Post) {
	s.push(domain.View{Tab: s.Current().Tab, FocusedPost: p})
}

// ViewProfile drills into another user's profile while staying on the
// current tab.
func (s *Stack) ViewProfile(p domain.Profile) {
	s.push(domain.View{Tab: s.Current().Tab, ViewingProfile: &p})
}

// Back pops one frame. The home frame is never popped.
func (s *Stack) Back() bool {
	if len(s.frames) <= 1 {
		return false
	}
	s.frames = s.frames[:len(s.frames)-1]
	s.commentsExpanded = s.Current().FocusedPost != nil
	return true
}

// IsCommentView reports whether the top frame is a post opened from
// another post, so the parent can be shown as a breadcrumb.
func (s *Stack) IsCommentView() bool {
	_, ok := s.Parent()
	return ok && s.Current().FocusedPost != nil
}

// Parent returns the post focused by the frame below the top one.
func (s *Stack) Parent() (*domain.Post, bool) {
	if len(s.frames) < 2 {
		return nil, false
	}
	p := s.frames[len(s.frames)-2].FocusedPost
	return p, p != nil
}

// ReplaceFocused swaps the focused post of the top frame in place when it
// carries the same id, so a detail view shows a fresh reply immediately.
func (s *Stack) ReplaceFocused(p *domain.Post) bool {
	top := &s.frames[len(s.frames)-1]
	if p == nil || top.FocusedPost == nil || top.FocusedPost.ID != p.ID {
		return false
	}
	top.FocusedPost = p
	return true
}

func (s *Stack) OpenSidePanel()         { s.sidePanelOpen = true }
func (s *Stack) SidePanelOpen() bool    { return s.sidePanelOpen }
func (s *Stack) CommentsExpanded() bool { return s.commentsExpanded }

func (s *Stack) push(v domain.View) {
	s.frames = append(s.frames, v)
	s.sidePanelOpen = false
	s.commentsExpanded = v.FocusedPost != nil
}
