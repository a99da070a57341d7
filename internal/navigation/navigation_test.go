package navigation

import (
	"testing"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_BackStopsAtHome(t *testing.T) {
	s := New()
	assert.False(t, s.Back())
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, domain.TabHome, s.Current().Tab)
}

func TestStack_SwitchTabStartsFresh(t *testing.T) {
	s := New()
	s.FocusPost(&domain.Post{ID: 1})
	require.NoError(t, s.SwitchTab(domain.TabWallet))

	cur := s.Current()
	assert.Equal(t, domain.TabWallet, cur.Tab)
	assert.Nil(t, cur.FocusedPost)
	assert.Nil(t, cur.ViewingProfile)
	assert.Equal(t, 3, s.Depth())

	assert.ErrorIs(t, s.SwitchTab(domain.Tab("casino")), ErrNotPrimaryTab)
	assert.Equal(t, 3, s.Depth())

	require.NoError(t, s.SwitchTab(domain.TabHome))
	assert.Equal(t, 1, s.Depth())
}

func TestStack_DrillInheritsTab(t *testing.T) {
	s := New()
	require.NoError(t, s.SwitchTab(domain.TabBookmarks))
	s.ViewProfile(domain.Profile{Handle: "vibe"})
	s.FocusPost(&domain.Post{ID: 3})

	cur := s.Current()
	assert.Equal(t, domain.TabBookmarks, cur.Tab)
	assert.Nil(t, cur.ViewingProfile)
	assert.Equal(t, int64(3), cur.FocusedPost.ID)
	assert.True(t, s.CommentsExpanded())

	require.True(t, s.Back())
	assert.Equal(t, "vibe", s.Current().ViewingProfile.Handle)
	assert.False(t, s.CommentsExpanded())
}

func TestStack_CommentView(t *testing.T) {
	s := New()
	s.FocusPost(&domain.Post{ID: 3})
	assert.False(t, s.IsCommentView())

	s.FocusPost(&domain.Post{ID: 31})
	assert.True(t, s.IsCommentView())
	parent, ok := s.Parent()
	require.True(t, ok)
	assert.Equal(t, int64(3), parent.ID)

	s.Home()
	assert.Equal(t, 1, s.Depth())
	assert.False(t, s.IsCommentView())
}

func TestStack_PushClosesSidePanel(t *testing.T) {
	s := New()
	s.OpenSidePanel()
	require.NoError(t, s.SwitchTab(domain.TabSettings))
	assert.False(t, s.SidePanelOpen())
}

func TestStack_ReplaceFocused(t *testing.T) {
	s := New()
	s.FocusPost(&domain.Post{ID: 1, Counts: domain.Counts{Comments: 4}})

	assert.False(t, s.ReplaceFocused(&domain.Post{ID: 2}))
	assert.True(t, s.ReplaceFocused(&domain.Post{ID: 1, Counts: domain.Counts{Comments: 5}}))
	assert.Equal(t, 5, s.Current().FocusedPost.Counts.Comments)
	assert.Equal(t, 2, s.Depth())
}
