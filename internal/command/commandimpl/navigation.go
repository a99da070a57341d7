package commandimpl

import (
	"strings"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/internal/session"
)

func (c *CommandImpl) handleTab(s *session.Session, chatID int64, args string) {
	tab := domain.Tab(strings.ToLower(strings.TrimSpace(args)))
	if err := s.SwitchTab(tab); err != nil {
		c.reply(chatID, "Unknown tab. Try: home, bookmarks, profile, notifications, defi, swap, settings, wallet, market, inbox.")
		return
	}
	c.showView(s, chatID)
}

// showView renders the top frame of the chat's view stack.
func (c *CommandImpl) showView(s *session.Session, chatID int64) {
	v := s.View()
	switch {
	case v.FocusedPost != nil:
		parent, _ := s.Breadcrumb()
		c.replyMarkdown(chatID, c.renderDetail(s, parent, v.FocusedPost))
	case v.ViewingProfile != nil:
		c.replyMarkdown(chatID, c.renderProfile(*v.ViewingProfile))
	case v.Tab == domain.TabHome:
		c.showList(chatID, "🌐 Latest vibes", s.Feed())
	case v.Tab == domain.TabBookmarks:
		c.showList(chatID, "🔖 Bookmarked vibes", s.BookmarkedPosts())
	case v.Tab == domain.TabProfile:
		c.replyMarkdown(chatID, c.renderProfile(s.Profile()))
	case v.Tab == domain.TabWallet:
		c.showTransactions(s, chatID)
	default:
		c.reply(chatID, "📍 "+strings.ToUpper(string(v.Tab))+" is coming soon. /back to return.")
	}
}

func (c *CommandImpl) showList(chatID int64, title string, posts []*domain.Post) {
	if len(posts) == 0 {
		c.reply(chatID, title+": nothing here yet.")
		return
	}
	c.replyMarkdown(chatID, c.renderList(title, posts))
}
