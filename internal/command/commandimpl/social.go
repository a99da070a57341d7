package commandimpl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/internal/engine"
	"github.com/fiboy83/vibesphere--sub000/internal/session"
	"github.com/fiboy83/vibesphere--sub000/pkg/errors"
)

func parseID(args string) (int64, string, bool) {
	head, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	id, err := strconv.ParseInt(strings.TrimPrefix(head, "#"), 10, 64)
	if err != nil {
		return 0, "", false
	}
	return id, strings.TrimSpace(rest), true
}

// parseDraft reads "[article|media <url>] <text>".
func parseDraft(args string) engine.Draft {
	head, rest, _ := strings.Cut(args, " ")
	switch strings.ToLower(head) {
	case "article":
		return engine.Draft{Kind: domain.KindArticle, Text: rest}
	case "media":
		url, text, _ := strings.Cut(strings.TrimSpace(rest), " ")
		kind := domain.MediaImage
		if lower := strings.ToLower(url); strings.HasSuffix(lower, ".mp4") || strings.HasSuffix(lower, ".webm") {
			kind = domain.MediaVideo
		}
		return engine.Draft{Kind: domain.KindMedia, Text: text, Media: &domain.Media{URL: url, Kind: kind}}
	default:
		return engine.Draft{Kind: domain.KindText, Text: args}
	}
}

func (c *CommandImpl) handlePost(ctx context.Context, s *session.Session, chatID int64, args string) {
	d := parseDraft(args)
	if d.Media != nil && d.Media.URL == "" {
		d.Media = nil
	}
	if strings.TrimSpace(d.Text) == "" && d.Media == nil {
		c.reply(chatID, "Write something first. Example: /post gm OPN")
		return
	}
	if s.Address() == "" {
		c.reply(chatID, "Connect a wallet with /connect <address> before posting.")
		return
	}

	c.reply(chatID, "⏳ Broadcasting your vibe, waiting for confirmation...")
	// Failures reach the chat as notices.
	if p, err := s.Broadcast(ctx, d); err == nil {
		c.replyMarkdown(chatID, c.renderPost(s, p))
	}
}

func (c *CommandImpl) handleFocus(s *session.Session, chatID int64, args string) {
	id, _, ok := parseID(args)
	if !ok {
		c.reply(chatID, "Usage: /vibe <id>")
		return
	}
	if _, err := s.FocusPost(id); err != nil {
		c.reply(chatID, fmt.Sprintf("Vibe #%d was not found.", id))
		return
	}
	c.showView(s, chatID)
}

func (c *CommandImpl) handleLike(ctx context.Context, s *session.Session, chatID int64, args string) {
	id, _, ok := parseID(args)
	if !ok {
		c.reply(chatID, "Usage: /like <id>")
		return
	}
	liked, err := s.Like(ctx, id)
	if err != nil {
		return
	}
	p, _ := s.Post(id)
	verb := "Unliked"
	if liked {
		verb = "Liked"
	}
	c.reply(chatID, fmt.Sprintf("%s #%d (%d likes)", verb, id, likes(p)))
}

func (c *CommandImpl) handleBookmark(ctx context.Context, s *session.Session, chatID int64, args string) {
	id, _, ok := parseID(args)
	if !ok {
		c.reply(chatID, "Usage: /bookmark <id>")
		return
	}
	on, err := s.Bookmark(ctx, id)
	if err != nil {
		c.reply(chatID, "Bookmark saved for this chat but could not be persisted.")
		return
	}
	if on {
		c.reply(chatID, fmt.Sprintf("🔖 Bookmarked #%d", id))
	} else {
		c.reply(chatID, fmt.Sprintf("Removed bookmark #%d", id))
	}
}

func (c *CommandImpl) handleRepost(ctx context.Context, s *session.Session, chatID int64, args string) {
	id, _, ok := parseID(args)
	if !ok {
		c.reply(chatID, "Usage: /repost <id>")
		return
	}
	p, err := s.Repost(ctx, id)
	if err != nil {
		return
	}
	c.replyMarkdown(chatID, c.renderPost(s, p))
}

func (c *CommandImpl) handleComment(ctx context.Context, s *session.Session, chatID int64, args string) {
	id, text, ok := parseID(args)
	if !ok {
		c.reply(chatID, "Usage: /comment <id> <text>")
		return
	}
	_, err := s.Comment(ctx, id, text)
	switch {
	case errors.IsInvalidInput(err):
		c.reply(chatID, "A reply needs some text.")
	case err != nil:
	default:
		c.reply(chatID, fmt.Sprintf("💬 Replied to #%d", id))
		if focused := s.View().FocusedPost; focused != nil && focused.ID == id {
			c.showView(s, chatID)
		}
	}
}

func likes(p *domain.Post) int {
	if p == nil {
		return 0
	}
	return p.Counts.Likes
}
