package commandimpl

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/internal/session"
	"github.com/fiboy83/vibesphere--sub000/pkg/formatter"
)

const maxListed = 10

var esc = formatter.EscapeMarkdownV2

func (c *CommandImpl) renderHeader(p *domain.Post) string {
	return fmt.Sprintf("*%s* %s · %s  `#%d`",
		esc(p.AuthorName), esc(c.displayHandle(p.AuthorHandle)), esc(p.CreatedAt), p.ID)
}

func renderCounts(p *domain.Post) string {
	return esc(fmt.Sprintf("💬 %s  🔁 %s  ❤️ %s",
		formatter.FormatNumber(p.Counts.Comments),
		formatter.FormatNumber(p.Counts.Reposts),
		formatter.FormatNumber(p.Counts.Likes)))
}

func (c *CommandImpl) renderBody(p *domain.Post) string {
	var b strings.Builder
	if p.Kind == domain.KindArticle {
		b.WriteString("📰 ")
	}
	b.WriteString(esc(p.Body))
	if p.Media != nil {
		fmt.Fprintf(&b, "\n🖼 %s", esc(p.Media.URL))
	}
	if p.Quoted != nil {
		fmt.Fprintf(&b, "\n> 🔁 %s\n> %s", c.renderHeader(p.Quoted), esc(p.Quoted.Body))
	}
	return b.String()
}

func (c *CommandImpl) renderPost(s *session.Session, p *domain.Post) string {
	marks := ""
	if s.IsLiked(p.ID) {
		marks += " ❤️"
	}
	if s.IsBookmarked(p.ID) {
		marks += " 🔖"
	}
	return c.renderHeader(p) + marks + "\n" + c.renderBody(p) + "\n" + renderCounts(p)
}

func (c *CommandImpl) renderList(title string, posts []*domain.Post) string {
	var b strings.Builder
	b.WriteString("*" + esc(title) + "*\n")
	for i, p := range posts {
		if i == maxListed {
			fmt.Fprintf(&b, "\n%s", esc(fmt.Sprintf("…and %d more", len(posts)-maxListed)))
			break
		}
		b.WriteString("\n" + c.renderHeader(p) + "\n" + c.renderBody(p) + "\n" + renderCounts(p) + "\n")
	}
	return b.String()
}

// renderDetail shows a focused post with its replies, and the parent post
// above it when opened from another post.
func (c *CommandImpl) renderDetail(s *session.Session, parent, p *domain.Post) string {
	var b strings.Builder
	if parent != nil {
		fmt.Fprintf(&b, "↩️ _replying to_ %s\n\n", c.renderHeader(parent))
	}
	b.WriteString(c.renderPost(s, p))
	if len(p.Comments) > 0 {
		b.WriteString("\n\n*" + esc("Replies") + "*")
		for _, r := range p.Comments {
			fmt.Fprintf(&b, "\n%s\n%s", c.renderHeader(r), esc(r.Body))
		}
	}
	b.WriteString("\n\n" + esc("/back to return, /comment <id> <text> to reply"))
	return b.String()
}

func (c *CommandImpl) renderProfile(p domain.Profile) string {
	return fmt.Sprintf("*%s*\n%s\n%s",
		esc(p.DisplayName), esc(c.displayHandle(p.Handle)), esc(p.JoinLabel))
}

func weiText(wei string) string {
	v, ok := new(big.Int).SetString(wei, 10)
	if !ok {
		return wei + " wei"
	}
	return formatter.Ether(v, 4) + " OPN"
}
