package commandimpl

import (
	"context"
	"strconv"
	"sync"

	"github.com/fiboy83/vibesphere--sub000/internal/chain"
	"github.com/fiboy83/vibesphere--sub000/internal/command"
	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/internal/handle"
	"github.com/fiboy83/vibesphere--sub000/internal/notice"
	"github.com/fiboy83/vibesphere--sub000/internal/session"
	"github.com/fiboy83/vibesphere--sub000/internal/telegram"
	"github.com/fiboy83/vibesphere--sub000/pkg/config"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"go.uber.org/fx"
)

// SessionFactory builds one session per chat.
type SessionFactory interface {
	New(scope string, n notice.Notifier) *session.Session
}

type Opts struct {
	fx.In

	Telegram telegram.Client
	Sessions SessionFactory
	Chain    chain.Client
	Logger   logger.Logger
	Config   *config.Config
}

type CommandImpl struct {
	Telegram telegram.Client
	Sessions SessionFactory
	Chain    chain.Client
	Logger   logger.Logger
	Config   *config.Config

	mu       sync.Mutex
	sessions map[int64]*session.Session
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Telegram: opts.Telegram,
		Sessions: opts.Sessions,
		Chain:    opts.Chain,
		Logger:   opts.Logger.WithComponent("Command"),
		Config:   opts.Config,
		sessions: make(map[int64]*session.Session),
	}
}

var _ command.Client = (*CommandImpl)(nil)

// sessionFor returns the chat's session, starting it on first use. Notices
// of the session are delivered to the chat.
func (c *CommandImpl) sessionFor(ctx context.Context, chatID int64) (*session.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sessions[chatID]; ok {
		return s, nil
	}

	s := c.Sessions.New(strconv.FormatInt(chatID, 10), notice.Func(func(_ context.Context, n domain.Notice) {
		c.reply(chatID, noticeIcon(n.Level)+" "+n.Message)
	}))
	s.OnHandleStatus(func(st handle.Status) {
		switch st.State {
		case handle.StateAvailable:
			c.reply(chatID, "✅ "+c.displayHandle(st.Handle)+" is available. Claim it with /claim "+st.Handle)
		case handle.StateTaken:
			c.reply(chatID, "⛔ "+c.displayHandle(st.Handle)+" is already taken.")
		case handle.StateError:
			c.reply(chatID, "⚠️ Could not check "+c.displayHandle(st.Handle)+" right now.")
		}
	})
	if err := s.Start(ctx); err != nil {
		s.Close()
		return nil, err
	}

	c.sessions[chatID] = s
	c.Logger.Info("Chat session started", "chatID", chatID)
	return s, nil
}

func (c *CommandImpl) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, s := range c.sessions {
		s.Close()
		delete(c.sessions, id)
	}
}

func (c *CommandImpl) reply(chatID int64, text string) {
	if _, err := c.Telegram.SendMessage(chatID, text); err != nil {
		c.Logger.Warn("Failed to reply", "chatID", chatID, "error", err)
	}
}

func (c *CommandImpl) replyMarkdown(chatID int64, text string) {
	if _, err := c.Telegram.SendMarkdown(chatID, text); err != nil {
		c.Logger.Warn("Failed to reply", "chatID", chatID, "error", err)
	}
}

func noticeIcon(level domain.NoticeLevel) string {
	switch level {
	case domain.NoticeSuccess:
		return "✅"
	case domain.NoticeError:
		return "⚠️"
	default:
		return "ℹ️"
	}
}
