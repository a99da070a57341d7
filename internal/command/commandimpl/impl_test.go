package commandimpl

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fiboy83/vibesphere--sub000/internal/account"
	mock_chain "github.com/fiboy83/vibesphere--sub000/internal/chain/mocks"
	"github.com/fiboy83/vibesphere--sub000/internal/invite"
	"github.com/fiboy83/vibesphere--sub000/internal/mirror"
	"github.com/fiboy83/vibesphere--sub000/internal/session"
	"github.com/fiboy83/vibesphere--sub000/internal/storage"
	"github.com/fiboy83/vibesphere--sub000/pkg/config"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const alice = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"

type fakeTelegram struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeTelegram) Enabled() bool { return true }

func (f *fakeTelegram) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeTelegram) StopReceivingUpdates() {}

func (f *fakeTelegram) SendMessage(_ int64, text string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return len(f.sent), nil
}

func (f *fakeTelegram) SendMarkdown(chatID int64, text string) (int, error) {
	return f.SendMessage(chatID, text)
}

func (f *fakeTelegram) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

func newCommand(t *testing.T) (*CommandImpl, *fakeTelegram, *mock_chain.MockClient) {
	t.Helper()
	store := storage.NewMemory(0)
	cfg := &config.Config{}
	cfg.Handle.Debounce = 300 * time.Millisecond
	cfg.Handle.Suffix = ".opn"
	cfg.Gateway.FallbackBalance = "0.00"

	client := mock_chain.NewMockClient(gomock.NewController(t))
	factory := session.NewFactory(session.FactoryOpts{
		Feed:     mirror.New(mirror.Opts{Store: store, Logger: logger.NewNop(), PollInterval: time.Hour}),
		Accounts: account.New(store, logger.NewNop()),
		Chain:    client,
		Invite:   invite.New([]string{"VIBE-001"}, store, logger.NewNop()),
		Config:   cfg,
		Logger:   logger.NewNop(),
		Clock:    clockwork.NewFakeClock(),
	})

	tg := &fakeTelegram{}
	c := New(Opts{Telegram: tg, Sessions: factory, Chain: client, Logger: logger.NewNop(), Config: cfg})
	t.Cleanup(c.Close)
	return c, tg, client
}

func TestCommand_InviteGate(t *testing.T) {
	c, tg, _ := newCommand(t)
	ctx := context.Background()

	require.NoError(t, c.processCommand(ctx, 1, "feed", ""))
	assert.Contains(t, tg.last(), "invite only")

	require.NoError(t, c.processCommand(ctx, 1, "invite", "nope"))
	assert.Contains(t, tg.last(), "not valid")

	require.NoError(t, c.processCommand(ctx, 1, "invite", "vibe-001"))
	assert.Contains(t, tg.last(), "Welcome")

	require.NoError(t, c.processCommand(ctx, 1, "feed", ""))
	assert.Contains(t, tg.last(), "Latest vibes")
}

func TestCommand_InviteIsPerChat(t *testing.T) {
	c, tg, _ := newCommand(t)
	ctx := context.Background()

	require.NoError(t, c.processCommand(ctx, 1, "invite", "VIBE-001"))
	require.NoError(t, c.processCommand(ctx, 999, "feed", ""))
	assert.Contains(t, tg.last(), "invite only")

	require.NoError(t, c.processCommand(ctx, 1, "feed", ""))
	assert.Contains(t, tg.last(), "Latest vibes")
}

func TestCommand_CommentOnFocusedVibe(t *testing.T) {
	c, tg, _ := newCommand(t)
	ctx := context.Background()
	require.NoError(t, c.processCommand(ctx, 1, "invite", "VIBE-001"))
	require.NoError(t, c.processCommand(ctx, 1, "connect", alice))
	assert.Contains(t, tg.last(), "Connected as Vibe Explorer")

	require.NoError(t, c.processCommand(ctx, 1, "vibe", "1"))
	require.NoError(t, c.processCommand(ctx, 1, "comment", "1 gm"))

	s, err := c.sessionFor(ctx, 1)
	require.NoError(t, err)
	focused := s.View().FocusedPost
	require.NotNil(t, focused)
	assert.Equal(t, 5, focused.Counts.Comments)
	assert.Equal(t, "gm", focused.Comments[0].Body)
	assert.Contains(t, tg.last(), "Replies")
}

func TestCommand_LikeAndTabs(t *testing.T) {
	c, tg, _ := newCommand(t)
	ctx := context.Background()
	require.NoError(t, c.processCommand(ctx, 7, "invite", "VIBE-001"))

	require.NoError(t, c.processCommand(ctx, 7, "like", "2"))
	assert.Equal(t, "Liked #2 (29 likes)", tg.last())
	require.NoError(t, c.processCommand(ctx, 7, "like", "2"))
	assert.Equal(t, "Unliked #2 (28 likes)", tg.last())

	require.NoError(t, c.processCommand(ctx, 7, "tab", "casino"))
	assert.Contains(t, tg.last(), "Unknown tab")
	require.NoError(t, c.processCommand(ctx, 7, "back", ""))
	assert.Equal(t, "Already at home.", tg.last())
}

func TestCommand_Balance(t *testing.T) {
	c, tg, client := newCommand(t)
	ctx := context.Background()
	require.NoError(t, c.processCommand(ctx, 3, "invite", "VIBE-001"))

	client.EXPECT().Balance(gomock.Any(), alice).Return(nil, assert.AnError)
	require.NoError(t, c.processCommand(ctx, 3, "balance", alice))
	assert.True(t, strings.HasSuffix(tg.last(), "0.00 OPN"))
}

func TestParseDraft(t *testing.T) {
	d := parseDraft("media https://x.io/clip.mp4 look at this")
	require.NotNil(t, d.Media)
	assert.Equal(t, "https://x.io/clip.mp4", d.Media.URL)
	assert.Equal(t, "video", string(d.Media.Kind))
	assert.Equal(t, "look at this", d.Text)

	d = parseDraft("article long form")
	assert.Equal(t, "article", string(d.Kind))
	assert.Equal(t, "long form", d.Text)
}
