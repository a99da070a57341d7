// Package engine owns the in-memory feed and the connected account's
// engagement state, and applies social actions to them optimistically.
package engine

import (
	"context"
	"maps"
	"sync"

	"github.com/fiboy83/vibesphere--sub000/internal/account"
	"github.com/fiboy83/vibesphere--sub000/internal/chain"
	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/internal/feed"
	"github.com/fiboy83/vibesphere--sub000/internal/metrics"
	"github.com/fiboy83/vibesphere--sub000/internal/mirror"
	"github.com/fiboy83/vibesphere--sub000/internal/notice"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"github.com/fiboy83/vibesphere--sub000/pkg/retry"
	"github.com/jonboulle/clockwork"
)

const justNow = "just now"

// Availability tells whether a handle was confirmed free for claiming.
type Availability interface {
	Available(handle string) bool
}

type Opts struct {
	Feed     mirror.FeedPort
	Accounts *account.Store
	Chain    chain.Client
	Handles  Availability
	Notifier notice.Notifier
	Logger   logger.Logger
	Clock    clockwork.Clock
	Retry    retry.Config
}

type Engine struct {
	feedPort mirror.FeedPort
	accounts *account.Store
	chain    chain.Client
	handles  Availability
	notifier notice.Notifier
	logger   logger.Logger
	clock    clockwork.Clock
	retry    retry.Config
	locks    *keyedLocks

	mu         sync.RWMutex
	feed       []*domain.Post
	liked      map[int64]bool
	bookmarked map[int64]bool
	profile    domain.Profile
	txs        []domain.Transaction
	address    string
	lastID     int64
}

func New(opts Opts) *Engine {
	e := &Engine{
		feedPort:   opts.Feed,
		accounts:   opts.Accounts,
		chain:      opts.Chain,
		handles:    opts.Handles,
		notifier:   opts.Notifier,
		logger:     opts.Logger.WithComponent("Engine"),
		clock:      opts.Clock,
		retry:      opts.Retry,
		locks:      newKeyedLocks(),
		liked:      map[int64]bool{},
		bookmarked: map[int64]bool{},
		profile:    guestProfile(),
	}
	if e.clock == nil {
		e.clock = clockwork.NewRealClock()
	}
	if e.notifier == nil {
		e.notifier = notice.Discard
	}
	return e
}

func guestProfile() domain.Profile {
	return domain.Profile{DisplayName: account.DefaultDisplayName, Handle: "guest", ThemeColor: account.DefaultThemeColor}
}

// ReplaceFeed swaps in a feed read from elsewhere, such as a mirror refresh.
func (e *Engine) ReplaceFeed(posts []*domain.Post) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.feed = posts
}

// Connect loads everything scoped to address. It does nothing when address
// is already the connected account and reports whether a reload happened.
func (e *Engine) Connect(ctx context.Context, address string) (bool, error) {
	address = account.NormalizeAddress(address)

	e.mu.RLock()
	same := address == e.address
	e.mu.RUnlock()
	if same {
		return false, nil
	}

	prefs, err := e.accounts.Load(ctx, address)
	if err != nil {
		return false, err
	}

	e.mu.Lock()
	e.address = prefs.Address
	e.profile = prefs.Profile
	e.liked = prefs.Likes
	e.bookmarked = prefs.Bookmarks
	e.txs = prefs.Transactions
	e.mu.Unlock()

	e.logger.Info("Account connected", "address", prefs.Address)
	return true, nil
}

// Disconnect drops the account scoped state from memory. Persisted slots
// are kept.
func (e *Engine) Disconnect() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.address = ""
	e.profile = guestProfile()
	e.liked = map[int64]bool{}
	e.bookmarked = map[int64]bool{}
	e.txs = nil
}

func (e *Engine) Feed() []*domain.Post {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*domain.Post(nil), e.feed...)
}

// Post finds id anywhere in the feed tree.
func (e *Engine) Post(id int64) (*domain.Post, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return feed.Find(e.feed, id)
}

func (e *Engine) LikedPosts() []*domain.Post {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return feed.Collect(e.feed, func(p *domain.Post) bool { return e.liked[p.ID] })
}

func (e *Engine) BookmarkedPosts() []*domain.Post {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return feed.Collect(e.feed, func(p *domain.Post) bool { return e.bookmarked[p.ID] })
}

func (e *Engine) IsLiked(id int64) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.liked[id]
}

func (e *Engine) IsBookmarked(id int64) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bookmarked[id]
}

func (e *Engine) Profile() domain.Profile {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.profile
}

func (e *Engine) Address() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.address
}

func (e *Engine) Transactions() []domain.Transaction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]domain.Transaction(nil), e.txs...)
}

// nextID is time derived and strictly increasing. Caller holds e.mu.
func (e *Engine) nextID() int64 {
	id := e.clock.Now().UnixMilli()
	if id <= e.lastID {
		id = e.lastID + 1
	}
	e.lastID = id
	return id
}

// feedState is what a rollback restores.
type feedState struct {
	feed       []*domain.Post
	liked      map[int64]bool
	bookmarked map[int64]bool
}

// snapshot relies on the tree primitives never mutating a feed in place:
// holding the old slice is enough to restore it.
func (e *Engine) snapshot() feedState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return feedState{feed: e.feed, liked: maps.Clone(e.liked), bookmarked: maps.Clone(e.bookmarked)}
}

func (e *Engine) restore(s feedState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.feed = s.feed
	e.liked = s.liked
	e.bookmarked = s.bookmarked
}

// persistFeed writes the current feed to the shared slot.
func (e *Engine) persistFeed(ctx context.Context) error {
	return e.feedPort.Save(ctx, e.Feed())
}

func (e *Engine) notify(ctx context.Context, level domain.NoticeLevel, msg string) {
	e.notifier.Notify(ctx, domain.NewNotice(level, msg))
}

func (e *Engine) observe(action string, err error) {
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultFailed
	}
	metrics.Actions.WithLabelValues(action, result).Inc()
}
