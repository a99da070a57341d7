// Package mirror emulates a shared feed on top of a key/value store: one
// well-known slot holds the newest posts and every reader polls it.
package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/internal/feed"
	"github.com/fiboy83/vibesphere--sub000/internal/metrics"
	"github.com/fiboy83/vibesphere--sub000/internal/notice"
	"github.com/fiboy83/vibesphere--sub000/internal/storage"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"github.com/go-co-op/gocron/v2"
)

const (
	FeedKey             = "vibesphere:feed"
	DefaultLimit        = 20
	DefaultPollInterval = 3 * time.Second

	pruneMessage = "Local storage is full. Older vibes were pruned to make room."
)

//go:generate go run go.uber.org/mock/mockgen -source=mirror.go -destination=mocks/mock.go

// FeedPort is what the action engine needs from a shared feed. The local
// mirror is one implementation; a pub/sub or database backed feed service
// can replace it without touching the engine.
type FeedPort interface {
	Load(ctx context.Context) []*domain.Post
	Save(ctx context.Context, posts []*domain.Post) error
	Subscribe(ctx context.Context, fn func(posts []*domain.Post)) (stop func(), err error)
}

type Opts struct {
	Store        storage.Store
	Logger       logger.Logger
	Notifier     notice.Notifier
	Limit        int
	PollInterval time.Duration
}

type Mirror struct {
	store    storage.Store
	logger   logger.Logger
	notifier notice.Notifier
	limit    int
	interval time.Duration
}

var _ FeedPort = (*Mirror)(nil)

func New(opts Opts) *Mirror {
	m := &Mirror{
		store:    opts.Store,
		logger:   opts.Logger.WithComponent("Mirror"),
		notifier: opts.Notifier,
		limit:    opts.Limit,
		interval: opts.PollInterval,
	}
	if m.limit <= 0 {
		m.limit = DefaultLimit
	}
	if m.interval <= 0 {
		m.interval = DefaultPollInterval
	}
	if m.notifier == nil {
		m.notifier = notice.Discard
	}
	return m
}

// Load reads the shared slot. An absent, unreadable or non-array value
// yields the seed feed.
func (m *Mirror) Load(ctx context.Context) []*domain.Post {
	raw, ok, err := m.store.Get(ctx, FeedKey)
	if err != nil {
		m.logger.Warn("Failed to read shared feed, using seed", "error", err)
		return feed.Seed()
	}
	if !ok {
		return feed.Seed()
	}

	var posts []*domain.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil || posts == nil {
		m.logger.Debug("Shared feed is malformed, using seed", "error", err)
		return feed.Seed()
	}
	if !wellFormed(posts) {
		m.logger.Debug("Shared feed holds null posts, using seed")
		return feed.Seed()
	}
	return posts
}

// wellFormed reports whether no post in the tree is null.
func wellFormed(posts []*domain.Post) bool {
	for _, p := range posts {
		if p == nil || !wellFormed(p.Comments) {
			return false
		}
		if p.Quoted != nil && !wellFormed([]*domain.Post{p.Quoted}) {
			return false
		}
	}
	return true
}

// Save writes the newest posts to the shared slot. When the store is out of
// capacity the newer half is kept and written once more; if that fails too
// the write is dropped.
func (m *Mirror) Save(ctx context.Context, posts []*domain.Post) error {
	if len(posts) > m.limit {
		posts = posts[:m.limit]
	}

	err := m.write(ctx, posts)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		return err
	}

	pruned := posts[:max(1, len(posts)/2)]
	metrics.MirrorPrunes.Inc()
	m.logger.Warn("Shared feed hit the storage quota, pruning", "from", len(posts), "to", len(pruned))
	m.notifier.Notify(ctx, domain.NewNotice(domain.NoticeInfo, pruneMessage))

	if err := m.write(ctx, pruned); err != nil {
		m.logger.Debug("Dropping shared feed write after prune", "error", err)
	}
	return nil
}

func (m *Mirror) write(ctx context.Context, posts []*domain.Post) error {
	if posts == nil {
		posts = []*domain.Post{}
	}
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}
	return m.store.Set(ctx, FeedKey, string(data))
}

// Subscribe delivers the shared feed to fn before returning and then on
// every poll interval until stop is called or ctx is done.
func (m *Mirror) Subscribe(ctx context.Context, fn func(posts []*domain.Post)) (func(), error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create mirror scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			metrics.MirrorRefreshes.Inc()
			fn(m.Load(ctx))
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to schedule mirror refresh: %w", err)
	}

	fn(m.Load(ctx))
	scheduler.Start()
	m.logger.Debug("Mirror subscription started", "interval", m.interval)

	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			if err := scheduler.Shutdown(); err != nil {
				m.logger.Error("Failed to shut down mirror scheduler", "error", err)
			}
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			stop()
		case <-done:
		}
	}()

	return stop, nil
}
