package mirror

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/internal/feed"
	"github.com/fiboy83/vibesphere--sub000/internal/notice"
	"github.com/fiboy83/vibesphere--sub000/internal/storage"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePosts(n int) []*domain.Post {
	posts := make([]*domain.Post, n)
	for i := range posts {
		posts[i] = &domain.Post{
			ID:       int64(n - i),
			Body:     fmt.Sprintf("vibe %d", n-i),
			Kind:     domain.KindText,
			Comments: []*domain.Post{},
		}
	}
	return posts
}

func newMirror(store storage.Store, notifier notice.Notifier) *Mirror {
	return New(Opts{
		Store:        store,
		Logger:       logger.NewNop(),
		Notifier:     notifier,
		PollInterval: 10 * time.Millisecond,
	})
}

func TestLoad_FallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	cases := map[string]*string{
		"absent":     nil,
		"malformed":  ptr("{not json"),
		"object":     ptr(`{"id":1}`),
		"null":       ptr("null"),
		"null post":  ptr(`[null,{"id":7}]`),
		"null reply": ptr(`[{"id":7,"comments":[null]}]`),
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			store := storage.NewMemory(0)
			if raw != nil {
				require.NoError(t, store.Set(ctx, FeedKey, *raw))
			}
			got := newMirror(store, nil).Load(ctx)
			assert.Equal(t, feed.Seed(), got)
		})
	}
}

func TestSave_TruncatesToNewest(t *testing.T) {
	ctx := context.Background()
	m := newMirror(storage.NewMemory(0), nil)

	posts := makePosts(25)
	require.NoError(t, m.Save(ctx, posts))

	loaded := m.Load(ctx)
	require.Len(t, loaded, DefaultLimit)
	assert.Equal(t, posts[:DefaultLimit], loaded)
	assert.Len(t, posts, 25, "caller's slice is left alone")
}

func TestSave_EmptyFeedRoundTrips(t *testing.T) {
	ctx := context.Background()
	m := newMirror(storage.NewMemory(0), nil)

	require.NoError(t, m.Save(ctx, nil))
	assert.Empty(t, m.Load(ctx))
}

func TestSave_PrunesOnQuota(t *testing.T) {
	ctx := context.Background()
	posts := makePosts(20)

	// measure what half the feed costs and allow just that
	probe := storage.NewMemory(0)
	require.NoError(t, newMirror(probe, nil).write(ctx, posts[:10]))

	buf := notice.NewBuffer(10)
	m := newMirror(storage.NewMemory(probe.Used()), buf)
	require.NoError(t, m.Save(ctx, posts))

	loaded := m.Load(ctx)
	assert.Equal(t, posts[:10], loaded)
	assert.Equal(t, []string{pruneMessage}, buf.Messages())
}

func TestSave_PruneKeepsTheNewestPost(t *testing.T) {
	ctx := context.Background()
	posts := makePosts(1)

	probe := storage.NewMemory(0)
	require.NoError(t, newMirror(probe, nil).write(ctx, posts))

	m := newMirror(storage.NewMemory(probe.Used()+1), nil)
	require.NoError(t, m.Save(ctx, makePosts(2)))
	loaded := m.Load(ctx)
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(2), loaded[0].ID)
}

func TestSave_DropsWhenPruneStillTooBig(t *testing.T) {
	ctx := context.Background()
	buf := notice.NewBuffer(10)
	m := newMirror(storage.NewMemory(5), buf)

	require.NoError(t, m.Save(ctx, makePosts(4)))
	assert.Equal(t, feed.Seed(), m.Load(ctx))
	assert.Len(t, buf.All(), 1)
}

func TestSubscribe_DeliversUntilStopped(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory(0)
	m := newMirror(store, nil)

	var mu sync.Mutex
	var seen [][]*domain.Post
	stop, err := m.Subscribe(ctx, func(posts []*domain.Post) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, posts)
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) >= 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Save(ctx, makePosts(2)))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen[len(seen)-1]) == 2
	}, time.Second, 5*time.Millisecond)

	stop()
	stop()

	mu.Lock()
	n := len(seen)
	mu.Unlock()
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, len(seen), n+1)
}

func TestSubscribe_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := newMirror(storage.NewMemory(0), nil)

	calls := make(chan struct{}, 100)
	_, err := m.Subscribe(ctx, func([]*domain.Post) { calls <- struct{}{} })
	require.NoError(t, err)

	<-calls
	cancel()
	time.Sleep(50 * time.Millisecond)
	for len(calls) > 0 {
		<-calls
	}
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, calls)
}

func ptr(s string) *string { return &s }
