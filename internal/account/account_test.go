package account

import (
	"context"
	"testing"
	"time"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/internal/storage"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"
	bob   = "0x4bbeEB066eD09B7AEd07bF39EEe0460DFa261520"
)

func newStore() (*Store, *storage.Memory) {
	mem := storage.NewMemory(0)
	s := New(mem, logger.NewNop())
	s.now = func() time.Time { return time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC) }
	return s, mem
}

func TestLoad_Defaults(t *testing.T) {
	s, _ := newStore()
	prefs, err := s.Load(context.Background(), alice)
	require.NoError(t, err)

	assert.Equal(t, "0xab5801a7d398351b8be11c439e05c5b3259aec9b", prefs.Address)
	assert.Equal(t, DefaultDisplayName, prefs.Profile.DisplayName)
	assert.Equal(t, "0xab58...ec9b", prefs.Profile.Handle)
	assert.Equal(t, "Joined October 2026", prefs.Profile.JoinLabel)
	assert.Empty(t, prefs.Bookmarks)
	assert.Empty(t, prefs.Likes)
	assert.NotNil(t, prefs.Transactions)
	assert.Empty(t, prefs.Transactions)
}

func TestLoad_ScopedPerAccount(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore()

	profile := DefaultProfile(alice, time.Now())
	profile.DisplayName = "Alice"
	require.NoError(t, s.SaveProfile(ctx, alice, profile))
	require.NoError(t, s.SaveLikes(ctx, alice, map[int64]bool{2: true, 1: true}))
	require.NoError(t, s.SaveBookmarks(ctx, alice, map[int64]bool{3: true}))
	_, err := s.AppendTransaction(ctx, alice, domain.Transaction{Hash: "0x01", ValueWei: "1"})
	require.NoError(t, err)

	a, err := s.Load(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Alice", a.Profile.DisplayName)
	assert.Equal(t, map[int64]bool{1: true, 2: true}, a.Likes)
	assert.Equal(t, map[int64]bool{3: true}, a.Bookmarks)
	require.Len(t, a.Transactions, 1)

	b, err := s.Load(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, DefaultDisplayName, b.Profile.DisplayName)
	assert.Empty(t, b.Likes)
	assert.Empty(t, b.Bookmarks)
	assert.Empty(t, b.Transactions)
}

func TestLoad_ChecksumCasingSharesKeys(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore()
	require.NoError(t, s.SaveLikes(ctx, alice, map[int64]bool{9: true}))

	prefs, err := s.Load(ctx, "0xab5801a7d398351b8be11c439e05c5b3259aec9b")
	require.NoError(t, err)
	assert.True(t, prefs.Likes[9])
}

func TestLoad_MalformedSlotsFallBack(t *testing.T) {
	ctx := context.Background()
	s, mem := newStore()
	require.NoError(t, mem.Set(ctx, Key(kindProfile, alice), "garbage"))
	require.NoError(t, mem.Set(ctx, Key(kindTransactions, alice), "null"))

	prefs, err := s.Load(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, DefaultDisplayName, prefs.Profile.DisplayName)
	assert.NotNil(t, prefs.Transactions)
}

func TestAppendTransaction(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore()

	_, err := s.AppendTransaction(ctx, alice, domain.Transaction{Hash: "0x01"})
	require.NoError(t, err)
	txs, err := s.AppendTransaction(ctx, alice, domain.Transaction{Hash: "0x02"})
	require.NoError(t, err)

	require.Len(t, txs, 2)
	assert.Equal(t, "0x01", txs[0].Hash)
	assert.Equal(t, "0x02", txs[1].Hash)
}
