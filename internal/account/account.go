// Package account persists the preferences of each connected wallet under
// keys namespaced by its address.
package account

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/internal/storage"
	"github.com/fiboy83/vibesphere--sub000/pkg/formatter"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
)

const (
	kindProfile      = "profile"
	kindBookmarks    = "bookmarks"
	kindLikes        = "likes"
	kindTransactions = "txs"

	DefaultDisplayName = "Vibe Explorer"
	DefaultThemeColor  = "#8b5cf6"
)

type Store struct {
	store  storage.Store
	logger logger.Logger
	now    func() time.Time
}

func New(store storage.Store, l logger.Logger) *Store {
	return &Store{
		store:  store,
		logger: l.WithComponent("AccountStore"),
		now:    time.Now,
	}
}

// NormalizeAddress lower-cases a hex address so the same wallet always maps
// to the same keys regardless of checksum casing.
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if common.IsHexAddress(address) {
		return strings.ToLower(common.HexToAddress(address).Hex())
	}
	return strings.ToLower(address)
}

func Key(kind, address string) string {
	return fmt.Sprintf("vibesphere:%s:%s", kind, NormalizeAddress(address))
}

// DefaultProfile is what a wallet gets on its first connect.
func DefaultProfile(address string, now time.Time) domain.Profile {
	return domain.Profile{
		DisplayName: DefaultDisplayName,
		Handle:      formatter.ShortAddress(NormalizeAddress(address)),
		Avatar:      "https://api.dicebear.com/7.x/identicon/svg?seed=" + NormalizeAddress(address),
		JoinLabel:   "Joined " + now.Format("January 2006"),
		ThemeColor:  DefaultThemeColor,
	}
}

// Load reads all four slots of an account. Missing or unreadable slots fall
// back to defaults; an account without a transaction record gets an empty
// history.
func (s *Store) Load(ctx context.Context, address string) (domain.Preferences, error) {
	if address == "" {
		return domain.Preferences{}, fmt.Errorf("empty account address")
	}
	prefs := domain.Preferences{
		Address:      NormalizeAddress(address),
		Profile:      DefaultProfile(address, s.now()),
		Bookmarks:    map[int64]bool{},
		Likes:        map[int64]bool{},
		Transactions: []domain.Transaction{},
	}

	var profile domain.Profile
	if s.read(ctx, Key(kindProfile, address), &profile) {
		prefs.Profile = profile
	}

	var bookmarks []int64
	if s.read(ctx, Key(kindBookmarks, address), &bookmarks) {
		prefs.Bookmarks = toSet(bookmarks)
	}

	var likes []int64
	if s.read(ctx, Key(kindLikes, address), &likes) {
		prefs.Likes = toSet(likes)
	}

	var txs []domain.Transaction
	if s.read(ctx, Key(kindTransactions, address), &txs) && txs != nil {
		prefs.Transactions = txs
	}

	return prefs, nil
}

func (s *Store) SaveProfile(ctx context.Context, address string, p domain.Profile) error {
	return s.write(ctx, Key(kindProfile, address), p)
}

func (s *Store) SaveBookmarks(ctx context.Context, address string, ids map[int64]bool) error {
	return s.write(ctx, Key(kindBookmarks, address), fromSet(ids))
}

func (s *Store) SaveLikes(ctx context.Context, address string, ids map[int64]bool) error {
	return s.write(ctx, Key(kindLikes, address), fromSet(ids))
}

// AppendTransaction adds tx to the stored history and returns the new history.
func (s *Store) AppendTransaction(ctx context.Context, address string, tx domain.Transaction) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	s.read(ctx, Key(kindTransactions, address), &txs)
	txs = append(txs, tx)
	if err := s.write(ctx, Key(kindTransactions, address), txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *Store) read(ctx context.Context, key string, dst any) bool {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to read account slot", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Debug("Ignoring malformed account slot", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

func toSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func fromSet(set map[int64]bool) []int64 {
	ids := make([]int64, 0, len(set))
	for id, ok := range set {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
