package feed

import (
	"testing"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bumpLikes(p *domain.Post) *domain.Post {
	p.Counts.Likes++
	return p
}

func TestLocateAndTransform_EveryNode(t *testing.T) {
	tree := Seed()

	var ids []int64
	Walk(tree, func(p *domain.Post) bool {
		ids = append(ids, p.ID)
		return true
	})
	require.Equal(t, []int64{1, 2, 3, 31, 311, 4, 41}, ids)

	for _, id := range ids {
		before, _ := Find(tree, id)
		out, found := LocateAndTransform(tree, id, bumpLikes)
		require.True(t, found, "id %d", id)

		after, ok := Find(out, id)
		require.True(t, ok)
		assert.Equal(t, before.Counts.Likes+1, after.Counts.Likes)

		again, _ := Find(tree, id)
		assert.Equal(t, before.Counts.Likes, again.Counts.Likes, "input tree must not change")
	}
}

func TestLocateAndTransform_Missing(t *testing.T) {
	tree := Seed()
	out, found := LocateAndTransform(tree, 999, bumpLikes)
	assert.False(t, found)
	assert.Same(t, &tree[0], &out[0])
}

func TestLocateAndTransform_SharesUntouchedSiblings(t *testing.T) {
	tree := Seed()
	out, found := LocateAndTransform(tree, 311, bumpLikes)
	require.True(t, found)

	assert.Same(t, tree[0], out[0])
	assert.Same(t, tree[1], out[1])
	assert.NotSame(t, tree[2], out[2])
	assert.Same(t, tree[3], out[3])
}

func TestLocateAndTransform_FirstMatchWins(t *testing.T) {
	tree := []*domain.Post{
		{ID: 7, Comments: []*domain.Post{{ID: 7}}},
	}
	out, found := LocateAndTransform(tree, 7, bumpLikes)
	require.True(t, found)
	assert.Equal(t, 1, out[0].Counts.Likes)
	assert.Equal(t, 0, out[0].Comments[0].Counts.Likes)
}

func TestLocateAndTransform_PrependDoesNotLeak(t *testing.T) {
	tree := Seed()
	out, found := LocateAndTransform(tree, 31, func(p *domain.Post) *domain.Post {
		p.Comments = append([]*domain.Post{{ID: 99}}, p.Comments...)
		return p
	})
	require.True(t, found)

	orig, _ := Find(tree, 31)
	next, _ := Find(out, 31)
	assert.Len(t, orig.Comments, 1)
	assert.Len(t, next.Comments, 2)
	assert.Equal(t, int64(99), next.Comments[0].ID)
}

func TestCollect(t *testing.T) {
	tree := Seed()
	want := map[int64]bool{41: true, 311: true}
	got := Collect(tree, func(p *domain.Post) bool { return want[p.ID] })
	require.Len(t, got, 2)
	assert.Equal(t, int64(311), got[0].ID)
	assert.Equal(t, int64(41), got[1].ID)
}

func TestClone(t *testing.T) {
	tree := Seed()
	cp := Clone(tree[2])
	cp.Comments[0].Body = "changed"
	assert.NotEqual(t, "changed", tree[2].Comments[0].Body)
	assert.Equal(t, tree[3].Quoted, Clone(tree[3]).Quoted)
}

func TestLocateAndTransform_PrefersLiveOverQuoted(t *testing.T) {
	live := &domain.Post{ID: 2, Comments: []*domain.Post{}}
	tree := []*domain.Post{
		{ID: 10, Kind: domain.KindRepost, Quoted: Clone(live)},
		live,
	}

	out, found := LocateAndTransform(tree, 2, bumpLikes)
	require.True(t, found)
	assert.Equal(t, 0, out[0].Quoted.Counts.Likes)
	assert.Equal(t, 1, out[1].Counts.Likes)

	got, ok := Find(out, 2)
	require.True(t, ok)
	assert.Same(t, out[1], got)
}

func TestCollect_SkipsQuotedCopiesOfLivePosts(t *testing.T) {
	live := &domain.Post{ID: 2}
	tree := []*domain.Post{
		{ID: 10, Quoted: Clone(live)},
		live,
	}
	got := Collect(tree, func(p *domain.Post) bool { return p.ID == 2 })
	require.Len(t, got, 1)
	assert.Same(t, live, got[0])
}
