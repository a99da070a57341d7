// Package feed holds the pure operations over the post tree. Every walk is
// depth-first: the node itself, then its comments, then its quoted post.
//
// A repost quotes a frozen copy that keeps the original's id. Lookups by id
// search live posts first and only enter quoted copies when no live post
// matches, so actions keep landing on the original.
package feed

import "github.com/fiboy83/vibesphere--sub000/internal/domain"

// TransformFunc maps a located post to its replacement. It receives a
// shallow copy whose Comments slice is private, so it may prepend to it or
// change counters without touching the original tree.
type TransformFunc func(p *domain.Post) *domain.Post

// LocateAndTransform replaces the first post with the given id anywhere in
// the tree. Nodes on the path to the match are copied; untouched siblings
// are shared. The input tree is never modified. When nothing matches the
// original slice is returned with found=false.
func LocateAndTransform(posts []*domain.Post, id int64, fn TransformFunc) ([]*domain.Post, bool) {
	if out, found := locate(posts, id, fn, false); found {
		return out, true
	}
	return locate(posts, id, fn, true)
}

func locate(posts []*domain.Post, id int64, fn TransformFunc, intoQuoted bool) ([]*domain.Post, bool) {
	for i, p := range posts {
		replaced, found := transformNode(p, id, fn, intoQuoted)
		if !found {
			continue
		}
		out := make([]*domain.Post, len(posts))
		copy(out, posts)
		out[i] = replaced
		return out, true
	}
	return posts, false
}

func transformNode(p *domain.Post, id int64, fn TransformFunc, intoQuoted bool) (*domain.Post, bool) {
	if p == nil {
		return nil, false
	}
	if p.ID == id {
		return fn(shallowCopy(p)), true
	}
	if comments, found := locate(p.Comments, id, fn, intoQuoted); found {
		cp := *p
		cp.Comments = comments
		return &cp, true
	}
	if !intoQuoted {
		return nil, false
	}
	if quoted, found := transformNode(p.Quoted, id, fn, true); found {
		cp := *p
		cp.Quoted = quoted
		return &cp, true
	}
	return nil, false
}

func shallowCopy(p *domain.Post) *domain.Post {
	cp := *p
	if p.Comments != nil {
		cp.Comments = make([]*domain.Post, len(p.Comments))
		copy(cp.Comments, p.Comments)
	}
	if p.Media != nil {
		m := *p.Media
		cp.Media = &m
	}
	return &cp
}

// Find returns the post with the given id, preferring a live post over a
// quoted copy.
func Find(posts []*domain.Post, id int64) (*domain.Post, bool) {
	var match *domain.Post
	matchID := func(p *domain.Post) bool {
		if p.ID == id {
			match = p
			return false
		}
		return true
	}
	walk(posts, matchID, false)
	if match == nil {
		walk(posts, matchID, true)
	}
	return match, match != nil
}

// Collect returns every post in the tree for which keep is true, in walk
// order. A quoted copy is only included when no live post shares its id.
func Collect(posts []*domain.Post, keep func(p *domain.Post) bool) []*domain.Post {
	var out []*domain.Post
	seen := make(map[int64]bool)
	walk(posts, func(p *domain.Post) bool {
		seen[p.ID] = true
		if keep(p) {
			out = append(out, p)
		}
		return true
	}, false)
	walk(posts, func(p *domain.Post) bool {
		if !seen[p.ID] && keep(p) {
			seen[p.ID] = true
			out = append(out, p)
		}
		return true
	}, true)
	return out
}

// Walk visits every node depth-first until visit returns false.
func Walk(posts []*domain.Post, visit func(p *domain.Post) bool) bool {
	return walk(posts, visit, true)
}

func walk(posts []*domain.Post, visit func(p *domain.Post) bool, intoQuoted bool) bool {
	for _, p := range posts {
		if !walkNode(p, visit, intoQuoted) {
			return false
		}
	}
	return true
}

func walkNode(p *domain.Post, visit func(p *domain.Post) bool, intoQuoted bool) bool {
	if p == nil {
		return true
	}
	if !visit(p) {
		return false
	}
	if !walk(p.Comments, visit, intoQuoted) {
		return false
	}
	if !intoQuoted {
		return true
	}
	return walkNode(p.Quoted, visit, true)
}

// Clone deep-copies a post and everything below it.
func Clone(p *domain.Post) *domain.Post {
	if p == nil {
		return nil
	}
	cp := shallowCopy(p)
	cp.Comments = CloneAll(p.Comments)
	cp.Quoted = Clone(p.Quoted)
	return cp
}

func CloneAll(posts []*domain.Post) []*domain.Post {
	if posts == nil {
		return nil
	}
	out := make([]*domain.Post, len(posts))
	for i, p := range posts {
		out[i] = Clone(p)
	}
	return out
}
