package engine

import (
	"context"
	"strings"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/internal/feed"
	"github.com/fiboy83/vibesphere--sub000/pkg/errors"
)

const (
	msgSyncFailed = "vibration failed to sync"
	msgNotFound   = "original vibe not found"
)

// ToggleLike likes or unlikes id. The counter moves by one right away; if
// persisting fails the previous feed and liked set come back, and the
// restored liked set is written again.
func (e *Engine) ToggleLike(ctx context.Context, id int64) (liked bool, err error) {
	unlock := e.locks.Lock(id)
	defer unlock()
	defer func() { e.observe("like", err) }()

	err = Optimistic(ctx, e.snapshot,
		func() error {
			e.mu.Lock()
			defer e.mu.Unlock()

			liked = !e.liked[id]
			delta := 1
			if !liked {
				delta = -1
			}
			next, found := feed.LocateAndTransform(e.feed, id, func(p *domain.Post) *domain.Post {
				p.Counts.Likes += delta
				return p
			})
			if !found {
				return errors.WrapWithCode(errors.ErrSyncFailed, errors.CodeSyncFailed, "like target missing")
			}
			e.feed = next
			if liked {
				e.liked[id] = true
			} else {
				delete(e.liked, id)
			}
			return nil
		},
		func(ctx context.Context) error {
			if err := e.persistFeed(ctx); err != nil {
				return err
			}
			return e.persistLikes(ctx)
		},
		func(s feedState) {
			e.restore(s)
			if err := e.persistLikes(ctx); err != nil {
				e.logger.Warn("Failed to persist restored likes", "post_id", id, "error", err)
			}
		},
	)
	if err != nil {
		e.logger.Warn("Like failed", "post_id", id, "error", err)
		e.notify(ctx, domain.NoticeError, msgSyncFailed)
		return !liked, err
	}
	return liked, nil
}

// ToggleBookmark flips id in the bookmark set and persists it. There is no
// counter and no rollback.
func (e *Engine) ToggleBookmark(ctx context.Context, id int64) (bool, error) {
	e.mu.Lock()
	on := !e.bookmarked[id]
	if on {
		e.bookmarked[id] = true
	} else {
		delete(e.bookmarked, id)
	}
	address, set := e.address, copySet(e.bookmarked)
	e.mu.Unlock()

	var err error
	if address != "" {
		err = e.accounts.SaveBookmarks(ctx, address, set)
		if err != nil {
			e.logger.Warn("Failed to persist bookmarks", "error", err)
		}
	}
	e.observe("bookmark", err)
	return on, err
}

// Comment prepends a reply to the post with id and bumps its comment count.
// The updated target is returned so an open detail view can show it.
func (e *Engine) Comment(ctx context.Context, id int64, text string) (target *domain.Post, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.WrapWithCode(errors.ErrInvalidInput, errors.CodeInvalidInput, "comment is empty")
	}

	unlock := e.locks.Lock(id)
	defer unlock()
	defer func() { e.observe("comment", err) }()

	e.mu.Lock()
	reply := e.newPost(text, domain.KindText, nil)
	next, found := feed.LocateAndTransform(e.feed, id, func(p *domain.Post) *domain.Post {
		p.Comments = append([]*domain.Post{reply}, p.Comments...)
		p.Counts.Comments++
		target = p
		return p
	})
	if found {
		e.feed = next
	}
	e.mu.Unlock()

	if !found {
		e.notify(ctx, domain.NoticeError, msgSyncFailed)
		return nil, errors.WrapWithCode(errors.ErrSyncFailed, errors.CodeSyncFailed, "comment target missing")
	}

	if err := e.persistFeed(ctx); err != nil {
		e.logger.Warn("Failed to persist feed after comment", "post_id", id, "error", err)
	}
	return target, nil
}

// Repost quotes a copy of the post with id as a new top-level post. A
// failed write puts the whole feed back.
func (e *Engine) Repost(ctx context.Context, id int64) (repost *domain.Post, err error) {
	unlock := e.locks.Lock(id)
	defer unlock()
	defer func() { e.observe("repost", err) }()

	err = Optimistic(ctx, e.snapshot,
		func() error {
			e.mu.Lock()
			defer e.mu.Unlock()

			original, ok := feed.Find(e.feed, id)
			if !ok {
				return errors.WrapWithCode(errors.ErrNotFound, errors.CodeNotFound, "repost target missing")
			}
			quoted := feed.Clone(original)

			next, _ := feed.LocateAndTransform(e.feed, id, func(p *domain.Post) *domain.Post {
				p.Counts.Reposts++
				return p
			})
			repost = e.newPost("", domain.KindRepost, nil)
			repost.Quoted = quoted
			e.feed = append([]*domain.Post{repost}, next...)
			return nil
		},
		e.persistFeed,
		e.restore,
	)
	if err != nil {
		msg := msgSyncFailed
		if errors.IsNotFound(err) {
			msg = msgNotFound
		}
		e.logger.Warn("Repost failed", "post_id", id, "error", err)
		e.notify(ctx, domain.NoticeError, msg)
		return nil, err
	}
	return repost, nil
}

func (e *Engine) persistLikes(ctx context.Context) error {
	e.mu.RLock()
	address, set := e.address, copySet(e.liked)
	e.mu.RUnlock()
	if address == "" {
		return nil
	}
	return e.accounts.SaveLikes(ctx, address, set)
}

// newPost builds a node authored by the current profile. Caller holds e.mu.
func (e *Engine) newPost(text string, kind domain.Kind, media *domain.Media) *domain.Post {
	author := e.profile.Author()
	return &domain.Post{
		ID:           e.nextID(),
		AuthorHandle: author.Handle,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		CreatedAt:    justNow,
		Body:         text,
		Kind:         kind,
		Media:        media,
		Comments:     []*domain.Post{},
	}
}

func copySet(s map[int64]bool) map[int64]bool {
	out := make(map[int64]bool, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
