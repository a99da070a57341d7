// Package notice delivers transient user-visible messages.
package notice

import (
	"context"
	"sync"

	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
)

type Notifier interface {
	Notify(ctx context.Context, n domain.Notice)
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, n domain.Notice)

func (f Func) Notify(ctx context.Context, n domain.Notice) { f(ctx, n) }

type Log struct {
	logger logger.Logger
}

func NewLog(l logger.Logger) *Log {
	return &Log{logger: l.WithComponent("Notice")}
}

func (l *Log) Notify(_ context.Context, n domain.Notice) {
	switch n.Level {
	case domain.NoticeError:
		l.logger.Warn(n.Message, "notice_id", n.ID)
	default:
		l.logger.Info(n.Message, "notice_id", n.ID)
	}
}

// Buffer keeps the most recent notices, oldest first.
type Buffer struct {
	mu    sync.Mutex
	items []domain.Notice
	limit int
}

func NewBuffer(limit int) *Buffer {
	return &Buffer{limit: limit}
}

func (b *Buffer) Notify(_ context.Context, n domain.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, n)
	if b.limit > 0 && len(b.items) > b.limit {
		b.items = b.items[len(b.items)-b.limit:]
	}
}

func (b *Buffer) All() []domain.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Notice, len(b.items))
	copy(out, b.items)
	return out
}

// Messages returns just the texts, handy for assertions.
func (b *Buffer) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.items))
	for i, n := range b.items {
		out[i] = n.Message
	}
	return out
}

type fanout []Notifier

// Fanout delivers each notice to every non-nil notifier in order.
func Fanout(notifiers ...Notifier) Notifier {
	var f fanout
	for _, n := range notifiers {
		if n != nil {
			f = append(f, n)
		}
	}
	return f
}

func (f fanout) Notify(ctx context.Context, n domain.Notice) {
	for _, notifier := range f {
		notifier.Notify(ctx, n)
	}
}

// Discard drops every notice.
var Discard Notifier = Func(func(context.Context, domain.Notice) {})
