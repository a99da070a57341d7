package session

import (
	"github.com/fiboy83/vibesphere--sub000/internal/account"
	"github.com/fiboy83/vibesphere--sub000/internal/chain"
	"github.com/fiboy83/vibesphere--sub000/internal/engine"
	"github.com/fiboy83/vibesphere--sub000/internal/handle"
	"github.com/fiboy83/vibesphere--sub000/internal/invite"
	"github.com/fiboy83/vibesphere--sub000/internal/mirror"
	"github.com/fiboy83/vibesphere--sub000/internal/notice"
	"github.com/fiboy83/vibesphere--sub000/internal/theme"
	"github.com/fiboy83/vibesphere--sub000/pkg/config"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"github.com/fiboy83/vibesphere--sub000/pkg/retry"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

type FactoryOpts struct {
	fx.In

	Feed     mirror.FeedPort
	Accounts *account.Store
	Chain    chain.Client
	Invite   *invite.Gate
	Config   *config.Config
	Logger   logger.Logger
	Clock    clockwork.Clock `optional:"true"`
}

// Factory builds sessions that share the feed, storage and chain but own
// their navigation, theme and engagement state.
type Factory struct {
	opts FactoryOpts
}

func NewFactory(opts FactoryOpts) *Factory {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Factory{opts: opts}
}

// New builds a session for scope whose notices go to n.
func (f *Factory) New(scope string, n notice.Notifier) *Session {
	o := f.opts
	checker := handle.New(o.Chain, o.Clock, o.Config.Handle.Debounce, o.Logger)
	eng := engine.New(engine.Opts{
		Feed:     o.Feed,
		Accounts: o.Accounts,
		Chain:    o.Chain,
		Handles:  checker,
		Notifier: n,
		Logger:   o.Logger,
		Clock:    o.Clock,
		Retry:    retry.DefaultConfig(),
	})
	return New(Opts{
		Engine:  eng,
		Feed:    o.Feed,
		Theme:   theme.New(),
		Handles: checker,
		Invite:  o.Invite,
		Scope:   scope,
		Logger:  o.Logger,
	})
}
