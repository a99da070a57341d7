package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/fiboy83/vibesphere--sub000/internal/account"
	"github.com/fiboy83/vibesphere--sub000/internal/chain"
	"github.com/fiboy83/vibesphere--sub000/internal/chain/chainimpl"
	"github.com/fiboy83/vibesphere--sub000/internal/command"
	"github.com/fiboy83/vibesphere--sub000/internal/command/commandimpl"
	"github.com/fiboy83/vibesphere--sub000/internal/gateway"
	"github.com/fiboy83/vibesphere--sub000/internal/invite"
	"github.com/fiboy83/vibesphere--sub000/internal/migrations"
	"github.com/fiboy83/vibesphere--sub000/internal/mirror"
	"github.com/fiboy83/vibesphere--sub000/internal/notice"
	"github.com/fiboy83/vibesphere--sub000/internal/session"
	"github.com/fiboy83/vibesphere--sub000/internal/storage"
	"github.com/fiboy83/vibesphere--sub000/internal/telegram"
	"github.com/fiboy83/vibesphere--sub000/internal/telegram/telegramimpl"
	"github.com/fiboy83/vibesphere--sub000/pkg/config"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
	fx.Invoke(migrate),
	storage.Module,
	fx.Provide(
		fx.Annotate(
			newMirror,
			fx.As(new(mirror.FeedPort)),
		),
		account.New,
		newInvite,
		fx.Annotate(
			chainimpl.New,
			fx.As(new(chain.Client)),
		),
		fx.Annotate(
			session.NewFactory,
			fx.As(new(commandimpl.SessionFactory)),
		),
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
		gateway.New,
	),
	fx.Invoke(run),
)

func newMirror(store storage.Store, cfg *config.Config, log logger.Logger) *mirror.Mirror {
	return mirror.New(mirror.Opts{
		Store:        store,
		Logger:       log,
		Notifier:     notice.NewLog(log),
		Limit:        cfg.Mirror.FeedLimit,
		PollInterval: cfg.Mirror.PollInterval,
	})
}

func newInvite(store storage.Store, cfg *config.Config, log logger.Logger) *invite.Gate {
	return invite.New(cfg.Invite.Codes, store, log)
}

// migrate brings the schema up to date when the postgres driver is selected.
func migrate(cfg *config.Config, log logger.Logger) error {
	if cfg.Storage.Driver != storage.DriverPostgres {
		return nil
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return err
	}
	log.Info("Database migrations applied")
	return nil
}

func run(lc fx.Lifecycle, log logger.Logger, cmdClient command.Client, _ *http.Server) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := cmdClient.HandleCommand(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("Command loop stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			cmdClient.Close()
			return nil
		},
	})
}
