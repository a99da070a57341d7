package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/fiboy83/vibesphere--sub000/internal/chain"
	"github.com/fiboy83/vibesphere--sub000/internal/ratelimit"
	"github.com/fiboy83/vibesphere--sub000/pkg/config"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
	Chain  chain.Client
}

// New registers the HTTP server and the limiter pruning job with the
// application lifecycle.
func New(opts Opts) *http.Server {
	cfg := opts.Config
	log := opts.Logger.WithComponent("Gateway")

	limiter := ratelimit.NewSlidingWindow(cfg.Gateway.RateMax, cfg.Gateway.RateWindow, nil)
	h := NewHandler(HandlerOpts{
		Chain:           opts.Chain,
		Limiter:         limiter,
		UpstreamURL:     cfg.Chain.RPCURL,
		UpstreamRPS:     cfg.Gateway.UpstreamRPS,
		FallbackBalance: cfg.Gateway.FallbackBalance,
		Logger:          opts.Logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var stopPrune func(context.Context) error
	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			stopPrune, err = ratelimit.SchedulePrune(limiter, cfg.Gateway.RateWindow, log)
			if err != nil {
				_ = ln.Close()
				return err
			}
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", "error", err)
				}
			}()
			log.Info("HTTP gateway listening", "addr", srv.Addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if stopPrune != nil {
				_ = stopPrune(ctx)
			}
			return srv.Shutdown(ctx)
		},
	})

	return srv
}
