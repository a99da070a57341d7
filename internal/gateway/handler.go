package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fiboy83/vibesphere--sub000/internal/chain"
	"github.com/fiboy83/vibesphere--sub000/internal/ratelimit"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	tooManyRequests = "Too many requests. Please slow down."
	balanceDecimals = 4
	upstreamTimeout = 15 * time.Second
)

type HandlerOpts struct {
	Chain           chain.Client
	Limiter         ratelimit.Limiter
	UpstreamURL     string
	UpstreamRPS     float64
	FallbackBalance string
	HTTPClient      *http.Client
	Logger          logger.Logger
}

// Handler serves the thin proxy API in front of the chain RPC.
type Handler struct {
	chain    chain.Client
	limiter  ratelimit.Limiter
	upstream string
	fallback string
	client   *http.Client
	throttle *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
	validate *validator.Validate
	logger   logger.Logger
}

func NewHandler(opts HandlerOpts) *Handler {
	log := opts.Logger.WithComponent("Gateway")

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: upstreamTimeout}
	}
	limit := rate.Inf
	if opts.UpstreamRPS > 0 {
		limit = rate.Limit(opts.UpstreamRPS)
	}

	return &Handler{
		chain:    opts.Chain,
		limiter:  opts.Limiter,
		upstream: opts.UpstreamURL,
		fallback: opts.FallbackBalance,
		client:   client,
		throttle: rate.NewLimiter(limit, max(1, int(opts.UpstreamRPS))),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "balance",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		}),
		validate: validator.New(),
		logger:   log,
	}
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), upstreamTimeout)
}
