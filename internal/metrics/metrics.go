package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Actions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vibesphere",
		Name:      "social_actions_total",
		Help:      "Social actions by kind and outcome.",
	}, []string{"action", "result"})

	MirrorPrunes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vibesphere",
		Name:      "mirror_prunes_total",
		Help:      "Feed writes that hit the storage quota and were halved.",
	})

	MirrorRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vibesphere",
		Name:      "mirror_refreshes_total",
		Help:      "Periodic reads of the shared feed slot.",
	})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vibesphere",
		Name:      "gateway_rate_limited_total",
		Help:      "API requests rejected by the rate limit gate.",
	})

	LimiterPruned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vibesphere",
		Name:      "gateway_limiter_pruned_keys_total",
		Help:      "Idle client keys evicted from the rate limiter.",
	})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vibesphere",
		Name:      "gateway_upstream_requests_total",
		Help:      "Requests forwarded to the chain RPC by endpoint and outcome.",
	}, []string{"endpoint", "result"})
)

const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)
