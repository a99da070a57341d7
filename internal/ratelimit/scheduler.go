package ratelimit

import (
	"context"
	"time"

	"github.com/fiboy83/vibesphere--sub000/internal/metrics"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"github.com/go-co-op/gocron/v2"
)

// SchedulePrune evicts idle callers every interval until the returned stop
// function is called.
func SchedulePrune(l *SlidingWindow, interval time.Duration, log logger.Logger) (func(context.Context) error, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if n := l.Prune(); n > 0 {
				metrics.LimiterPruned.Add(float64(n))
				log.Debug("Pruned idle rate limit keys", "count", n)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}

	s.Start()
	return func(context.Context) error { return s.Shutdown() }, nil
}
