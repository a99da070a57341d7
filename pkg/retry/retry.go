// Package retry re-runs chain reads that may lag behind a confirmed write.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
)

// Config bounds an exponential backoff. Zero fields take the defaults.
type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      1.5,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxRetries == 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = d.InitialInterval
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = d.MaxInterval
	}
	if c.Multiplier < 1 {
		c.Multiplier = d.Multiplier
	}
	return c
}

func (c Config) policy(ctx context.Context) backoff.BackOffContext {
	c = c.withDefaults()
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.InitialInterval
	bo.MaxInterval = c.MaxInterval
	bo.Multiplier = c.Multiplier
	bo.MaxElapsedTime = 0
	bo.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(bo, c.MaxRetries), ctx)
}

// Value calls read until it returns without error, the retries are spent,
// read returns a Permanent error or ctx is done. The last error is returned
// unwrapped.
func Value[T any](ctx context.Context, log logger.Logger, what string, cfg Config, read func() (T, error)) (T, error) {
	attempt := 0
	v, err := backoff.RetryNotifyWithData(func() (T, error) {
		attempt++
		v, err := read()
		if err != nil && ctx.Err() != nil {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, cfg.policy(ctx), func(err error, next time.Duration) {
		log.Warn("Chain read failed, retrying",
			"operation", what,
			"attempt", attempt,
			"error", err,
			"next_attempt_in", next.Round(time.Millisecond).String(),
		)
	})

	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}
	return v, err
}

// Do is Value for operations without a result.
func Do(ctx context.Context, log logger.Logger, what string, op func() error, cfg Config) error {
	_, err := Value(ctx, log, what, cfg, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}

// Permanent stops Value and Do from retrying err.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
