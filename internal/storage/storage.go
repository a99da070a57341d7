// Package storage is the key/value port standing in for browser local
// storage. Writes are last-writer-wins and bounded by a byte quota.
package storage

import (
	"context"

	"github.com/fiboy83/vibesphere--sub000/pkg/errors"
)

// ErrQuotaExceeded is returned when a write would exceed the store's quota.
var ErrQuotaExceeded = errors.ErrQuotaExceeded

type Store interface {
	// Get returns the value under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

func entrySize(key, value string) int {
	return len(key) + len(value)
}
