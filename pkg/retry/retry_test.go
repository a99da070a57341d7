package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fast = Config{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1}

func TestValue_RetriesUntilIndexed(t *testing.T) {
	calls := 0
	h, err := Value(context.Background(), logger.NewNop(), "handle", fast, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("not indexed yet")
		}
		return "vibe.opn", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "vibe.opn", h)
	assert.Equal(t, 3, calls)
}

func TestValue_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	_, err := Value(context.Background(), logger.NewNop(), "handle", fast, func() (string, error) {
		calls++
		return "", errors.New("rpc down")
	})
	assert.EqualError(t, err, "rpc down")
	assert.Equal(t, 4, calls)
}

func TestValue_PermanentStopsAtOnce(t *testing.T) {
	reverted := errors.New("execution reverted")
	calls := 0
	_, err := Value(context.Background(), logger.NewNop(), "handle", fast, func() (string, error) {
		calls++
		return "", Permanent(reverted)
	})
	assert.ErrorIs(t, err, reverted)
	assert.Equal(t, 1, calls)
}

func TestDo_StopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, logger.NewNop(), "handle", func() error {
		calls++
		cancel()
		return errors.New("rpc down")
	}, Config{MaxRetries: 10, InitialInterval: time.Hour})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
