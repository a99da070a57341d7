package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapWithCode(t *testing.T) {
	err := WrapWithCode(ErrSyncFailed, CodeSyncFailed, "like target missing")

	assert.True(t, IsSyncFailed(err))
	assert.Equal(t, CodeSyncFailed, GetCode(err))
	assert.Equal(t, "like target missing", GetMessage(err))
	assert.Equal(t, "like target missing: vibration failed to sync", err.Error())

	wrapped := fmt.Errorf("session: %w", err)
	assert.Equal(t, CodeSyncFailed, GetCode(wrapped))
	assert.Nil(t, WrapWithCode(nil, CodeChain, "ignored"))
}

func TestGetMessage_PlainError(t *testing.T) {
	assert.Equal(t, "not found", GetMessage(ErrNotFound))
	assert.Equal(t, "", GetMessage(nil))
	assert.Equal(t, "", GetCode(ErrNotFound))
}
