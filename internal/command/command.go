package command

import "context"

type Client interface {
	// HandleCommand consumes bot updates until ctx is done.
	HandleCommand(ctx context.Context) error
	// Close releases every chat session.
	Close()
}
