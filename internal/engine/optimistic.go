package engine

import "context"

// Optimistic applies a local change right away and keeps it only if the
// confirmation succeeds. On failure the state captured before apply is put
// back and the confirmation error is returned.
func Optimistic[S any](
	ctx context.Context,
	snapshot func() S,
	apply func() error,
	confirm func(ctx context.Context) error,
	restore func(S),
) error {
	before := snapshot()
	if err := apply(); err != nil {
		return err
	}
	if err := confirm(ctx); err != nil {
		restore(before)
		return err
	}
	return nil
}
