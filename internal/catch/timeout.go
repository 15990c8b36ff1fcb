package catch

import (
	"context"
	"time"
)

type timeoutRes[T any] struct {
	res T
	err error
}

// CallWithTimeoutContext runs fn under an optional timeout on top of
// ctx, mapping a deadline or cancellation onto the module sentinels.
// A non-positive timeout adds none.
func CallWithTimeoutContext[TR any](ctx context.Context, timeout time.Duration, fn func(context.Context) (TR, error)) (TR, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resc := make(chan timeoutRes[TR], 1)
	go func() {
		res, err := fn(ctx)
		resc <- timeoutRes[TR]{res, err}
	}()

	select {
	case <-ctx.Done():
		return *new(TR), CatchContextCancel(ctx)
	case res := <-resc:
		return res.res, res.err
	}
}

// CallWithTimeoutContextErr is [CallWithTimeoutContext] for functions
// returning only an error.
func CallWithTimeoutContextErr(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	_, err := CallWithTimeoutContext(ctx, timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
