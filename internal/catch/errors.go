package catch

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/nefry/weft/specs"
)

// IsCommonNetReadError checks if the error is an expected connection
// teardown rather than a failure worth reporting.
func IsCommonNetReadError(err error) bool {
	if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, net.ErrClosed) {
		return true
	}
	if neterr, ok := err.(net.Error); ok && neterr.Timeout() {
		return true
	}
	if operr, ok := err.(*net.OpError); ok && operr.Op == "read" {
		return true
	}
	return false
}

// CatchCommonErr maps timeout and context failures onto the module
// sentinels, passing anything else through.
func CatchCommonErr(err error) error {
	if err == nil {
		return nil
	}
	if neterr, ok := err.(net.Error); ok && neterr.Timeout() {
		return specs.ErrTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return specs.ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return specs.ErrCancelled
	}
	return err
}

// CatchContextCancel maps a finished context onto the module sentinels.
func CatchContextCancel(ctx context.Context) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return specs.ErrTimeout
	}
	return specs.ErrCancelled
}
