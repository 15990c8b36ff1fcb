package specs

import "errors"

var (
	ErrClosed    = errors.New("weft: closed")
	ErrCancelled = errors.New("weft: cancelled")
	ErrTimeout   = errors.New("weft: timeout")
	ErrTooLarge  = errors.New("weft: too large content")
)
