package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrVideoUnavailable indicates the video itself is gone or private.
	ErrVideoUnavailable = errors.New("video unavailable")
	// ErrTooManyRequests indicates the upstream served a captcha wall.
	ErrTooManyRequests = errors.New("too many requests")
	// ErrNoCaptions indicates the video exists but reports no transcripts.
	ErrNoCaptions = errors.New("no caption data")
	// ErrNotTranslatable indicates a translate call on a descriptor that
	// does not support translation.
	ErrNotTranslatable = errors.New("transcript is not translatable")
)

// ConnectionError wraps transport-level failures reaching the upstream, as
// opposed to the upstream answering with a definitive condition.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("upstream connection failed during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
