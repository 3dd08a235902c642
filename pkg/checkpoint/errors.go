package checkpoint

import "errors"

var (
	// ErrPingFailed is returned when Redis does not answer the initial ping.
	ErrPingFailed = errors.New("checkpoint: ping failed")

	// ErrNotFound is returned when no checkpoint exists under a key.
	ErrNotFound = errors.New("checkpoint: not found")
)
