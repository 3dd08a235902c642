package queue

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when a constructor receives a bad argument.
	ErrInvalidArgument = errors.New("queue: invalid argument")

	// ErrEmptyQueue is returned when peeking or removing from an empty queue.
	ErrEmptyQueue = errors.New("queue: empty")

	// ErrUnsupported is returned by operations the FIFOSet deliberately does not implement.
	ErrUnsupported = errors.New("queue: unsupported operation")

	// ErrMalformedStream is returned when decoding a truncated or corrupt stream.
	ErrMalformedStream = errors.New("queue: malformed stream")

	// ErrCapacityExceeded is the panic value raised when the buffer cannot grow any further.
	ErrCapacityExceeded = errors.New("queue: max capacity exceeded")
)
