package semaphore

import "errors"

var (
	// ErrInvalidArgument is returned by New when the capacity is not positive.
	ErrInvalidArgument = errors.New("semaphore: permits must be a positive integer")

	// ErrTimeout is returned by Acquire when the timeout elapses before a permit is granted.
	ErrTimeout = errors.New("semaphore: acquire timeout")

	// ErrExcessRelease is returned by Release when no permit is held.
	ErrExcessRelease = errors.New("semaphore: released too many times: current count is 0")

	// ErrCancelled is delivered to acquires that were still queued when Close was called.
	ErrCancelled = errors.New("semaphore: acquire cancelled")

	// ErrClosed is returned by acquires issued after Close.
	ErrClosed = errors.New("semaphore: closed")
)
