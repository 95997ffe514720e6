package semaphore

import "time"

// ISemaphore is a counting semaphore that grants permits to queued callers in
// arrival order.
type ISemaphore interface {
	Acquire(timeout time.Duration) error
	TryAcquire() bool
	Release() error

	AvailablePermits() int
	QueueLength() int
}

var _ ISemaphore = (*Semaphore)(nil)
