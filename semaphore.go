// Package semaphore provides a counting semaphore that admits up to a fixed
// number of concurrent holders and queues the rest in arrival order.
//
// A released permit is handed directly to the oldest queued acquire, so a late
// caller can never overtake an earlier one. Queued acquires may give up on a
// timeout or a context; a grant and a cancellation never both take effect for
// the same caller.
package semaphore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultCapacity is the capacity used by NewDefault.
const DefaultCapacity = 128

// Semaphore is a counting semaphore with a FIFO queue of waiting acquires.
// The zero value is not usable; create one with New or NewDefault.
type Semaphore struct {
	mu       sync.Mutex
	capacity int
	held     int // permits checked out, in [0, capacity]
	waiters  waitQueue
	closed   bool
}

// New returns a semaphore with the given number of permits. capacity must be at
// least 1, otherwise the returned error wraps ErrInvalidArgument.
func New(capacity int) (*Semaphore, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidArgument, capacity)
	}
	return &Semaphore{capacity: capacity}, nil
}

// NewDefault returns a semaphore with DefaultCapacity permits.
func NewDefault() *Semaphore {
	return &Semaphore{capacity: DefaultCapacity}
}

// Acquire takes a permit, waiting in line if none is free. A timeout of zero or
// less waits indefinitely; otherwise ErrTimeout is returned if no permit was
// granted in time.
func (s *Semaphore) Acquire(timeout time.Duration) error {
	if timeout <= 0 {
		return s.AcquireContext(context.Background())
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := s.AcquireContext(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}

// AcquireContext is like Acquire but gives up when ctx is done, returning
// ctx.Err(). If the permit was granted at the same moment ctx ended, the grant
// wins and nil is returned; the caller then owns the permit.
func (s *Semaphore) AcquireContext(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.held < s.capacity {
		s.held++
		s.mu.Unlock()
		return nil
	}

	w := newWaiter()
	s.waiters.push(w)
	s.mu.Unlock()

	select {
	case <-w.ready:
		return w.err
	case <-ctx.Done():
		s.mu.Lock()
		removed := s.waiters.remove(w)
		s.mu.Unlock()
		if !removed {
			// Resolved by Release or Close before we got the lock.
			<-w.ready
			return w.err
		}
		return ctx.Err()
	}
}

// TryAcquire takes a permit only if one is free right now.
func (s *Semaphore) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.held == s.capacity {
		return false
	}
	s.held++
	return true
}

// Release returns a permit. When callers are queued the permit goes straight to
// the oldest of them and the held count does not change.
func (s *Semaphore) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.waiters.grantHead() {
		return nil
	}
	if s.held == 0 {
		return ErrExcessRelease
	}
	s.held--
	return nil
}

// Close rejects every queued acquire with ErrCancelled and makes future acquires
// fail with ErrClosed. Permits already held can still be released.
func (s *Semaphore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.waiters.rejectAll(ErrCancelled)
}

func (s *Semaphore) AvailablePermits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capacity - s.held
}

func (s *Semaphore) QueueLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiters.Len()
}

func (s *Semaphore) Capacity() int {
	return s.capacity
}

func (s *Semaphore) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("Semaphore(%d/%d, waiters=%d)", s.held, s.capacity, s.waiters.Len())
}
