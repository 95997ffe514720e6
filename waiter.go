package semaphore

import "github.com/gammazero/deque"

type empty struct{}

// waiter is a queued acquire. ready is closed exactly once, by the goroutine that
// removes the waiter from the queue while holding the semaphore lock.
type waiter struct {
	ready chan empty
	err   error // set before ready is closed; nil means granted
}

func newWaiter() *waiter {
	return &waiter{ready: make(chan empty)}
}

// waitQueue is the FIFO of pending acquires. Not safe for concurrent use, callers
// hold Semaphore.mu.
type waitQueue struct {
	q deque.Deque[*waiter]
}

func (wq *waitQueue) Len() int { return wq.q.Len() }

func (wq *waitQueue) push(w *waiter) { wq.q.PushBack(w) }

// grantHead resolves the oldest waiter with a permit. Returns false on an empty queue.
func (wq *waitQueue) grantHead() bool {
	if wq.q.Len() == 0 {
		return false
	}
	w := wq.q.PopFront()
	close(w.ready)
	return true
}

// remove takes w out of the queue if it is still there. A false result means w
// was already resolved by someone else.
func (wq *waitQueue) remove(w *waiter) bool {
	i := wq.q.Index(func(x *waiter) bool { return x == w })
	if i < 0 {
		return false
	}
	wq.q.Remove(i)
	return true
}

// rejectAll resolves every queued waiter with err, in arrival order.
func (wq *waitQueue) rejectAll(err error) {
	for wq.q.Len() > 0 {
		w := wq.q.PopFront()
		w.err = err
		close(w.ready)
	}
}
