package semaphore

import "sync"

// Locker returns a Locker interface that implements
// the Lock and Unlock methods by calling s.Acquire and s.Release.
// Lock waits without a timeout and panics if the semaphore is closed;
// Unlock panics on an excess release.
func (s *Semaphore) Locker() sync.Locker {
	return (*locker)(s)
}

type locker Semaphore

func (l *locker) Lock() {
	if err := (*Semaphore)(l).Acquire(0); err != nil {
		panic(err)
	}
}

func (l *locker) Unlock() {
	if err := (*Semaphore)(l).Release(); err != nil {
		panic(err)
	}
}
