package semaphore

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mediocregopher/mediocre-go-lib/mrand"
)

func holder(s ISemaphore, capacity int32, num_iterations int, activity *int32, cdone chan bool) {
	for i := 0; i < num_iterations; i++ {
		if err := s.Acquire(0); err != nil {
			panic(err)
		}
		n := atomic.AddInt32(activity, 1)
		if n < 1 || n > capacity {
			panic(fmt.Sprintf("acquire(%d)\n", n))
		}
		for i := 0; i < 100; i++ {
		}
		atomic.AddInt32(activity, -1)
		if err := s.Release(); err != nil {
			panic(err)
		}
	}
	cdone <- true
}

// impatient acquires with a short timeout and gives up on the cycle when it fires.
func impatient(s ISemaphore, capacity int32, timeouts []time.Duration, activity *int32, cdone chan bool) {
	for _, timeout := range timeouts {
		err := s.Acquire(timeout)
		if err == ErrTimeout {
			continue
		} else if err != nil {
			panic(err)
		}
		n := atomic.AddInt32(activity, 1)
		if n < 1 || n > capacity {
			panic(fmt.Sprintf("acquire(%d)\n", n))
		}
		atomic.AddInt32(activity, -1)
		if err := s.Release(); err != nil {
			panic(err)
		}
	}
	cdone <- true
}

func HammerSemaphore(gomaxprocs, capacity, numHolders, num_iterations int) {
	runtime.GOMAXPROCS(gomaxprocs)
	// Number of goroutines currently holding a permit.
	var activity int32
	s, err := New(capacity)
	if err != nil {
		panic(err)
	}
	cdone := make(chan bool)
	var i int
	for i = 0; i < numHolders/2; i++ {
		go holder(s, int32(capacity), num_iterations, &activity, cdone)
	}
	for ; i < numHolders; i++ {
		timeouts := make([]time.Duration, num_iterations)
		for j := range timeouts {
			timeouts[j] = time.Duration(1+mrand.Intn(50)) * time.Microsecond
		}
		go impatient(s, int32(capacity), timeouts, &activity, cdone)
	}
	for i := 0; i < numHolders; i++ {
		<-cdone
	}
	if a, q := s.AvailablePermits(), s.QueueLength(); a != capacity || q != 0 {
		panic(fmt.Sprintf("unbalanced: available=%d queued=%d", a, q))
	}
}

func TestSemaphoreHammer(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(-1))
	n := 1000
	if testing.Short() {
		n = 5
	}
	HammerSemaphore(1, 1, 1, n)
	HammerSemaphore(1, 1, 3, n)
	HammerSemaphore(1, 3, 10, n)
	HammerSemaphore(4, 1, 2, n)
	HammerSemaphore(4, 2, 3, n)
	HammerSemaphore(4, 3, 10, n)
	HammerSemaphore(10, 1, 2, n)
	HammerSemaphore(10, 3, 3, n)
	HammerSemaphore(10, 5, 10, n)
	HammerSemaphore(100, 5, 50, n)
	HammerSemaphore(100, 100, 100, n)
}
