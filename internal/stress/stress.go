// Package stress drives a semaphore with many concurrent holders and checks that
// the number of simultaneous holders never exceeds its capacity.
package stress

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mediocregopher/mediocre-go-lib/mrand"
	"golang.org/x/sync/errgroup"

	"github.com/thetarby/semaphore"
)

type Config struct {
	Capacity int
	Workers  int
	Cycles   int // acquire/release rounds per worker

	// Hold is the upper bound of the time a permit is kept; each hold is picked
	// in [Hold/2, Hold].
	Hold time.Duration

	// Timeout bounds each acquire. Zero waits indefinitely.
	Timeout time.Duration
}

func (c Config) Validate() error {
	switch {
	case c.Capacity < 1:
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	case c.Workers < 1:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	case c.Cycles < 1:
		return fmt.Errorf("cycles must be positive, got %d", c.Cycles)
	case c.Hold < 0:
		return fmt.Errorf("hold must not be negative, got %v", c.Hold)
	case c.Timeout < 0:
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	return nil
}

// ErrBoundExceeded is returned by Run when more holders than permits were seen.
var ErrBoundExceeded = errors.New("stress: concurrent holders exceeded capacity")

// ErrUnbalanced is returned by Run when the semaphore did not return to its
// initial state after every worker finished.
var ErrUnbalanced = errors.New("stress: permits not returned")

// Run executes cfg against a fresh semaphore. Acquire timeouts are counted, not
// treated as failures. The returned Report is filled in even when err is non-nil.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	sem, err := semaphore.New(cfg.Capacity)
	if err != nil {
		return Report{}, err
	}

	var cur, peak, acquired, timeouts int64
	g, ctx := errgroup.WithContext(ctx)
	start := time.Now()

	for i := 0; i < cfg.Workers; i++ {
		holds := schedule(cfg.Hold, cfg.Cycles)
		g.Go(func() error {
			for _, hold := range holds {
				if err := ctx.Err(); err != nil {
					return err
				}

				err := sem.Acquire(cfg.Timeout)
				if errors.Is(err, semaphore.ErrTimeout) {
					atomic.AddInt64(&timeouts, 1)
					continue
				} else if err != nil {
					return err
				}
				atomic.AddInt64(&acquired, 1)

				n := atomic.AddInt64(&cur, 1)
				for {
					p := atomic.LoadInt64(&peak)
					if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
						break
					}
				}
				if n > int64(cfg.Capacity) {
					_ = sem.Release()
					return fmt.Errorf("%w: %d holders, capacity %d", ErrBoundExceeded, n, cfg.Capacity)
				}

				err = sleep(ctx, hold)
				atomic.AddInt64(&cur, -1)
				if rerr := sem.Release(); rerr != nil {
					return rerr
				}
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	err = g.Wait()
	rep := Report{
		Capacity:  cfg.Capacity,
		Workers:   cfg.Workers,
		Acquired:  int(atomic.LoadInt64(&acquired)),
		Timeouts:  int(atomic.LoadInt64(&timeouts)),
		MaxHeld:   int(atomic.LoadInt64(&peak)),
		Available: sem.AvailablePermits(),
		Queued:    sem.QueueLength(),
		Elapsed:   time.Since(start),
	}
	if err != nil {
		return rep, err
	}
	if !rep.OK() {
		return rep, fmt.Errorf("%w: available=%d queued=%d", ErrUnbalanced, rep.Available, rep.Queued)
	}
	return rep, nil
}

// schedule picks n hold durations in [upper/2, upper].
func schedule(upper time.Duration, n int) []time.Duration {
	holds := make([]time.Duration, n)
	if upper <= 0 {
		return holds
	}
	half := upper / 2
	for i := range holds {
		holds[i] = half + time.Duration(mrand.Intn(int(upper-half)+1))
	}
	return holds
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
