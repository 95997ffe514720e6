package semaphore_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/thetarby/semaphore"
)

func Example() {
	sem, err := semaphore.New(2)
	if err != nil {
		panic(err)
	}
	fmt.Println("Created:", sem)

	_ = sem.Acquire(0)
	_ = sem.Acquire(0)
	fmt.Println("Available:", sem.AvailablePermits())

	// Nobody releases, so a bounded wait gives up.
	err = sem.Acquire(10 * time.Millisecond)
	fmt.Println("Timed out:", errors.Is(err, semaphore.ErrTimeout))

	_ = sem.Release()
	_ = sem.Release()
	fmt.Println("After release:", sem)

	err = sem.Release()
	fmt.Println(err)

	// Output:
	// Created: Semaphore(0/2, waiters=0)
	// Available: 0
	// Timed out: true
	// After release: Semaphore(0/2, waiters=0)
	// semaphore: released too many times: current count is 0
}

func ExampleNew_invalid() {
	_, err := semaphore.New(0)
	fmt.Println(err)
	fmt.Println(errors.Is(err, semaphore.ErrInvalidArgument))

	// Output:
	// semaphore: permits must be a positive integer: got 0
	// true
}
