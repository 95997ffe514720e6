package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/thetarby/semaphore"
	"github.com/thetarby/semaphore/internal/stress"
)

//
// Usage information.
//

const usage = `
  Usage: semstress [options]

  Runs concurrent acquire/release cycles against a semaphore and checks
  that no more than -capacity holders are ever active at once.

  Options:

    -capacity <n>     semaphore permits [128]
    -workers <n>      concurrent goroutines [256]
    -cycles <n>       acquire/release rounds per worker [100]
    -hold <duration>  maximum time a permit is held [1ms]
    -timeout <dur>    per-acquire timeout, 0 waits forever [0]
    -json             print the report as JSON

`

// Command options.
var flags = flag.NewFlagSet("semstress", flag.ExitOnError)
var capacity = flags.Int("capacity", semaphore.DefaultCapacity, "")
var workers = flags.Int("workers", 256, "")
var cycles = flags.Int("cycles", 100, "")
var hold = flags.Duration("hold", time.Millisecond, "")
var timeout = flags.Duration("timeout", 0, "")
var asJSON = flags.Bool("json", false, "")

// Print usage and exit.
func printUsage() {
	fmt.Print(usage + "\n")
	os.Exit(0)
}

// Assert with msg.
func assert(ok bool, msg string) {
	if !ok {
		fmt.Fprintf(os.Stderr, "\n  Error: %s\n\n", msg)
		os.Exit(1)
	}
}

// Check error.
func check(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n  Error: %s\n\n", err)
		os.Exit(1)
	}
}

func main() {
	flags.Usage = printUsage
	check(flags.Parse(os.Args[1:]))
	assert(flags.NArg() == 0, "unexpected arguments")

	cfg := stress.Config{
		Capacity: *capacity,
		Workers:  *workers,
		Cycles:   *cycles,
		Hold:     *hold,
		Timeout:  *timeout,
	}
	check(cfg.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := stress.Run(ctx, cfg)

	if *asJSON {
		b, jerr := rep.JSON()
		check(jerr)
		fmt.Println(string(b))
	} else {
		fmt.Println(rep.Render())
	}

	if err != nil {
		stop()
		check(err)
	}
}
