package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

func main() {
	ctx := context.Background()

	var timeout time.Duration
	var trace bool
	var memLimit uint
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.UintVar(&memLimit, "mem-limit", 0, "enable a dictionary arena size limit, in bytes")
	flag.Parse()

	var opts = []VMOption{
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, WithLogf(log.Printf))
	}
	if memLimit != 0 {
		opts = append(opts, WithMemLimit(memLimit))
	}
	vm := New(opts...)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	err := vm.Run(ctx)
	if trace {
		vm.DumpStack(os.Stderr)
		vm.DumpDictionary(os.Stderr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
}
