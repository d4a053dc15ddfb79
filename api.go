package main

import (
	"context"
	"errors"
	"io"

	"github.com/arlowright/threadforth/internal/panicerr"
	"golang.org/x/sync/errgroup"
)

// New constructs a VM, applying opts over a set of sane defaults (discard
// output, empty input).
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run initializes the dictionary, loads the startup kernel ahead of
// whatever input was configured, and drives the REPL to completion. The
// interpreter runs in its own goroutine via internal/panicerr, inside an
// errgroup, so a panic or a runtime.Goexit surfaces as a plain error here
// rather than taking the process down. ctx is checked before each token and
// after each inner-interpreter step, so a cancellation or timeout surfaces
// the same way at the next such check; a read blocked on input is not
// interrupted.
func (vm *VM) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return panicerr.Recover("VM", func() error {
			vm.init()
			vm.bootstrap()
			return vm.repl(ctx)
		})
	})

	err := g.Wait()
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, errHalt) || errors.Is(err, errWordEOF) {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return err
}

func WithInput(r io.Reader) VMOption  { return withInput(r) }
func WithOutput(w io.Writer) VMOption { return withOutput(w) }
func WithTee(w io.Writer) VMOption    { return withTee(w) }
func WithMemLimit(limit uint) VMOption { return withMemLimit(limit) }
func WithStartup(r io.Reader) VMOption { return withStartup(r) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
