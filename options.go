package main

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/arlowright/threadforth/internal/flushio"
)

// VMOption configures a VM at construction time.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = vmOptions{
	withInput(bytes.NewReader(nil)),
	withOutput(ioutil.Discard),
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

func VMOptions(opts ...VMOption) vmOptions { return vmOptions(opts) }

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) { vm.logfn = logfn }

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type memLimitOption uint
type startupOption struct{ io.Reader }

func withInput(r io.Reader) inputOption     { return inputOption{r} }
func withOutput(w io.Writer) outputOption   { return outputOption{w} }
func withTee(w io.Writer) teeOption         { return teeOption{w} }
func withMemLimit(limit uint) memLimitOption { return memLimitOption(limit) }
func withStartup(r io.Reader) startupOption { return startupOption{r} }

func (i inputOption) apply(vm *VM) {
	vm.stdinReader = i.Reader
	vm.Input.Reset(i.Reader)
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (lim memLimitOption) apply(vm *VM) { vm.memLimit = uint(lim) }

func (s startupOption) apply(vm *VM) { vm.startup = s.Reader }
