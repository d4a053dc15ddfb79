package main

import (
	"fmt"
	"io"

	"github.com/arlowright/threadforth/internal/fileinput"
	"github.com/arlowright/threadforth/internal/flushio"
	"github.com/arlowright/threadforth/internal/runeio"
)

// ioCore bundles the VM's input queue, output stream, and logging, so that
// arena and interpreter code can halt through a single choke point rather
// than threading io.Writer/io.Reader everywhere.
type ioCore struct {
	logfn func(mess string, args ...interface{})

	fileinput.Input
	out flushio.WriteFlusher

	closers []io.Closer
}

func (core *ioCore) logf(mess string, args ...interface{}) {
	if core.logfn != nil {
		core.logfn(mess, args...)
	}
}

func (core *ioCore) withLogPrefix(prefix string) func() {
	logfn := core.logfn
	core.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() { core.logfn = logfn }
}

func (core *ioCore) Close() (err error) {
	for i := len(core.closers) - 1; i >= 0; i-- {
		if cerr := core.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// halt flushes output, logs the reason, and panics (with errHalt for a nil
// or io.EOF reason, otherwise with err itself) so that the goroutine
// started by VM.Run can unwind through panicerr.Recover.
func (core *ioCore) halt(err error) {
	func() {
		defer func() { recover() }()
		if core.out != nil {
			if ferr := core.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	func() {
		defer func() { recover() }()
		switch err {
		case nil, io.EOF:
			core.logf("halt")
		default:
			core.logf("halt error: %v", err)
		}
	}()

	if err == nil || err == io.EOF {
		panic(errHalt)
	}
	panic(err)
}

func (core *ioCore) haltif(err error) {
	if err != nil {
		core.halt(err)
	}
}

func (core *ioCore) writeRune(r rune) {
	if _, err := runeio.WriteANSIRune(core.out, r); err != nil {
		core.halt(err)
	}
}

// readRune reads the next input rune, flushing output first so that any
// interactive prompt is visible before blocking. A NUL rune (fileinput's
// placeholder for a stream boundary) is retried transparently.
func (core *ioCore) readRune() (rune, error) {
	if core.out != nil {
		if err := core.out.Flush(); err != nil {
			return 0, err
		}
	}
	r, _, err := core.Input.ReadRune()
	for r == 0 && err == nil {
		r, _, err = core.Input.ReadRune()
	}
	return r, err
}

// pushInput enqueues a new input stream ahead of whatever is left in the
// queue, used by the bootstrap loader to read startup.f before handing
// control back to the caller-supplied input (typically stdin).
func (core *ioCore) pushInput(r io.Reader) {
	core.Queue = append([]io.Reader{r}, core.Queue...)
}

// curLoc reports the current scan location, for error messages.
func (core *ioCore) curLoc() string {
	return fmt.Sprint(core.Scan.Location)
}
