package main

import (
	"bytes"
	"io"
	"strings"
)

// compileBuiltins registers every entry of primitiveTable into a fresh
// dictionary, in table order, so that link chains and find's
// most-recent-wins semantics are well defined from the very first boot.
func (vm *VM) compileBuiltins() {
	for id := 0; id < numPrimitives; id++ {
		name := primitiveNames[id]
		entry, err := vm.pushPrimitive(name, immediatePrimitives[Cell(id)], Cell(id))
		if err != nil {
			vm.halt(err)
		}
		switch primID(id) {
		case primExit:
			vm.exitEntry = entry
		case primLit:
			vm.litEntry = entry
		}
	}
}

//// Section: the startup kernel

// startupKernel is fed into the input queue ahead of the caller's input (or
// a VMOption-supplied override), defining everything the primitive table
// leaves out: division and modulo, comments, control structures, and number
// printing.
var startupKernel = startupSource{}

type startupSource struct{}

func (startupSource) Name() string { return "startup.f" }

func (startupSource) WriteTo(w io.Writer) (n int64, err error) {
	flush := func(wto io.WriterTo) {
		if err != nil {
			return
		}
		var m int64
		m, err = wto.WriteTo(w)
		n += m
	}

	var buf bytes.Buffer
	line := func(parts ...string) {
		if err == nil {
			for _, s := range parts {
				buf.WriteString(s)
			}
			buf.WriteByte('\n')
			flush(&buf)
		}
	}

	// divmod leaves quotient deep, remainder on top; / and % just drop
	// whichever half they don't want.
	line(`: / divmod drop ;`)
	line(`: % divmod swap drop ;`)

	// patch rewrites the dummy offset cell compiled at addr so that a
	// branch or 0branch landing there jumps to here. Both then and else's
	// forward patches, and while's exit patch, share this.
	line(`: patch`,
		` here @`, // target: the instruction right after this word runs
		` over`,   // copy addr to the top, above target
		` -`,      // target - addr, in bytes
		` 8 /`,    // ... in cells
		` 1 -`,    // branch/0branch already step past the operand cell once
		` swap !`,
		` ;`)

	// back, compiles the offset cell for a branch/0branch whose opcode was
	// just compiled, jumping backward to the target address on the stack.
	line(`: back,`,
		` here @`,
		` -`,
		` 8 /`,
		` 1 -`,
		` ,`,
		` ;`)

	// if compiles a conditional forward branch and leaves its offset cell's
	// address on the stack for then (or else) to patch later.
	line(`: if immediate`,
		` ' 0branch ,`,
		` here @`,
		` 0 ,`,
		` ;`)

	line(`: then immediate patch ;`)

	line(`: else immediate`,
		` ' branch ,`,
		` here @`,
		` 0 ,`,
		` swap patch`,
		` ;`)

	// begin/until/while/repeat thread a loop start address on the stack
	// through to whichever closing word needs it.
	line(`: begin immediate here @ ;`)
	line(`: until immediate ' 0branch , back, ;`)
	line(`: while immediate ' 0branch , here @ 0 , ;`)
	line(`: repeat immediate`,
		` swap`,
		` ' branch , back,`,
		` patch`,
		` ;`)

	// Parenthesized comments, defined in terms of begin/until now that
	// they exist.
	line(`: ( immediate begin key 41 = until ;`)

	flush(strings.NewReader(`
( cr writes a newline, emit writes one byte from the stack )
: cr 10 emit ;
: space 32 emit ;

: 0= 0 = ;
: 0< 0 < ;
: negate 0 swap - ;
: abs dup 0< if negate then ;

( 2dup duplicates the top two stack cells, deepest first )
: 2dup over over ;

: min 2dup > if swap then drop ;
: max 2dup < if swap then drop ;

( print a non-negative number with no trailing space, recursively )
: (.)
  dup 10 /
  dup 0 > if
    dup (.)
  then
  drop
  10 %
  48 +
  emit
;

: . ( n -- , print n followed by a space )
  dup 0< if
    45 emit negate
  then
  (.)
  space
;

stdin
`))

	return n, err
}

// bootstrap queues the startup kernel ahead of whatever input the VM was
// configured with (or vm.startup, if a VMOption overrode it), so that the
// REPL compiles the kernel first and falls through to interactive input
// once the kernel's closing "stdin" word forces the switch.
func (vm *VM) bootstrap() {
	if vm.startup != nil {
		vm.pushInput(namedReader{vm.startup, startupKernel.Name()})
		return
	}
	var buf bytes.Buffer
	if _, err := startupKernel.WriteTo(&buf); err != nil {
		vm.halt(err)
	}
	vm.pushInput(namedReader{&buf, startupKernel.Name()})
}

// restoreStdin abandons whatever stream is currently active (startup.f, or
// a nested open-read-file stream left open by a runaway script) and jumps
// straight to the original interactive input.
func (vm *VM) restoreStdin() {
	if vm.stdinReader != nil {
		vm.Input.Reset(vm.stdinReader)
	} else {
		vm.Input.Reset()
	}
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }
