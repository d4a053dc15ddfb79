package main

import (
	"errors"

	"github.com/arlowright/threadforth/internal/mem"
)

// arena is the dictionary's backing store: a contiguous byte buffer, paged
// on demand, that holds both the two cursor cells (here, latest) and every
// dictionary entry compiled into it. here is monotonically non-decreasing
// for the lifetime of the VM.
type arena struct {
	mem.Bytes
}

func newArena(pageSize, limit uint) *arena {
	a := &arena{}
	a.PageSize = pageSize
	a.Limit = limit
	return a
}

// wrapMemErr maps a mem.LimitError onto errOOM, so that callers above the
// arena boundary (VM.halt, panicerr) see the same sentinel the teacher's
// internals.go reports for an out-of-memory fault, rather than the raw
// internal/mem error type.
func wrapMemErr(err error) error {
	var lim mem.LimitError
	if errors.As(err, &lim) {
		return errOOM
	}
	return err
}

func (a *arena) loadCell(addr Addr) Cell {
	v, err := a.LoadCell(uint(addr), CellSize)
	if err != nil {
		panic(wrapMemErr(err))
	}
	return Cell(v)
}

func (a *arena) storCell(addr Addr, val Cell) error {
	return wrapMemErr(a.Bytes.StorCell(uint(addr), int64(val), CellSize))
}

func (a *arena) loadByte(addr Addr) byte {
	b, err := a.LoadByte(uint(addr))
	if err != nil {
		panic(wrapMemErr(err))
	}
	return b
}

func (a *arena) storByte(addr Addr, b byte) error {
	return wrapMemErr(a.StorByte(uint(addr), b))
}

func (a *arena) loadBytes(addr Addr, buf []byte) {
	if err := a.LoadInto(uint(addr), buf); err != nil {
		panic(wrapMemErr(err))
	}
}

func (a *arena) size() Addr { return Addr(a.Size()) }

// here returns the current dictionary write cursor.
func (a *arena) here() Addr { return Addr(a.loadCell(addrHere)) }

func (a *arena) setHere(v Addr) error { return a.storCell(addrHere, Cell(v)) }

// latest returns the most recently defined dictionary entry, or 0.
func (a *arena) latest() Addr { return Addr(a.loadCell(addrLatest)) }

func (a *arena) setLatest(v Addr) error { return a.storCell(addrLatest, Cell(v)) }

// compileCell appends val at here and advances here by one cell.
func (a *arena) compileCell(val Cell) error {
	h := a.here()
	if err := a.storCell(h, val); err != nil {
		return err
	}
	return a.setHere(h + CellSize)
}

// compileByte appends b at here and advances here by one byte.
func (a *arena) compileByte(b byte) error {
	h := a.here()
	if err := a.storByte(h, b); err != nil {
		return err
	}
	return a.setHere(h + 1)
}

// compileName appends name followed by a NUL terminator at here.
func (a *arena) compileName(name string) error {
	for i := 0; i < len(name); i++ {
		if err := a.compileByte(name[i]); err != nil {
			return err
		}
	}
	return a.compileByte(0)
}

// alignHere pads here up to the next cell boundary with zero bytes.
func (a *arena) alignHere() error {
	target := alignUp(a.here(), CellSize)
	for a.here() < target {
		if err := a.compileByte(0); err != nil {
			return err
		}
	}
	return nil
}

// init lays down the here/latest cursor cells and positions here at the
// start of the dictionary proper.
func (a *arena) init() error {
	if err := a.setHere(dictBase); err != nil {
		return err
	}
	return a.setLatest(0)
}
