package main

import (
	"fmt"
	"os"
)

// Primitive IDs index primitiveTable and primitiveNames; they are the
// non-negative values a codeword cell can hold when it is not
// codewordDocol.
const (
	primExit primID = iota
	primLit
	primBranch
	prim0Branch

	primAdd
	primSub
	primMul
	primDivMod

	primEq
	primLt
	primGt
	primLe
	primGe

	primNot
	primAnd
	primOr

	primDup
	primDrop
	primSwap
	primOver

	primFetch
	primStore

	primColon
	primSemi
	primComma
	primTick
	primBracketTick
	primLBrack
	primRBrack
	primImmediate
	primHere
	primLatest
	primFindWord
	primCodeWord

	primKey
	primEmit
	primTell
	primStdin
	primGetInputStream
	primSetInputStream
	primOpenReadFile
	primCloseFile

	numPrimitives int = iota
)

type primID = Cell

var primitiveNames = [numPrimitives]string{
	primExit:    "exit",
	primLit:     "lit",
	primBranch:  "branch",
	prim0Branch: "0branch",

	primAdd:    "+",
	primSub:    "-",
	primMul:    "*",
	primDivMod: "divmod",

	primEq: "=",
	primLt: "<",
	primGt: ">",
	primLe: "<=",
	primGe: ">=",

	primNot: "not",
	primAnd: "and",
	primOr:  "or",

	primDup:  "dup",
	primDrop: "drop",
	primSwap: "swap",
	primOver: "over",

	primFetch: "@",
	primStore: "!",

	primColon:       ":",
	primSemi:        ";",
	primComma:       ",",
	primTick:        "'",
	primBracketTick: "[']",
	primLBrack:      "[",
	primRBrack:      "]",
	primImmediate:   "immediate",
	primHere:        "here",
	primLatest:      "latest",
	primFindWord:    "find-word",
	primCodeWord:    "code-word",

	primKey:            "key",
	primEmit:           "emit",
	primTell:           "tell",
	primStdin:          "stdin",
	primGetInputStream: "get-input-stream",
	primSetInputStream: "set-input-stream",
	primOpenReadFile:   "open-read-file",
	primCloseFile:      "close-file",
}

// immediate words: run at compile time instead of being compiled as a call.
var immediatePrimitives = map[primID]bool{
	primColon:       true,
	primSemi:        true,
	primBracketTick: true,
	primLBrack:      true,
	primRBrack:      true,
	primImmediate:   true,
}

var primitiveTable = [numPrimitives]primitiveFunc{
	primExit:    primRunExit,
	primLit:     primRunLit,
	primBranch:  primRunBranch,
	prim0Branch: primRunZeroBranch,

	primAdd:    primRunAdd,
	primSub:    primRunSub,
	primMul:    primRunMul,
	primDivMod: primRunDivMod,

	primEq: primRunEq,
	primLt: primRunLt,
	primGt: primRunGt,
	primLe: primRunLe,
	primGe: primRunGe,

	primNot: primRunNot,
	primAnd: primRunAnd,
	primOr:  primRunOr,

	primDup:  primRunDup,
	primDrop: primRunDrop,
	primSwap: primRunSwap,
	primOver: primRunOver,

	primFetch: primRunFetch,
	primStore: primRunStore,

	primColon:       primRunColon,
	primSemi:        primRunSemi,
	primComma:       primRunComma,
	primTick:        primRunTick,
	primBracketTick: primRunBracketTick,
	primLBrack:      primRunLBrack,
	primRBrack:      primRunRBrack,
	primImmediate:   primRunImmediate,
	primHere:        primRunHere,
	primLatest:      primRunLatest,
	primFindWord:    primRunFindWord,
	primCodeWord:    primRunCodeWord,

	primKey:            primRunKey,
	primEmit:           primRunEmit,
	primTell:           primRunTell,
	primStdin:          primRunStdin,
	primGetInputStream: primRunGetInputStream,
	primSetInputStream: primRunSetInputStream,
	primOpenReadFile:   primRunOpenReadFile,
	primCloseFile:      primRunCloseFile,
}

func (vm *VM) popCell() Cell {
	v, err := vm.param.pop()
	vm.haltOnProg(err)
	return v
}

func (vm *VM) pushCell(v Cell) {
	vm.haltOnProg(vm.param.push(v))
}

func (vm *VM) haltOnProg(err error) {
	if err != nil {
		vm.halt(progErr(vm.curLoc(), err))
	}
}

//// inner interpreter control primitives

func primRunExit(vm *VM) {
	v, err := vm.ret.pop()
	vm.haltOnProg(err)
	vm.next = Addr(v)
}

// primRunLit pushes its operand cell (the cell immediately following lit's
// own call, at vm.next) and skips past it.
func primRunLit(vm *VM) {
	vm.pushCell(vm.loadCell(vm.next))
	vm.next += CellSize
}

// primRunBranch reads its operand cell (the jump offset, in cells, relative
// to the cell following the operand) and always takes the jump.
func primRunBranch(vm *VM) {
	offset := vm.loadCell(vm.next)
	vm.next = vm.next + CellSize + Addr(offset)*CellSize
}

// primRunZeroBranch takes the jump only when the popped flag is zero,
// otherwise it falls through past the operand cell.
func primRunZeroBranch(vm *VM) {
	flag := vm.popCell()
	offset := vm.loadCell(vm.next)
	if flag == 0 {
		vm.next = vm.next + CellSize + Addr(offset)*CellSize
	} else {
		vm.next += CellSize
	}
}

//// arithmetic, comparison, logic

func primRunAdd(vm *VM) { b, a := vm.popCell(), vm.popCell(); vm.pushCell(a + b) }
func primRunSub(vm *VM) { b, a := vm.popCell(), vm.popCell(); vm.pushCell(a - b) }
func primRunMul(vm *VM) { b, a := vm.popCell(), vm.popCell(); vm.pushCell(a * b) }

// primRunDivMod pops divisor then dividend, and pushes quotient then
// remainder (both truncated toward zero, matching Go's / and % on int64).
func primRunDivMod(vm *VM) {
	b, a := vm.popCell(), vm.popCell()
	if b == 0 {
		vm.halt(progErr(vm.curLoc(), errDivideByZero))
	}
	vm.pushCell(a / b)
	vm.pushCell(a % b)
}

func primRunEq(vm *VM) { b, a := vm.popCell(), vm.popCell(); vm.pushCell(boolCell(a == b)) }
func primRunLt(vm *VM) { b, a := vm.popCell(), vm.popCell(); vm.pushCell(boolCell(a < b)) }
func primRunGt(vm *VM) { b, a := vm.popCell(), vm.popCell(); vm.pushCell(boolCell(a > b)) }
func primRunLe(vm *VM) { b, a := vm.popCell(), vm.popCell(); vm.pushCell(boolCell(a <= b)) }
func primRunGe(vm *VM) { b, a := vm.popCell(), vm.popCell(); vm.pushCell(boolCell(a >= b)) }

func primRunNot(vm *VM) { vm.pushCell(boolCell(vm.popCell() == 0)) }
func primRunAnd(vm *VM) { b, a := vm.popCell(), vm.popCell(); vm.pushCell(boolCell(a != 0 && b != 0)) }
func primRunOr(vm *VM)  { b, a := vm.popCell(), vm.popCell(); vm.pushCell(boolCell(a != 0 || b != 0)) }

//// stack shuffling

func primRunDup(vm *VM) {
	v, err := vm.param.peek(0)
	vm.haltOnProg(err)
	vm.pushCell(v)
}

func primRunDrop(vm *VM) { vm.popCell() }

func primRunSwap(vm *VM) {
	b, a := vm.popCell(), vm.popCell()
	vm.pushCell(b)
	vm.pushCell(a)
}

func primRunOver(vm *VM) {
	v, err := vm.param.peek(1)
	vm.haltOnProg(err)
	vm.pushCell(v)
}

//// memory

func primRunFetch(vm *VM) { addr := Addr(vm.popCell()); vm.pushCell(vm.loadCell(addr)) }
func primRunStore(vm *VM) {
	addr := Addr(vm.popCell())
	val := vm.popCell()
	vm.haltOnProg(vm.storCell(addr, val))
}

//// compiler primitives

func primRunColon(vm *VM) {
	name := vm.word()
	_, err := vm.compileHeader(name, false)
	vm.haltOnProg(err)
	vm.haltOnProg(vm.compileCell(codewordDocol))
	vm.compiling = true
}

func primRunSemi(vm *VM) {
	vm.haltOnProg(vm.compileCell(Cell(vm.codeword(vm.exitEntry))))
	vm.compiling = false
}

func primRunComma(vm *VM) { vm.haltOnProg(vm.compileCell(vm.popCell())) }

// primRunTick reads the cell compiled immediately after its own call (the
// next word's codeword address, compiled there by ordinary compile-mode
// token handling) and pushes it as a value instead of letting the inner
// interpreter dispatch through it as a call. Mechanically identical to lit.
func primRunTick(vm *VM) {
	vm.pushCell(vm.loadCell(vm.next))
	vm.next += CellSize
}

// primRunBracketTick is the compile-time counterpart of tick: it reads the
// next word directly from the source (bypassing normal token dispatch, so
// it works even when that word is itself immediate) and compiles it as a
// runtime literal via lit, so that ['] word, used inside a definition,
// pushes word's codeword address when that definition later runs.
func primRunBracketTick(vm *VM) {
	name := vm.word()
	entry := vm.find(name)
	if entry == 0 {
		vm.halt(progErr(vm.curLoc(), fmt.Errorf("%w: %q", errUnknownWord, name)))
	}
	vm.haltOnProg(vm.compileCell(Cell(vm.codeword(vm.litEntry))))
	vm.haltOnProg(vm.compileCell(Cell(vm.codeword(entry))))
}

func primRunLBrack(vm *VM) { vm.compiling = false }
func primRunRBrack(vm *VM) { vm.compiling = true }

func primRunImmediate(vm *VM) {
	latest := vm.latest()
	vm.haltOnProg(vm.storByte(latest+entryFlagOff, vm.entryFlags(latest)|flagImmediate))
}

func primRunHere(vm *VM)   { vm.pushCell(Cell(addrHere)) }
func primRunLatest(vm *VM) { vm.pushCell(Cell(addrLatest)) }

func primRunFindWord(vm *VM) {
	name := vm.word()
	vm.pushCell(Cell(vm.find(name)))
}

func primRunCodeWord(vm *VM) {
	entry := Addr(vm.popCell())
	vm.pushCell(Cell(vm.codeword(entry)))
}

//// character and stream i/o

func primRunKey(vm *VM) {
	r, err := vm.readRune()
	vm.haltif(err)
	vm.pushCell(Cell(r))
}

func primRunEmit(vm *VM) {
	v := vm.popCell()
	if v < 0 || v >= 256 {
		vm.halt(progErr(vm.curLoc(), fmt.Errorf("emit: value %v out of byte range", v)))
	}
	vm.writeRune(rune(v))
}

// primRunTell pops a null-terminated string's address and writes it to
// output, one byte at a time, up to but not including the NUL.
func primRunTell(vm *VM) {
	addr := Addr(vm.popCell())
	buf := make([]byte, 1)
	for {
		vm.loadBytes(addr, buf)
		if buf[0] == 0 {
			return
		}
		vm.writeRune(rune(buf[0]))
		addr++
	}
}

// primRunStdin switches input back to the original stdin stream, discarding
// anything left queued ahead of it.
func primRunStdin(vm *VM) { vm.restoreStdin() }

func primRunGetInputStream(vm *VM) { vm.pushCell(Cell(vm.curStream)) }

func primRunSetInputStream(vm *VM) {
	fd := int(vm.popCell())
	f, ok := vm.streams[fd]
	if !ok || f == nil {
		vm.halt(progErr(vm.curLoc(), fmt.Errorf("set-input-stream: bad stream %v", fd)))
	}
	vm.pushInput(f)
	vm.curStream = fd
}

func primRunOpenReadFile(vm *VM) {
	count := vm.popCell()
	addr := Addr(vm.popCell())
	buf := make([]byte, count)
	vm.loadBytes(addr, buf)
	f, err := os.Open(string(buf))
	if err != nil {
		vm.halt(codeErr("open-read-file", err))
	}
	fd := vm.addStream(f)
	vm.pushCell(Cell(fd))
}

func primRunCloseFile(vm *VM) {
	fd := int(vm.popCell())
	f, ok := vm.streams[fd]
	if !ok || f == nil {
		vm.halt(progErr(vm.curLoc(), fmt.Errorf("close-file: bad stream %v", fd)))
	}
	vm.haltOnProg(f.Close())
	delete(vm.streams, fd)
}
