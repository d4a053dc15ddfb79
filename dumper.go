package main

import (
	"fmt"
	"io"
)

// vmDumper formats a VM's stacks and dictionary for developer tooling. It
// has no effect on interpretation; nothing in the bootstrap kernel or the
// primitive table can reach it, matching main.c's .s/.w being outside the
// language proper even though they ship with the reference interpreter.
type vmDumper struct {
	vm  *VM
	out io.Writer
}

// DumpStack writes the parameter and return stacks, deepest entry first,
// the way main.c's .s prints the parameter stack.
func (vm *VM) DumpStack(w io.Writer) {
	(vmDumper{vm: vm, out: w}).dumpStack()
}

// DumpDictionary writes every dictionary entry from latest back to the
// first builtin, disassembling colon bodies into word names where
// possible, the way main.c's .w prints the dictionary.
func (vm *VM) DumpDictionary(w io.Writer) {
	(vmDumper{vm: vm, out: w}).dumpDictionary()
}

func (dump vmDumper) dumpStack() {
	fmt.Fprintf(dump.out, "param: %v\n", dump.vm.param.values())
	fmt.Fprintf(dump.out, "ret:   %v\n", dump.vm.ret.values())
}

func (dump vmDumper) dumpDictionary() {
	fmt.Fprintf(dump.out, "here: %v latest: %v\n", dump.vm.here(), dump.vm.latest())
	for entry := dump.vm.latest(); entry != 0; entry = dump.vm.entryLink(entry) {
		dump.dumpEntry(entry)
	}
}

func (dump vmDumper) dumpEntry(entry Addr) {
	name := dump.vm.nameBytes(entry)
	cw := dump.vm.codeword(entry)
	flag := ""
	if dump.vm.isImmediate(entry) {
		flag = " immediate"
	}
	fmt.Fprintf(dump.out, "@%v: %s%s", entry, name, flag)

	if dump.vm.loadCell(cw) != codewordDocol {
		id := dump.vm.loadCell(cw)
		fmt.Fprintf(dump.out, " primitive(%v)\n", primitiveNames[id])
		return
	}

	dump.out.Write([]byte(" :\n"))
	for addr := cw + CellSize; ; addr += CellSize {
		target := Addr(dump.vm.loadCell(addr))
		fmt.Fprintf(dump.out, "  @%v %s\n", addr, dump.wordAt(target))
		if target == dump.vm.codeword(dump.vm.exitEntry) {
			break
		}
		if target == dump.vm.codeword(dump.vm.litEntry) {
			addr += CellSize
			fmt.Fprintf(dump.out, "  @%v (%v)\n", addr, dump.vm.loadCell(addr))
		}
	}
}

// wordAt names the entry whose codeword lives at addr, falling back to the
// bare address when no registered name covers it (e.g. a branch/0branch
// operand cell, or a call into a primitive body offset that isn't itself
// a codeword address).
func (dump vmDumper) wordAt(addr Addr) string {
	if name := dump.vm.debugNames.nameOf(addr); name != "" {
		return name
	}
	return fmt.Sprint(addr)
}
