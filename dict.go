package main

// Dictionary entry layout, relative to an entry's address e:
//
//	e+0           link field, one cell: address of the previous entry, or 0
//	e+8           flag byte: bit 0 is the immediate flag
//	e+9           name, NUL terminated, padded to the next cell boundary
//	codeword(e)   codeword cell: codewordDocol, or a primitive ID
//	codeword(e)+8 body cells (colon definitions only), ending in exit's codeword

const (
	entryLinkOff  Addr = 0
	entryFlagOff  Addr = CellSize
	entryNameOff  Addr = entryFlagOff + 1
)

func (vm *VM) entryLink(entry Addr) Addr { return Addr(vm.loadCell(entry + entryLinkOff)) }
func (vm *VM) entryFlags(entry Addr) byte { return vm.loadByte(entry + entryFlagOff) }

func (vm *VM) isImmediate(entry Addr) bool {
	return vm.entryFlags(entry)&flagImmediate != 0
}

// wordname returns the address of an entry's name field.
func (vm *VM) wordname(entry Addr) Addr { return entry + entryNameOff }

// nameBytes reads an entry's NUL-terminated name.
func (vm *VM) nameBytes(entry Addr) []byte {
	addr := vm.wordname(entry)
	var out []byte
	for {
		b := vm.loadByte(addr)
		if b == 0 {
			return out
		}
		out = append(out, b)
		addr++
	}
}

// codeword returns the address of an entry's codeword cell: the name field
// skipped to its NUL terminator, then padded up to the next cell boundary.
func (vm *VM) codeword(entry Addr) Addr {
	addr := vm.wordname(entry)
	for vm.loadByte(addr) != 0 {
		addr++
	}
	addr++ // skip the NUL
	return alignUp(addr, CellSize)
}

// find performs a linear scan from latest backward along the link chain,
// returning the first entry whose name matches, or 0.
func (vm *VM) find(name string) Addr {
	for entry := vm.latest(); entry != 0; entry = vm.entryLink(entry) {
		if string(vm.nameBytes(entry)) == name {
			return entry
		}
	}
	return 0
}

// compileHeader appends a link/flag/name header at here, updates latest to
// point at it, and leaves here positioned at the not-yet-written codeword
// cell. Callers must follow with a codeword write (compileCell).
func (vm *VM) compileHeader(name string, immediate bool) (Addr, error) {
	entry := vm.here()
	if err := vm.compileCell(Cell(vm.latest())); err != nil {
		return 0, err
	}
	var flag byte
	if immediate {
		flag = flagImmediate
	}
	if err := vm.compileByte(flag); err != nil {
		return 0, err
	}
	if err := vm.compileName(name); err != nil {
		return 0, err
	}
	if err := vm.alignHere(); err != nil {
		return 0, err
	}
	if err := vm.setLatest(entry); err != nil {
		return 0, err
	}
	vm.debugNames.register(vm.codeword(entry), name)
	return entry, nil
}

// pushPrimitive appends a primitive word: codeword = the given primitive ID.
func (vm *VM) pushPrimitive(name string, immediate bool, id Cell) (Addr, error) {
	entry, err := vm.compileHeader(name, immediate)
	if err != nil {
		return 0, err
	}
	if err := vm.compileCell(id); err != nil {
		return 0, err
	}
	return entry, nil
}

// pushColonFromList appends a colon definition whose body calls each listed
// entry in turn, terminated by exit. Each element of words is a dictionary
// entry address; the compiled body stores the codeword address of each.
func (vm *VM) pushColonFromList(name string, immediate bool, words ...Addr) (Addr, error) {
	entry, err := vm.compileHeader(name, immediate)
	if err != nil {
		return 0, err
	}
	if err := vm.compileCell(codewordDocol); err != nil {
		return 0, err
	}
	for _, w := range words {
		if err := vm.compileCell(Cell(vm.codeword(w))); err != nil {
			return 0, err
		}
	}
	if err := vm.compileCell(Cell(vm.codeword(vm.exitEntry))); err != nil {
		return 0, err
	}
	return entry, nil
}

// pushColonRaw appends a colon definition whose body cells are written
// verbatim (used to inject lit/branch/0branch operands that
// pushColonFromList cannot represent), terminated by exit.
func (vm *VM) pushColonRaw(name string, immediate bool, cells ...Cell) (Addr, error) {
	entry, err := vm.compileHeader(name, immediate)
	if err != nil {
		return 0, err
	}
	if err := vm.compileCell(codewordDocol); err != nil {
		return 0, err
	}
	for _, c := range cells {
		if err := vm.compileCell(c); err != nil {
			return 0, err
		}
	}
	if err := vm.compileCell(Cell(vm.codeword(vm.exitEntry))); err != nil {
		return 0, err
	}
	return entry, nil
}
