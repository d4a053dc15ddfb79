package main

// symbolTable maps a codeword cell's address back to the name of the
// dictionary entry it belongs to, for the debug dumper.
// It plays a narrower role than dictionary lookup itself: find (dict.go)
// resolves a name to an entry by scanning the link chain and comparing
// name bytes directly out of the arena, so nothing at runtime depends on
// symbolTable being complete or even present. Losing it costs
// pretty-printing, not correctness.
type symbolTable struct {
	names map[Addr]string
}

// register records name as the display name for the entry whose codeword
// cell sits at addr. Later registrations for the same address (there are
// none in practice, since each entry is compiled once) win.
func (st *symbolTable) register(addr Addr, name string) {
	if st.names == nil {
		st.names = make(map[Addr]string)
	}
	st.names[addr] = name
}

// nameOf returns the name registered for addr, or "" if none was.
func (st *symbolTable) nameOf(addr Addr) string {
	if st.names == nil {
		return ""
	}
	return st.names[addr]
}
