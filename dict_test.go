package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVM(t *testing.T) *VM {
	var vm VM
	vm.init()
	return &vm
}

func Test_dict_find_builtins(t *testing.T) {
	vm := newTestVM(t)

	dup := vm.find("dup")
	require.NotZero(t, dup, "dup must be in the bootstrap dictionary")
	assert.Equal(t, []byte("dup"), vm.nameBytes(dup))
	assert.False(t, vm.isImmediate(dup))

	assert.Zero(t, vm.find("no-such-word"))
}

func Test_dict_find_mostRecentWins(t *testing.T) {
	vm := newTestVM(t)

	first, err := vm.pushColonFromList("double", false, vm.find("dup"), vm.find("+"))
	require.NoError(t, err)
	second, err := vm.pushColonFromList("double", false, vm.find("dup"), vm.find("dup"), vm.find("+"), vm.find("+"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, second, vm.find("double"), "find must prefer the most recently defined entry")
}

func Test_dict_compileHeader_immediateFlag(t *testing.T) {
	vm := newTestVM(t)

	entry, err := vm.compileHeader("[test]", true)
	require.NoError(t, err)
	assert.True(t, vm.isImmediate(entry))

	entry2, err := vm.compileHeader("plain", false)
	require.NoError(t, err)
	assert.False(t, vm.isImmediate(entry2))
}

func Test_dict_pushColonFromList_endsInExit(t *testing.T) {
	vm := newTestVM(t)

	dupEntry := vm.find("dup")
	entry, err := vm.pushColonFromList("mydup", false, dupEntry)
	require.NoError(t, err)

	cw := vm.codeword(entry)
	assert.Equal(t, codewordDocol, vm.loadCell(cw))
	assert.Equal(t, Cell(vm.codeword(dupEntry)), vm.loadCell(cw+CellSize))
	assert.Equal(t, Cell(vm.codeword(vm.exitEntry)), vm.loadCell(cw+2*CellSize))
}

func Test_dict_pushColonRaw_literalBody(t *testing.T) {
	vm := newTestVM(t)

	entry, err := vm.pushColonRaw("fortytwo", false,
		Cell(vm.codeword(vm.litEntry)), 42)
	require.NoError(t, err)

	cw := vm.codeword(entry)
	assert.Equal(t, codewordDocol, vm.loadCell(cw))
	assert.Equal(t, Cell(vm.codeword(vm.litEntry)), vm.loadCell(cw+CellSize))
	assert.Equal(t, Cell(42), vm.loadCell(cw+2*CellSize))
}

func Test_dict_debugNames_registersCodewordAddr(t *testing.T) {
	vm := newTestVM(t)

	entry, err := vm.compileHeader("named", false)
	require.NoError(t, err)
	require.NoError(t, vm.compileCell(codewordDocol))

	assert.Equal(t, "named", vm.debugNames.nameOf(vm.codeword(entry)))
}
