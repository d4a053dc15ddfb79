package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSource runs src through a full VM (bootstrap kernel plus src as the
// interactive input) and returns whatever it wrote to output.
func runSource(t *testing.T, src string) string {
	t.Helper()

	var out bytes.Buffer
	vm := New(WithInput(strings.NewReader(src)), WithOutput(&out))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := vm.Run(ctx)
	require.NoError(t, err)
	return out.String()
}

func Test_bootstrap_arithmetic(t *testing.T) {
	assert.Equal(t, "1764 ", runSource(t, "42 dup * . "))
}

func Test_bootstrap_colonDefinition(t *testing.T) {
	assert.Equal(t, "49 ", runSource(t, ": sq dup * ; 7 sq . "))
}

func Test_bootstrap_divmod(t *testing.T) {
	assert.Equal(t, "3 1 ", runSource(t, "13 4 / . 13 4 % . "))
}

func Test_bootstrap_absMinMax(t *testing.T) {
	assert.Equal(t, "5 ", runSource(t, "-5 abs . "))
	assert.Equal(t, "3 ", runSource(t, "3 5 min . "))
	assert.Equal(t, "5 ", runSource(t, "3 5 max . "))
}

func Test_bootstrap_ifThenElse(t *testing.T) {
	src := ": test dup 0 > if drop 111 else drop 222 then ; 5 test . -5 test . "
	assert.Equal(t, "111 222 ", runSource(t, src))
}

func Test_bootstrap_beginUntil(t *testing.T) {
	src := ": count 0 begin 1 + dup 5 >= until ; count . "
	assert.Equal(t, "5 ", runSource(t, src))
}

func Test_bootstrap_beginWhileRepeat(t *testing.T) {
	src := ": count2 0 begin dup 5 < while 1 + repeat ; count2 . "
	assert.Equal(t, "5 ", runSource(t, src))
}

func Test_bootstrap_negativeNumberPrinting(t *testing.T) {
	assert.Equal(t, "-7 ", runSource(t, "0 7 - . "))
}

func Test_bootstrap_tickAndBracketTick(t *testing.T) {
	// Both forms are only meaningful compiled into a colon body: ['] reads
	// "dup" at compile time and compiles a literal codeword reference;
	// plain ' compiles as an ordinary call, then steals the adjacent
	// compiled call to dup as its own inline operand at runtime. Both
	// must resolve to the same codeword address.
	src := ": gettick ['] dup ; : gettick2 ' dup ; gettick gettick2 = . "
	assert.Equal(t, "1 ", runSource(t, src))
}

func Test_bootstrap_immediateFlag(t *testing.T) {
	// loud marks itself immediate before its own definition closes, so
	// when wrap's compile sees "loud" it runs loud right there instead of
	// compiling a call to it -- wrap ends up empty, and the print happens
	// at wrap's compile time, not when wrap is later called.
	src := ": loud immediate 1 . ; : wrap loud ; wrap "
	assert.Equal(t, "1 ", runSource(t, src))
}

func Test_bootstrap_unknownWord_reportsError(t *testing.T) {
	var out bytes.Buffer
	vm := New(WithInput(strings.NewReader("this-is-not-a-word")), WithOutput(&out))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := vm.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnknownWord)
}
