package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseNumber(t *testing.T) {
	for _, tc := range []struct {
		token string
		want  Cell
		ok    bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"-7", -7, true},
		{"", 0, false},
		{"-", 0, false},
		{"abc", 0, false},
		{"12x", 0, false},
	} {
		v, ok := parseNumber(tc.token)
		assert.Equal(t, tc.ok, ok, "token %q", tc.token)
		if tc.ok {
			assert.Equal(t, tc.want, v, "token %q", tc.token)
		}
	}
}

func Test_parseNumber_overflowWraps(t *testing.T) {
	// 20 nines overflows int64 many times over; the point is that it
	// returns a definite (wrapped) value rather than an error.
	v, ok := parseNumber(strings.Repeat("9", 20))
	assert.True(t, ok)
	_ = v
}

func Test_word_skipsWhitespaceAndComments(t *testing.T) {
	vm := newTestVM(t)
	vm.pushInput(strings.NewReader("  foo # a comment\nbar\n"))

	assert.Equal(t, "foo", vm.word())
	assert.Equal(t, "bar", vm.word())
}

func Test_word_truncatesLongTokens(t *testing.T) {
	vm := newTestVM(t)
	long := strings.Repeat("x", wordBufCap+10)
	vm.pushInput(strings.NewReader(long))

	got := vm.word()
	assert.Len(t, got, wordBufCap)
}

func Test_word_haltsOnEOF(t *testing.T) {
	vm := newTestVM(t)
	vm.pushInput(strings.NewReader(""))

	defer func() {
		r := recover()
		assert.Equal(t, errWordEOF, r)
	}()
	vm.word()
}

func Test_isSpace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\n', '\r', '\v', '\f'} {
		assert.True(t, isSpace(r), "%q", r)
	}
	assert.False(t, isSpace('a'))
}
