package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlowright/threadforth/internal/logio"
)

// captureTrace drives a VM with -trace-style logging enabled, routing the
// logged lines through an internal/logio.Writer the way
// internal/mem/int_test.go routes stdlib log output through t.Logf, and
// returns whatever lines were captured.
func captureTrace(t *testing.T, src string) []string {
	t.Helper()

	var lines []string
	lw := &logio.Writer{Logf: func(mess string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(mess, args...))
	}}

	var out bytes.Buffer
	vm := New(
		WithInput(strings.NewReader(src)),
		WithOutput(&out),
		WithLogf(func(mess string, args ...interface{}) {
			lw.Write([]byte(fmt.Sprintf(mess, args...) + "\n"))
		}),
	)

	require.NoError(t, vm.Run(context.Background()))
	return lines
}

func Test_trace_logsOneLinePerStep(t *testing.T) {
	lines := captureTrace(t, "1 1 + . ")
	assert.NotEmpty(t, lines, "-trace must log at least one line per VM.step()")

	var sawExec bool
	for _, l := range lines {
		if strings.Contains(l, "exec") {
			sawExec = true
			break
		}
	}
	assert.True(t, sawExec, "expected at least one exec trace line, got %v", lines)
}
