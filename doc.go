/*
Package main implements threadforth, a small self-hosting FORTH.

threadforth is deliberately minimal: the Go code below implements just
enough of a dictionary, two stacks, and a threaded-code inner interpreter
to bootstrap the rest of the language -- control structures, comments, the
tick operator, and a usable colon-definition syntax -- from a startup
script written in FORTH itself (see bootstrap.go).

Anatomy of a dictionary entry, stored in the arena (in this order):
  - 8 bytes :: link field, pointing at the previous entry (or 0)
  - 1 byte  :: flags (bit 0 is the immediate flag)
  - name, NUL terminated, padded so the codeword that follows is cell aligned
  - 8 bytes :: codeword -- either codewordDocol (a colon definition follows)
               or a primitive ID indexing primitiveTable
  - body cells, for colon definitions only, terminated by the codeword of exit

Two fixed cells at the base of the arena hold the here and latest cursors,
so that ordinary FORTH words (here, latest, @, !) can read and patch them
without any further primitives: here is address 0, latest is address 8.
The dictionary proper starts at address dictBase.

Execution of a word proceeds by threaded-code dispatch: current names the
codeword cell to read and call; next names the following cell to resume
from once the call returns, or 0 once the outermost invocation is done.
docol and exit implement call/return over the return stack; lit, branch,
and 0branch implement literals and control flow inline in a compiled body.
*/
package main
