// Command solisp is the CLI front-end for the runtime core: a file/eval
// runner and a REPL, both built on top of internal/lexer, internal/parser,
// and internal/eval.
package main

import (
	"fmt"
	"os"

	"github.com/openSVM/solisp-sub002/cmd/solisp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
