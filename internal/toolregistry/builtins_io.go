package toolregistry

import (
	"fmt"
	"io"

	"github.com/openSVM/solisp-sub002/internal/value"
)

// RegisterIO installs `print`/`println`, writing to out. Grounded on the
// teacher's builtinPrint/builtinPrintLn (internal/interp/builtins_core.go),
// which likewise silently discard output when out is nil, a convenience
// used by tests constructed without a writer.
func RegisterIO(r *Registry, out io.Writer) {
	r.Register("print", func(args []value.Value) (value.Value, error) {
		if out != nil {
			for _, a := range args {
				fmt.Fprint(out, a.String())
			}
		}
		return value.Nil, nil
	}, CategoryIO, "print arguments without a trailing newline")

	r.Register("println", func(args []value.Value) (value.Value, error) {
		if out != nil {
			for _, a := range args {
				fmt.Fprint(out, a.String())
			}
			fmt.Fprintln(out)
		}
		return value.Nil, nil
	}, CategoryIO, "print arguments followed by a newline")
}
