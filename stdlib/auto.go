/*
File    : drython/stdlib/auto.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package stdlib

import (
	"fmt"
	"strings"

	"github.com/dryscript/drython/eval"
	"github.com/dryscript/drython/values"
)

// Auto is the bundle a host registers unconditionally: the single `print`
// builtin every other bundle is optional next to.
func Auto() eval.Library {
	return eval.Library{
		Functions: map[string]eval.ExternalFunc{
			"print": print_,
		},
	}
}

// print_ writes its arguments' Display forms to stdout, space-separated,
// matching Drython's own display formatting rather than a Go %v rendering.
// Printing a Null argument is a runtime error, not a no-op.
func print_(args []values.Value) (*values.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Kind == values.KindNull {
			return nil, fmt.Errorf("Cannot print a variable of this type")
		}
		parts[i] = a.Display()
	}
	fmt.Println(strings.Join(parts, " "))
	return nil, nil
}
