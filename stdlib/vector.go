/*
File    : drython/stdlib/vector.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package stdlib

import (
	"github.com/dryscript/drython/eval"
	"github.com/dryscript/drython/values"
)

// Vector is the `vector` bundle: a handful of constant vectors registered
// directly as dotted global variables (not functions), relying on the
// accessor-flattening rule — a script reading `vector3.one` parses to an
// Accessor(Var("vector3"), Var("one")) chain that eval's resolveAccessor
// flattens into one lookup of the literal key "vector3.one", exactly the
// name registered here.
func Vector() eval.Library {
	return eval.Library{
		Variables: map[string]values.Value{
			"vector3.one":  values.Collection([]values.Value{values.Float(1), values.Float(1), values.Float(1)}),
			"vector3.zero": values.Collection([]values.Value{values.Float(0), values.Float(0), values.Float(0)}),
			"vector3.up":   values.Collection([]values.Value{values.Float(0), values.Float(1), values.Float(0)}),
		},
	}
}
