/*
File    : drython/eval/library.go
Author  : Drython Contributors
Contact : dryscript/drython
*/

// Package eval implements the tree-walking half of Drython: the Runner
// lifecycle (registration, setup, named calls), the scope evaluator that
// walks one ExpressionList honoring if/elif/else chaining and loop
// break/continue, and the operation runner — a stack machine over the
// postfix values.Value streams the parser produces.
package eval

import "github.com/dryscript/drython/values"

// ExternalFunc is the signature every host-registered callable carries. A
// nil result with a nil error means the callable produced no value; the
// original Call token then stands in as the expression's result instead of
// Null.
type ExternalFunc func(args []values.Value) (*values.Value, error)

// Library is a host- or stdlib-registered bundle of external functions and
// pre-bound variables, the pair RunSetup resolves each `use` include to.
type Library struct {
	Functions map[string]ExternalFunc
	Variables map[string]values.Value
}
