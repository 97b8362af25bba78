/*
File    : drython/stdlib/stdlib.go
Author  : Drython Contributors
Contact : dryscript/drython
*/

// Package stdlib implements Drython's built-in library bundles: auto
// (always registered, print), math, vector, collection. Each bundle is an
// eval.Library — the same host-collaborator shape a CLI manifest or a
// script's `use` include resolves against.
package stdlib

import "github.com/dryscript/drython/eval"

// Bundles returns every stdlib library keyed by the name a script's `use`
// line or a --libs manifest refers to it by.
func Bundles() map[string]eval.Library {
	return map[string]eval.Library{
		"auto":       Auto(),
		"math":       Math(),
		"vector":     Vector(),
		"collection": Collection(),
	}
}
