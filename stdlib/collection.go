/*
File    : drython/stdlib/collection.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package stdlib

import (
	"fmt"

	"github.com/dryscript/drython/eval"
	"github.com/dryscript/drython/values"
)

// Collection is the `collection` bundle: length/push/pop/contains. Since
// Drython has no by-reference mutation (Values are plain struct copies),
// push and pop return a new Collection rather than mutating their argument
// in place — a script composes them back with a plain assignment, e.g.
// `xs = push(xs, 4)`.
func Collection() eval.Library {
	return eval.Library{
		Functions: map[string]eval.ExternalFunc{
			"length":   collLength,
			"push":     collPush,
			"pop":      collPop,
			"contains": collContains,
		},
	}
}

func asCollection(v values.Value) ([]values.Value, error) {
	if v.Kind != values.KindCollection {
		return nil, fmt.Errorf("expected a collection, got %s", v.Kind)
	}
	return v.Collection, nil
}

func collLength(args []values.Value) (*values.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	switch args[0].Kind {
	case values.KindCollection:
		r := values.Int(int64(len(args[0].Collection)))
		return &r, nil
	case values.KindString:
		r := values.Int(int64(len([]rune(args[0].Str))))
		return &r, nil
	default:
		return nil, fmt.Errorf("expected a collection or string, got %s", args[0].Kind)
	}
}

func collPush(args []values.Value) (*values.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	items, err := asCollection(args[0])
	if err != nil {
		return nil, err
	}
	next := make([]values.Value, len(items), len(items)+1)
	copy(next, items)
	next = append(next, args[1])
	r := values.Collection(next)
	return &r, nil
}

func collPop(args []values.Value) (*values.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	items, err := asCollection(args[0])
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		r := values.Collection(nil)
		return &r, nil
	}
	next := make([]values.Value, len(items)-1)
	copy(next, items[:len(items)-1])
	r := values.Collection(next)
	return &r, nil
}

func collContains(args []values.Value) (*values.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	items, err := asCollection(args[0])
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if values.CompareEq(it, args[1]).Bool {
			r := values.Bool(true)
			return &r, nil
		}
	}
	r := values.Bool(false)
	return &r, nil
}
