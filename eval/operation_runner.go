/*
File    : drython/eval/operation_runner.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package eval

import (
	"fmt"
	"strconv"

	"github.com/dryscript/drython/parser"
	"github.com/dryscript/drython/scope"
	"github.com/dryscript/drython/values"
)

// RunOperation is a stack-machine evaluator over a postfix token stream.
// Operands are resolved (variable lookup, nested Operation recursion, Call
// dispatch, Accessor resolution) and pushed; an Operator token pops its
// two most recently pushed operands and pushes the applied result —
// standard left-to-right RPN evaluation over the stream
// parser.ParseExpression's shunting-yard produces.
func RunOperation(tokens []values.Value, sc *scope.Scope, runner *Runner) (values.Value, error) {
	var stack []values.Value
	for _, tok := range tokens {
		if tok.Kind == values.KindOperator {
			if len(stack) < 2 {
				return values.Null(), fmt.Errorf("malformed expression: missing operand for '%s'", tok.Name)
			}
			rhs := stack[len(stack)-1]
			lhs := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			result, err := values.Apply(tok.Name, lhs, rhs)
			if err != nil {
				return values.Null(), err
			}
			stack = append(stack, result)
			continue
		}
		v, err := resolveToken(tok, sc, runner)
		if err != nil {
			return values.Null(), err
		}
		stack = append(stack, v)
	}
	if len(stack) != 1 {
		return values.Null(), fmt.Errorf("malformed expression")
	}
	return resolveToken(stack[0], sc, runner)
}

// resolveToken resolves one token to a data Value. Data Values (the fully
// evaluated kinds) resolve to themselves.
func resolveToken(tok values.Value, sc *scope.Scope, runner *Runner) (values.Value, error) {
	switch tok.Kind {
	case values.KindVar:
		v, ok := sc.Get(tok.Name)
		if !ok {
			return values.Null(), fmt.Errorf("Could not find a variable by the name: %s", tok.Name)
		}
		return v, nil
	case values.KindCall:
		return resolveCall(tok, sc, runner)
	case values.KindOperation:
		return RunOperation(tok.Args, sc, runner)
	case values.KindCollection:
		items := make([]values.Value, len(tok.Collection))
		for i, it := range tok.Collection {
			v, err := resolveToken(it, sc, runner)
			if err != nil {
				return values.Null(), err
			}
			items[i] = v
		}
		return values.Collection(items), nil
	case values.KindAccessor:
		return resolveAccessor(tok, sc, runner)
	default:
		return tok, nil
	}
}

// resolveCall splits the retained raw argument source on ','
// (bracket/literal-aware), parses each fragment as an operation, evaluates
// it, and dispatches to runner.Call. A nil result from the callable leaves
// the original Call token standing in as the value.
func resolveCall(tok values.Value, sc *scope.Scope, runner *Runner) (values.Value, error) {
	argStrings, err := parser.SplitTopLevel(tok.Str, ',')
	if err != nil {
		return values.Null(), err
	}
	args := make([]values.Value, 0, len(argStrings))
	for _, frag := range argStrings {
		postfix, err := parser.ParseExpression(frag)
		if err != nil {
			return values.Null(), err
		}
		v, err := RunOperation(postfix, sc, runner)
		if err != nil {
			return values.Null(), err
		}
		args = append(args, v)
	}
	result, err := runner.Call(tok.Name, args)
	if err != nil {
		return values.Null(), err
	}
	if result == nil {
		return tok, nil
	}
	return *result, nil
}

// resolveAccessor implements Drython's idiosyncratic dotted-access rules —
// registered library variables rely on them (e.g. vector3.one resolves by
// flat name, not field access).
//
// Accessor chains are parsed right-heavy (a.b.c.d -> Accessor(a,
// Accessor(b, Accessor(c, d)))), so a chain of plain Vars must first be
// flattened all the way down to a single dotted name ("a.b.c.d") before
// lookup — concatenating only the first two names and recursing into the
// rest as its own accessor would send the wrong fragment ("b.c.d") to a
// nested lookup instead of building one name. dottedPrefix walks that
// spine, accumulating every leading Var and stopping at the first
// non-Var hop (an Int index, a Call, or a literal). A Call hop dispatches
// to the dotted name "<prefix>.<callee>"; any other hop must be, or
// evaluate to, an Int, which indexes the value the accumulated prefix names.
func resolveAccessor(tok values.Value, sc *scope.Scope, runner *Runner) (values.Value, error) {
	left := *tok.Left
	if left.Kind != values.KindVar {
		return resolveNonVarAccessor(left, *tok.Right, sc, runner)
	}

	prefix, tail := dottedPrefix(left.Name, *tok.Right)
	if tail == nil {
		if v, ok := sc.Get(prefix); ok {
			return v, nil
		}
		return values.Null(), fmt.Errorf("Could not find a variable by the name: %s", prefix)
	}

	switch tail.Kind {
	case values.KindInt:
		v, ok := sc.Get(prefix)
		if !ok {
			return values.Null(), fmt.Errorf("Could not find a variable by the name: %s", prefix)
		}
		return indexCollectionOrString(v, int(tail.Int))
	case values.KindCall:
		callTok := values.Value{Kind: values.KindCall, Name: prefix + "." + tail.Name, Str: tail.Str}
		return resolveCall(callTok, sc, runner)
	default:
		v, err := resolveToken(*tail, sc, runner)
		if err != nil {
			return values.Null(), err
		}
		if v.Kind == values.KindInt {
			prefixVal, ok := sc.Get(prefix)
			if !ok {
				return values.Null(), fmt.Errorf("Could not find a variable by the name: %s", prefix)
			}
			return indexCollectionOrString(prefixVal, int(v.Int))
		}
		return values.Null(), fmt.Errorf("bad accessor shape: %s.%s", prefix, v.String())
	}
}

// dottedPrefix accumulates leading dotted Var names starting with name,
// walking rest's right-heavy spine until it hits a hop that is not itself
// a Var.Var accessor, returning the accumulated dotted name and the
// non-Var tail Value to apply against it (nil tail means rest was itself
// a plain Var, so the whole chain is one dotted variable name).
func dottedPrefix(name string, rest values.Value) (string, *values.Value) {
	if rest.Kind == values.KindVar {
		return name + "." + rest.Name, nil
	}
	if rest.Kind == values.KindAccessor && rest.Left.Kind == values.KindVar {
		return dottedPrefix(name+"."+rest.Left.Name, *rest.Right)
	}
	restCopy := rest
	return name, &restCopy
}

// resolveNonVarAccessor handles the remaining accessor shapes where the
// left-hand side is not a bare Var (e.g. a Collection or String literal,
// or the result of a nested Operation/Call) — it is resolved to a data
// Value first, then indexed or dispatched on.
func resolveNonVarAccessor(left, right values.Value, sc *scope.Scope, runner *Runner) (values.Value, error) {
	leftVal, err := resolveToken(left, sc, runner)
	if err != nil {
		return values.Null(), err
	}
	switch {
	case leftVal.Kind == values.KindCollection && right.Kind == values.KindInt:
		return indexCollectionOrString(leftVal, int(right.Int))
	case leftVal.Kind == values.KindString && right.Kind == values.KindInt:
		return indexCollectionOrString(leftVal, int(right.Int))
	case leftVal.Kind == values.KindString && right.Kind == values.KindString:
		key := leftVal.Str + "." + right.Str
		if v, ok := sc.Get(key); ok {
			return v, nil
		}
		return values.Null(), fmt.Errorf("Could not find a variable by the name: %s", key)
	case leftVal.Kind == values.KindString && right.Kind == values.KindCall:
		full := leftVal.Str + "." + right.Name
		callTok := values.Value{Kind: values.KindCall, Name: full, Str: right.Str}
		return resolveCall(callTok, sc, runner)
	}
	return values.Null(), fmt.Errorf("bad accessor shape: %s.%s", leftVal.String(), right.String())
}

// indexCollectionOrString implements the Collection.Int (0-based element
// access) and String.Int (single-character substring) accessor rules, with
// bounds checks.
func indexCollectionOrString(v values.Value, idx int) (values.Value, error) {
	switch v.Kind {
	case values.KindCollection:
		if idx < 0 || idx >= len(v.Collection) {
			return values.Null(), fmt.Errorf("index %d out of range for a collection of length %d", idx, len(v.Collection))
		}
		return v.Collection[idx], nil
	case values.KindString:
		runes := []rune(v.Str)
		if idx < 0 || idx >= len(runes) {
			return values.Null(), fmt.Errorf("index %d out of range for a string of length %d", idx, len(runes))
		}
		return values.String(string(runes[idx])), nil
	default:
		return values.Null(), fmt.Errorf("cannot index a value of kind %s with %s", v.Kind, strconv.Itoa(idx))
	}
}
