/*
File    : drython/eval/scope_eval.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package eval

import (
	"github.com/dryscript/drython/parser"
	"github.com/dryscript/drython/scope"
	"github.com/dryscript/drython/values"
)

// signalKind is the non-local control transfer a statement can produce:
// a plain fall-through (signalNone), a return (propagates to the call
// boundary), or a break/continue (consumed by the nearest enclosing loop).
type signalKind int

const (
	signalNone signalKind = iota
	signalReturn
	signalBreak
	signalContinue
)

type signal struct {
	kind  signalKind
	value values.Value
}

// evalList is the scope evaluator: it walks one ExpressionList's Order in
// source order, dispatching each slot to its statement kind and
// propagating the first non-none signal up to its caller (a return unwinds
// every enclosing block and loop up to the call boundary; a break/continue
// unwinds to the nearest enclosing loop). A nested function definition is
// hoisted into runner's function table rather than executed in place,
// mirroring how RunSetup treats the root list's own function definitions.
func evalList(el *parser.ExpressionList, sc *scope.Scope, runner *Runner) (signal, error) {
	si, mi, ii := 0, 0, 0
	// An if/elif/else chain occupies one Order slot per member but is
	// dispatched as a unit by runIfChain; the members it consumed beyond
	// the first still have SlotInternal entries to skip past.
	skipInternal := 0
	for _, slot := range el.Order {
		switch slot {
		case parser.SlotNull, parser.SlotLibrary:
			// Blank/comment lines produce nothing at runtime; library
			// includes are resolved once, by Runner.RunSetup.
		case parser.SlotSingle:
			op := el.SingleOps[si]
			si++
			sig, err := runSingleOp(op, sc, runner)
			if err != nil {
				return signal{}, atLine(op.SourceLine, err)
			}
			if sig.kind != signalNone {
				return sig, nil
			}
		case parser.SlotMulti:
			op := el.MultiOps[mi]
			mi++
			if err := runMultiOp(op, sc, runner); err != nil {
				return signal{}, atLine(op.SourceLine, err)
			}
		case parser.SlotInternal:
			if skipInternal > 0 {
				skipInternal--
				continue
			}
			entry := el.Internals[ii]
			if entry.Child.IsFunction() {
				runner.registerInternal(entry.Child)
				ii++
				continue
			}
			switch entry.Child.ScopeKind {
			case "if":
				consumed, sig, err := runIfChain(el.Internals[ii:], sc, runner)
				ii += consumed
				skipInternal = consumed - 1
				if err != nil {
					return signal{}, err
				}
				if sig.kind != signalNone {
					return sig, nil
				}
			case "loop":
				sig, err := runLoop(entry.Child, entry.SourceLine, sc, runner)
				ii++
				if err != nil {
					return signal{}, err
				}
				if sig.kind == signalReturn {
					return sig, nil
				}
			default:
				// A stray elif/else with no matching if reaches here only
				// if the parser recovered past a malformed chain; nothing
				// to run.
				ii++
			}
		}
	}
	return signal{}, nil
}

// runIfChain implements if/elif/else conditional chaining: entries
// is the tail of an ExpressionList's Internals starting at a chain's
// leading "if" member. It evaluates conditions in order, runs the first
// branch whose condition produces Bool(true) (or the trailing "else", if
// reached unconditionally), and returns how many contiguous chain members it
// consumed so the caller can advance its own index past all of them,
// taken or not.
func runIfChain(entries []parser.InternalEntry, sc *scope.Scope, runner *Runner) (int, signal, error) {
	consumed := 0
	taken := false
	var result signal

	for idx, e := range entries {
		kind := e.Child.ScopeKind
		if idx == 0 {
			if kind != "if" {
				break
			}
		} else if kind != "elif" && kind != "else" {
			break
		}
		consumed++

		if taken {
			continue
		}
		if kind == "else" {
			taken = true
			sig, err := runBlockBody(e.Child, sc, runner)
			if err != nil {
				return consumed, signal{}, err
			}
			result = sig
			continue
		}
		condVal, err := evalCondition(e.Child.ScopePayload, sc, runner)
		if err != nil {
			return consumed, signal{}, atLine(e.SourceLine, err)
		}
		if conditionHolds(condVal) {
			taken = true
			sig, err := runBlockBody(e.Child, sc, runner)
			if err != nil {
				return consumed, signal{}, err
			}
			result = sig
		}
	}
	return consumed, result, nil
}

// runLoop re-tests the condition (an empty ScopePayload means an
// unconditional loop) before every iteration, runs the body in a fresh
// nested block scope, and interprets
// its signal — break ends the loop quietly, continue starts the next
// iteration, return propagates to the caller unchanged.
func runLoop(child *parser.ExpressionList, headerLine int, sc *scope.Scope, runner *Runner) (signal, error) {
	for {
		if child.ScopePayload != "" {
			condVal, err := evalCondition(child.ScopePayload, sc, runner)
			if err != nil {
				return signal{}, atLine(headerLine, err)
			}
			if !conditionHolds(condVal) {
				return signal{}, nil
			}
		}
		sig, err := runBlockBody(child, sc, runner)
		if err != nil {
			return signal{}, err
		}
		switch sig.kind {
		case signalBreak:
			return signal{}, nil
		case signalReturn:
			return sig, nil
		}
	}
}

// runBlockBody evaluates a nested if/elif/else branch or loop body in a
// block-local scope: locals introduced inside are torn down on exit, while
// the enclosing frame's bindings remain visible throughout.
func runBlockBody(child *parser.ExpressionList, sc *scope.Scope, runner *Runner) (signal, error) {
	block := sc.EnterBlock()
	sig, err := evalList(child, block, runner)
	block.ExitBlock()
	return sig, err
}

// conditionHolds reports whether a header condition's result selects its
// branch (or continues its loop): only the literal Bool(true) does. Any
// other result — a non-zero Int included — fails the condition; Truthy's
// looser coercion belongs to the && / || operators, not to branch
// selection.
func conditionHolds(v values.Value) bool {
	return v.Kind == values.KindBool && v.Bool
}

// evalCondition evaluates a header's condition source text. An empty
// payload (only valid for loop headers) is treated as always-true.
func evalCondition(src string, sc *scope.Scope, runner *Runner) (values.Value, error) {
	if src == "" {
		return values.Bool(true), nil
	}
	postfix, err := parser.ParseExpression(src)
	if err != nil {
		return values.Null(), err
	}
	return RunOperation(postfix, sc, runner)
}

// runSingleOp executes one assignment, return, break, or continue
// statement. Modifiers (pub/const/...) are recorded in the parse tree but
// carry no distinct runtime behavior — Drython enforces neither
// cross-library visibility nor immutability — so every modifier
// combination assigns the same way.
func runSingleOp(op parser.SingleOp, sc *scope.Scope, runner *Runner) (signal, error) {
	switch op.Tag {
	case "return":
		if op.Postfix == nil {
			return signal{kind: signalReturn, value: values.Null()}, nil
		}
		v, err := RunOperation(op.Postfix, sc, runner)
		if err != nil {
			return signal{}, err
		}
		return signal{kind: signalReturn, value: v}, nil
	case "break":
		return signal{kind: signalBreak}, nil
	case "continue":
		return signal{kind: signalContinue}, nil
	default:
		v, err := RunOperation(op.Postfix, sc, runner)
		if err != nil {
			return signal{}, err
		}
		sc.Set(op.Tag, v)
		return signal{}, nil
	}
}

// runMultiOp executes one bare call statement, evaluating each argument
// expression left to right before dispatching.
func runMultiOp(op parser.MultiOp, sc *scope.Scope, runner *Runner) error {
	args := make([]values.Value, len(op.Args))
	for i, postfix := range op.Args {
		v, err := RunOperation(postfix, sc, runner)
		if err != nil {
			return err
		}
		args[i] = v
	}
	_, err := runner.Call(op.Callee, args)
	return err
}
