/*
File    : drython/values/operators.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package values

import (
	"errors"
	"fmt"
	"math"
)

// This file implements the binary-operator dispatch matrix. Most operators
// here are partial: a pairing an operator doesn't define for signals that
// back to Apply via a false `ok`, and Apply turns it into the runtime error
// `Cannot apply operation '<op>' to '<a>' and '<b>'.` — the same message
// Int/Int division by zero produces. The exceptions are And, Or, CompareEq,
// and CompareNeq, which really are total: Truthy and equality are defined
// for every Value, so those four keep returning a bare Value. Collection
// broadcasting is the other exception: an element-level failure inside a
// broadcast substitutes Null for that element rather than aborting the
// whole expression.

// floatVal extracts v as a float64 if it is Int, Float, or Bool (a Bool
// arithmetic operand coerces to 0/1).
func floatVal(v Value) (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// numericPair extracts both operands as float64 when at least one side is
// Int/Float and the other is Int/Float/Bool: a Bool joins whichever numeric
// kind the other side carries, so a lone Bool has nothing numeric to join
// and Bool-with-Bool arithmetic stays undefined (resolves to Null).
func numericPair(a, b Value) (af, bf float64, ok bool) {
	if a.Kind == KindBool && b.Kind == KindBool {
		return 0, 0, false
	}
	af, okA := floatVal(a)
	bf, okB := floatVal(b)
	if !okA || !okB {
		return 0, 0, false
	}
	return af, bf, true
}

// intVal extracts v as an int64 if it is Int or Bool — the integer-domain
// half of the "Bool treated as 0/1" coercion, excluding Float so a Float
// operand always promotes the result to the Float domain.
func intVal(v Value) (int64, bool) {
	switch v.Kind {
	case KindInt:
		return v.Int, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// bothInt reports whether a and b both belong to the integer domain (Int,
// or Bool joining an Int side) and returns them. Like numericPair, a
// Bool-with-Bool pairing has no numeric side to join and is excluded.
func bothInt(a, b Value) (int64, int64, bool) {
	if a.Kind == KindBool && b.Kind == KindBool {
		return 0, 0, false
	}
	ai, okA := intVal(a)
	bi, okB := intVal(b)
	if !okA || !okB {
		return 0, 0, false
	}
	return ai, bi, true
}

// numericResult keeps Int+Int arithmetic in the Int domain, and promotes
// to Float the moment either operand is a Float. ok is false when neither
// domain accepts the pairing, the signal Apply turns into the "Cannot apply
// operation" runtime error.
func numericResult(a, b Value, intOp func(int64, int64) int64, floatOp func(float64, float64) float64) (Value, bool) {
	if ai, bi, ok := bothInt(a, b); ok {
		return Int(intOp(ai, bi)), true
	}
	if af, bf, ok := numericPair(a, b); ok {
		return Float(floatOp(af, bf)), true
	}
	return Null(), false
}

// broadcast applies a total (always-defined) op to every element of a
// Collection against a scalar other, and zips two Collections elementwise,
// producing Null for the whole result on a length mismatch. Used by And/Or,
// the logical operators that never fail on a given pairing, and by Divide,
// whose element rule divideScalar turns a failing element into Null itself.
func broadcast(a, b Value, op func(Value, Value) Value) (Value, bool) {
	switch {
	case a.Kind == KindCollection && b.Kind == KindCollection:
		if len(a.Collection) != len(b.Collection) {
			return Null(), true
		}
		out := make([]Value, len(a.Collection))
		for i := range a.Collection {
			out[i] = op(a.Collection[i], b.Collection[i])
		}
		return Collection(out), true
	case a.Kind == KindCollection:
		out := make([]Value, len(a.Collection))
		for i := range a.Collection {
			out[i] = op(a.Collection[i], b)
		}
		return Collection(out), true
	case b.Kind == KindCollection:
		out := make([]Value, len(b.Collection))
		for i := range b.Collection {
			out[i] = op(a, b.Collection[i])
		}
		return Collection(out), true
	default:
		return Value{}, false
	}
}

// broadcastChecked is broadcast's counterpart for operators that can be
// undefined for a given pairing (arithmetic, ordering): an element-level
// failure substitutes Null for that element rather than propagating the
// failure out of the whole broadcast.
func broadcastChecked(a, b Value, op func(Value, Value) (Value, bool)) (Value, bool) {
	elem := func(x, y Value) Value {
		if v, ok := op(x, y); ok {
			return v
		}
		return Null()
	}
	switch {
	case a.Kind == KindCollection && b.Kind == KindCollection:
		if len(a.Collection) != len(b.Collection) {
			return Null(), true
		}
		out := make([]Value, len(a.Collection))
		for i := range a.Collection {
			out[i] = elem(a.Collection[i], b.Collection[i])
		}
		return Collection(out), true
	case a.Kind == KindCollection:
		out := make([]Value, len(a.Collection))
		for i := range a.Collection {
			out[i] = elem(a.Collection[i], b)
		}
		return Collection(out), true
	case b.Kind == KindCollection:
		out := make([]Value, len(b.Collection))
		for i := range b.Collection {
			out[i] = elem(a, b.Collection[i])
		}
		return Collection(out), true
	default:
		return Value{}, false
	}
}

// Add implements `+`. Uniquely among the arithmetic operators, it also
// concatenates: `String + X` / `X + String` / `Char + X` / `X + Char` all
// yield a String via lexical concatenation of the non-string side's textual
// form, e.g. `"ab" + 1 + true` -> `"ab1true"`. ok is false only when
// neither the concatenation rule nor the numeric domain accepts the pairing.
func Add(a, b Value) (Value, bool) {
	if v, ok := broadcastChecked(a, b, Add); ok {
		return v, true
	}
	if a.Kind == KindString || a.Kind == KindChar || b.Kind == KindString || b.Kind == KindChar {
		return String(a.String() + b.String()), true
	}
	return numericResult(a, b,
		func(x, y int64) int64 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Subtract implements `-`. Numeric only; ok is false for any other pairing.
func Subtract(a, b Value) (Value, bool) {
	if v, ok := broadcastChecked(a, b, Subtract); ok {
		return v, true
	}
	return numericResult(a, b,
		func(x, y int64) int64 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Multiply implements `*`. Numeric only; ok is false for any other pairing.
func Multiply(a, b Value) (Value, bool) {
	if v, ok := broadcastChecked(a, b, Multiply); ok {
		return v, true
	}
	return numericResult(a, b,
		func(x, y int64) int64 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// ErrDivideByZero is returned by Divide when both operands are Int and the
// divisor is zero — a runtime error distinct from (but formatted
// identically to, via Apply) every other undefined pairing. Float division
// by zero instead produces IEEE infinity/NaN via ordinary float64 division,
// matching host numerics.
var ErrDivideByZero = errors.New("division by zero")

// errUndefinedOperands is Divide's internal signal that neither operand
// pairing (Int/Int, or a numeric pairing) applies — Apply turns it into the
// same "Cannot apply operation" message ErrDivideByZero produces, so callers
// outside this package never need to see it directly.
var errUndefinedOperands = errors.New("undefined operands")

// divideScalar is the element-level division rule used both by the
// top-level Divide and by Collection broadcasting, where a failing element
// becomes Null rather than aborting the whole expression.
func divideScalar(a, b Value) Value {
	if ai, bi, ok := bothInt(a, b); ok {
		if bi == 0 {
			return Null()
		}
		return Int(ai / bi)
	}
	if af, bf, ok := numericPair(a, b); ok {
		return Float(af / bf)
	}
	return Null()
}

// Divide implements `/`. Numeric only. A bare Int/Int division by zero is a
// runtime error (see ErrDivideByZero); inside a Collection broadcast a
// per-element zero-divisor instead becomes Null, per the broadcasting rule.
// Any other undefined pairing also errors, via errUndefinedOperands.
func Divide(a, b Value) (Value, error) {
	if v, ok := broadcast(a, b, divideScalar); ok {
		return v, nil
	}
	if ai, bi, ok := bothInt(a, b); ok {
		if bi == 0 {
			return Null(), ErrDivideByZero
		}
		return Int(ai / bi), nil
	}
	if af, bf, ok := numericPair(a, b); ok {
		return Float(af / bf), nil
	}
	return Null(), errUndefinedOperands
}

// Modulo implements `%`. Numeric only; integer/float modulo by zero
// resolves to Null (only division by zero is a named runtime error), but
// any other pairing is undefined (ok false).
func Modulo(a, b Value) (Value, bool) {
	if v, ok := broadcastChecked(a, b, Modulo); ok {
		return v, true
	}
	if ai, bi, ok := bothInt(a, b); ok {
		if bi == 0 {
			return Null(), true
		}
		return Int(ai % bi), true
	}
	if af, bf, ok := numericPair(a, b); ok {
		if bf == 0 {
			return Null(), true
		}
		// math.Mod mirrors the sign of the dividend, same as Go's integer %.
		return Float(math.Mod(af, bf)), true
	}
	return Null(), false
}

// And implements `&&`. Numeric operands coerce via the Truthy/"≠0" rule;
// Bool combines directly. Collections broadcast elementwise, mirroring the
// arithmetic operators.
func And(a, b Value) Value {
	if v, ok := broadcast(a, b, And); ok {
		return v
	}
	return Bool(a.Truthy() && b.Truthy())
}

// Or implements `||`. See And for the coercion and broadcasting rules.
func Or(a, b Value) Value {
	if v, ok := broadcast(a, b, Or); ok {
		return v
	}
	return Bool(a.Truthy() || b.Truthy())
}

// asBool implements the "≠ 0 / ≠ 0.0" numeric-to-Bool coercion that
// comparisons use when one side is Bool and the other is numeric.
func asBool(v Value) (bool, bool) {
	switch v.Kind {
	case KindBool:
		return v.Bool, true
	case KindInt:
		return v.Int != 0, true
	case KindFloat:
		return v.Float != 0, true
	default:
		return false, false
	}
}

// isDisplayComparable reports whether v is one of the kinds String
// equality compares against via its Display form (Int, Float, Bool, Char).
func isDisplayComparable(v Value) bool {
	switch v.Kind {
	case KindInt, KindFloat, KindBool, KindChar:
		return true
	default:
		return false
	}
}

// compareEqScalar implements equality for non-Collection operands:
// same-kind comparison, Int/Float cross-promotion, Bool/numeric coercion,
// and String's lexical comparison against another value's Display form.
func compareEqScalar(a, b Value) bool {
	if a.Kind == b.Kind {
		switch a.Kind {
		case KindNull:
			return true
		case KindInt:
			return a.Int == b.Int
		case KindFloat:
			return a.Float == b.Float
		case KindBool:
			return a.Bool == b.Bool
		case KindString:
			return a.Str == b.Str
		case KindChar:
			return a.Char == b.Char
		default:
			return false
		}
	}
	// A Bool paired with a numeric value coerces the numeric side to Bool
	// via "≠ 0" — the Bool never widens to 0/1, so true == 5 holds. This
	// must run ahead of numericPair, which would otherwise compare 1.0
	// against 5.0.
	if a.Kind == KindBool || b.Kind == KindBool {
		if ab, okA := asBool(a); okA {
			if bb, okB := asBool(b); okB {
				return ab == bb
			}
		}
	}
	if af, bf, ok := numericPair(a, b); ok {
		return af == bf
	}
	if a.Kind == KindString && isDisplayComparable(b) {
		return a.Str == b.String()
	}
	if b.Kind == KindString && isDisplayComparable(a) {
		return b.Str == a.String()
	}
	return false
}

// CompareEq implements `==`. Collection==Collection compares elementwise
// and requires equal length (false on mismatch, never Null);
// Collection==scalar is true iff every element equals the scalar.
func CompareEq(a, b Value) Value {
	switch {
	case a.Kind == KindCollection && b.Kind == KindCollection:
		if len(a.Collection) != len(b.Collection) {
			return Bool(false)
		}
		for i := range a.Collection {
			if !CompareEq(a.Collection[i], b.Collection[i]).Bool {
				return Bool(false)
			}
		}
		return Bool(true)
	case a.Kind == KindCollection:
		for _, e := range a.Collection {
			if !CompareEq(e, b).Bool {
				return Bool(false)
			}
		}
		return Bool(true)
	case b.Kind == KindCollection:
		return CompareEq(b, a)
	default:
		return Bool(compareEqScalar(a, b))
	}
}

// CompareNeq implements `!=` as the logical negation of CompareEq.
func CompareNeq(a, b Value) Value { return Bool(!CompareEq(a, b).Bool) }

// compareOrder implements the ordering relation shared by >=, >, <, <=: Int
// vs Int/Float compares numerically after promotion; Bool paired with Bool
// or a numeric value compares via the "≠0" coercion (the numeric side
// becomes a Bool, not vice versa); every other pairing is undefined.
func compareOrder(a, b Value) (cmp int, ok bool) {
	// As in compareEqScalar, a Bool operand pulls the numeric side down to
	// Bool via "≠ 0" before any numeric comparison — checked ahead of
	// numericPair so the Bool never widens to 0/1 instead.
	if a.Kind == KindBool || b.Kind == KindBool {
		ab, okA := asBool(a)
		bb, okB := asBool(b)
		if !okA || !okB {
			return 0, false
		}
		ai, bi := 0, 0
		if ab {
			ai = 1
		}
		if bb {
			bi = 1
		}
		switch {
		case ai < bi:
			return -1, true
		case ai > bi:
			return 1, true
		default:
			return 0, true
		}
	}
	if af, bf, ok := numericPair(a, b); ok {
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

// CompareGte implements `>=`. See compareOrder for the defined domain (e.g.
// String/Char ordering is undefined, ok false); Collections broadcast
// elementwise like the arithmetic operators.
func CompareGte(a, b Value) (Value, bool) {
	if v, ok := broadcastChecked(a, b, CompareGte); ok {
		return v, true
	}
	if cmp, ok := compareOrder(a, b); ok {
		return Bool(cmp >= 0), true
	}
	return Null(), false
}

// CompareGt implements `>`. See CompareGte.
func CompareGt(a, b Value) (Value, bool) {
	if v, ok := broadcastChecked(a, b, CompareGt); ok {
		return v, true
	}
	if cmp, ok := compareOrder(a, b); ok {
		return Bool(cmp > 0), true
	}
	return Null(), false
}

// CompareLt implements `<` as the negation of `>=`.
func CompareLt(a, b Value) (Value, bool) {
	if v, ok := broadcastChecked(a, b, CompareLt); ok {
		return v, true
	}
	if cmp, ok := compareOrder(a, b); ok {
		return Bool(cmp < 0), true
	}
	return Null(), false
}

// CompareLte implements `<=` as the negation of `>`.
func CompareLte(a, b Value) (Value, bool) {
	if v, ok := broadcastChecked(a, b, CompareLte); ok {
		return v, true
	}
	if cmp, ok := compareOrder(a, b); ok {
		return Bool(cmp <= 0), true
	}
	return Null(), false
}

// undefinedOperation formats the runtime error for an operator genuinely
// undefined over the given operand pair.
func undefinedOperation(symbol string, a, b Value) error {
	return fmt.Errorf("Cannot apply operation '%s' to '%s' and '%s'.", symbol, a.String(), b.String())
}

// Apply dispatches a binary operator symbol (as produced by the expression
// parser's shunting-yard) to its implementation. And, Or, CompareEq, and
// CompareNeq are total and never error; every other operator errors with
// undefinedOperation when the dispatch below reports its pairing as
// undefined. An unrecognized symbol (never produced by the shunting-yard in
// practice) errors the same way.
func Apply(symbol string, a, b Value) (Value, error) {
	switch symbol {
	case "+":
		if v, ok := Add(a, b); ok {
			return v, nil
		}
		return Null(), undefinedOperation(symbol, a, b)
	case "-":
		if v, ok := Subtract(a, b); ok {
			return v, nil
		}
		return Null(), undefinedOperation(symbol, a, b)
	case "*":
		if v, ok := Multiply(a, b); ok {
			return v, nil
		}
		return Null(), undefinedOperation(symbol, a, b)
	case "/":
		v, err := Divide(a, b)
		if err != nil {
			return Null(), undefinedOperation(symbol, a, b)
		}
		return v, nil
	case "%":
		if v, ok := Modulo(a, b); ok {
			return v, nil
		}
		return Null(), undefinedOperation(symbol, a, b)
	case "&&":
		return And(a, b), nil
	case "||":
		return Or(a, b), nil
	case "==":
		return CompareEq(a, b), nil
	case "!=":
		return CompareNeq(a, b), nil
	case ">=":
		if v, ok := CompareGte(a, b); ok {
			return v, nil
		}
		return Null(), undefinedOperation(symbol, a, b)
	case ">":
		if v, ok := CompareGt(a, b); ok {
			return v, nil
		}
		return Null(), undefinedOperation(symbol, a, b)
	case "<":
		if v, ok := CompareLt(a, b); ok {
			return v, nil
		}
		return Null(), undefinedOperation(symbol, a, b)
	case "<=":
		if v, ok := CompareLte(a, b); ok {
			return v, nil
		}
		return Null(), undefinedOperation(symbol, a, b)
	default:
		return Null(), undefinedOperation(symbol, a, b)
	}
}
