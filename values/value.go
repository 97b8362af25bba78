/*
File    : drython/values/value.go
Author  : Drython Contributors
Contact : dryscript/drython
*/

// Package values implements Drython's tagged-union Value type: the single
// closed representation every lexed literal, evaluated expression, and
// host-registered variable is expressed as.
//
// Value carries both the "fully evaluated" data kinds (Null, Int, Float,
// Bool, String, Char, Collection) and a set of meta/intermediate kinds
// (Var, Call, Operation, Operator, Accessor, Break) produced mid-parse or
// mid-evaluation. The parser produces the meta Values; eval.RunOperation and
// the Scope Evaluator resolve them away, so a fully evaluated Value carries
// a data Kind — except a call whose host callable produced no value, which
// evaluates to its own Call token (see eval.ExternalFunc).
package values

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates which field(s) of a Value are meaningful.
type Kind int

const (
	// Data kinds — a fully evaluated Value always carries one of these.
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindChar
	KindCollection

	// Meta kinds — intermediate forms produced while parsing or evaluating.
	// A Value of one of these kinds is never a valid final evaluation result.
	KindVar       // unresolved variable reference (Name)
	KindCall      // unresolved function call (Name, Str)
	KindOperation // a postfix operand/operator stream awaiting the Operation Runner (Args)
	KindOperator  // a single operator token, e.g. "+" (Name)
	KindAccessor  // a dotted/indexed access chain (Left, Right)
	KindBreak     // a loop-break signal carrying an optional value (Args[0])
)

// String names a Kind for diagnostics; it is not the Display format of a Value.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindChar:
		return "Char"
	case KindCollection:
		return "Collection"
	case KindVar:
		return "Var"
	case KindCall:
		return "Call"
	case KindOperation:
		return "Operation"
	case KindOperator:
		return "Operator"
	case KindAccessor:
		return "Accessor"
	case KindBreak:
		return "Break"
	default:
		return "Unknown"
	}
}

// Value is Drython's tagged union. Only the fields relevant to Kind are
// populated; the rest are left at their zero value.
type Value struct {
	Kind Kind

	Int   int64
	Float float64
	Bool  bool
	Str   string
	Char  rune

	Collection []Value

	// Name carries a Var's variable name, a Call's function name, or an
	// Operator's symbol (e.g. "+", "&&").
	Name string
	// Str additionally carries a Call's raw, unparsed argument source text
	// (arguments stay as source until the call is actually dispatched); for
	// a String it is the text itself.
	// Args carries an Operation's postfix token stream, or a Break's
	// optional payload (Args[0] if len(Args) == 1).
	Args []Value
	// Left/Right carry an Accessor's two operands (Left.Right, e.g. a.b).
	Left  *Value
	Right *Value
}

// Constructors for the data kinds.

func Null() Value                 { return Value{Kind: KindNull} }
func Int(i int64) Value           { return Value{Kind: KindInt, Int: i} }
func Float(f float64) Value       { return Value{Kind: KindFloat, Float: f} }
func Bool(b bool) Value           { return Value{Kind: KindBool, Bool: b} }
func String(s string) Value       { return Value{Kind: KindString, Str: s} }
func Char(c rune) Value           { return Value{Kind: KindChar, Char: c} }
func Collection(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: KindCollection, Collection: items}
}

// Constructors for the meta kinds.

func Var(name string) Value { return Value{Kind: KindVar, Name: name} }

// Call builds an unresolved call reference; argsSource is the raw,
// not-yet-parsed source text of the argument list (kept verbatim so each
// argument can be re-parsed as its own operation once the call is actually
// dispatched — see eval.resolveCall).
func Call(name, argsSource string) Value {
	return Value{Kind: KindCall, Name: name, Str: argsSource}
}
func Operation(tokens []Value) Value { return Value{Kind: KindOperation, Args: tokens} }
func Operator(symbol string) Value   { return Value{Kind: KindOperator, Name: symbol} }
func Accessor(left, right Value) Value {
	return Value{Kind: KindAccessor, Left: &left, Right: &right}
}
func Break(payload *Value) Value {
	if payload == nil {
		return Value{Kind: KindBreak}
	}
	return Value{Kind: KindBreak, Args: []Value{*payload}}
}

// IsMeta reports whether v is an intermediate/meta Value that has not
// finished resolving to data. A fully evaluated expression returns one only
// as the Call token standing in for a call that produced no value.
func (v Value) IsMeta() bool {
	switch v.Kind {
	case KindVar, KindCall, KindOperation, KindOperator, KindAccessor, KindBreak:
		return true
	default:
		return false
	}
}

// Truthy implements the loose bool coercion the && / || operators use to
// read a Value as a bool. Branch and loop conditions do not use it — they
// demand a literal Bool(true); see eval's condition handling.
//
// Null and an empty Collection/String are false; numeric zero is false;
// every other data Value is true. Meta kinds are never truthy (they should
// have already been resolved by the time Truthy is evaluated).
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindInt:
		return v.Int != 0
	case KindFloat:
		return v.Float != 0
	case KindBool:
		return v.Bool
	case KindString:
		return v.Str != ""
	case KindChar:
		return v.Char != 0
	case KindCollection:
		return len(v.Collection) > 0
	default:
		return false
	}
}

// String renders v in Drython's plain textual form, the one `+`
// concatenation and dotted-accessor name building consume.
//
// Example:
//
//	values.Int(3).String()               // "3"
//	values.Float(1.5).String()           // "1.5"
//	values.String("hi").String()         // "hi"
//	values.Collection([]Value{..}).String() // "[1, 2, 3]"
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return formatFloat(v.Float)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindString:
		return v.Str
	case KindChar:
		return string(v.Char)
	case KindCollection:
		parts := make([]string, len(v.Collection))
		for i, e := range v.Collection {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindVar:
		return "Var(" + v.Name + ")"
	case KindCall:
		return "Call(" + v.Name + ")"
	case KindOperator:
		return "Operator(" + v.Name + ")"
	case KindOperation:
		return "Operation(...)"
	case KindAccessor:
		return "Accessor(...)"
	case KindBreak:
		return "Break"
	default:
		return fmt.Sprintf("<invalid kind %d>", v.Kind)
	}
}

// Display renders v the way a host-visible `print` call shows it: String
// wrapped in double quotes, Char in single quotes, Collection elements
// recursively Displayed, everything else identical to String(). This
// differs from String() (used for `+` concatenation and dotted-accessor
// name building, where a String contributes its raw characters, not a
// re-quoted literal).
func (v Value) Display() string {
	switch v.Kind {
	case KindString:
		return `"` + v.Str + `"`
	case KindChar:
		return "'" + string(v.Char) + "'"
	case KindCollection:
		parts := make([]string, len(v.Collection))
		for i, e := range v.Collection {
			parts[i] = e.Display()
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return v.String()
	}
}

// formatFloat keeps a trailing ".0" on whole-number floats so 3.0 never
// prints indistinguishably from the Int 3.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
