/*
File    : drython/parser/operation.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package parser

import (
	"fmt"
	"strconv"

	"github.com/dryscript/drython/values"
)

// precedence is the shunting-yard binding-power table: higher binds
// tighter, every operator left-associative within its own tier.
var precedence = map[string]int{
	"*": 5, "/": 5, "%": 5,
	"+": 4, "-": 4,
	">": 3, ">=": 3, "<": 3, "<=": 3,
	"==": 2, "!=": 2,
	"&&": 1, "||": 1,
}

// operatorsByLength lists the recognized operator symbols, longest first,
// so the tokenizer's greedy match never splits "==" into "=" + "=".
var operatorsByLength = []string{"==", "!=", ">=", "<=", "&&", "||", ">", "<", "+", "-", "*", "/", "%"}

// ParseExpression tokenizes src into the closed infix token set, then
// reorders the result into a postfix stream via shunting-yard. The
// returned slice is consumed by eval's operation runner exactly like any
// other Operation's Args.
//
// src has already had whitespace stripped by lexer.Normalize outside of
// string/char literals, so the tokenizer never needs to skip spaces.
func ParseExpression(src string) ([]values.Value, error) {
	infix, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	return toPostfix(infix)
}

// tokenize walks src producing an alternating atom/operator infix token
// list.
func tokenize(src string) ([]values.Value, error) {
	runes := []rune(src)
	t := &tokenizer{runes: runes}
	var tokens []values.Value
	expectAtom := true
	for t.pos < len(runes) {
		if expectAtom {
			atom, err := t.parseAtomChain()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, atom)
			expectAtom = false
			continue
		}
		op, ok := t.parseOperator()
		if !ok {
			return nil, fmt.Errorf("unknown operator symbol at %q", string(runes[t.pos:]))
		}
		tokens = append(tokens, values.Operator(op))
		expectAtom = true
	}
	if expectAtom {
		// Either src was empty, or it ended on a trailing operator
		// (e.g. "1+").
		return nil, fmt.Errorf("Unknown expression")
	}
	return tokens, nil
}

// toPostfix runs the shunting-yard reorder: operators pop off the stack
// into the output whenever the incoming operator's precedence is not
// higher than the stack top's, which yields left-associativity within a
// precedence tier; atoms go straight to the output.
func toPostfix(infix []values.Value) ([]values.Value, error) {
	var output []values.Value
	var stack []values.Value
	for _, tok := range infix {
		if tok.Kind != values.KindOperator {
			output = append(output, tok)
			continue
		}
		for len(stack) > 0 && precedence[stack[len(stack)-1].Name] >= precedence[tok.Name] {
			output = append(output, stack[len(stack)-1])
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, tok)
	}
	for len(stack) > 0 {
		output = append(output, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}
	return output, nil
}

// tokenizer is a cursor over one expression fragment's runes.
type tokenizer struct {
	runes []rune
	pos   int
}

func (t *tokenizer) peek() (rune, bool) {
	if t.pos >= len(t.runes) {
		return 0, false
	}
	return t.runes[t.pos], true
}

// parseOperator greedily matches the longest known operator symbol at the
// cursor, advancing past it on success.
func (t *tokenizer) parseOperator() (string, bool) {
	rest := t.runes[t.pos:]
	for _, sym := range operatorsByLength {
		sr := []rune(sym)
		if len(sr) > len(rest) {
			continue
		}
		match := true
		for i, r := range sr {
			if rest[i] != r {
				match = false
				break
			}
		}
		if match {
			t.pos += len(sr)
			return sym, true
		}
	}
	return "", false
}

// parseAtomChain parses one base atom (parseAtomBase) and then folds any
// trailing `.`-separated accessor pieces into a right-heavy Accessor
// chain: a.b.c -> Accessor(a, Accessor(b, c)).
func (t *tokenizer) parseAtomChain() (values.Value, error) {
	first, err := t.parseAtomBase()
	if err != nil {
		return values.Value{}, err
	}
	pieces := []values.Value{first}
	for {
		c, ok := t.peek()
		if !ok || c != '.' {
			break
		}
		t.pos++ // consume '.'
		piece, err := t.parseAtomBase()
		if err != nil {
			return values.Value{}, err
		}
		pieces = append(pieces, piece)
	}
	result := pieces[len(pieces)-1]
	for i := len(pieces) - 2; i >= 0; i-- {
		result = values.Accessor(pieces[i], result)
	}
	return result, nil
}

// parseAtomBase parses exactly one atom — a literal, variable, call,
// parenthesized sub-expression, or collection — without following any
// trailing accessor chain (parseAtomChain's job).
func (t *tokenizer) parseAtomBase() (values.Value, error) {
	c, ok := t.peek()
	if !ok {
		return values.Value{}, fmt.Errorf("Unknown expression")
	}

	switch {
	case c == '-' && t.pos+1 < len(t.runes) && isDigit(t.runes[t.pos+1]):
		return t.parseNumber()
	case isDigit(c):
		return t.parseNumber()
	case c == '"':
		return t.parseString()
	case c == '\'':
		return t.parseChar()
	case c == '[':
		return t.parseCollection()
	case c == '(':
		return t.parseParenGroup()
	case isIdentStart(c):
		return t.parseIdentOrCall()
	default:
		return values.Value{}, fmt.Errorf("unexpected character %q", c)
	}
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }
func isIdentStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
func isIdentChar(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}

func (t *tokenizer) parseNumber() (values.Value, error) {
	start := t.pos
	if t.runes[t.pos] == '-' {
		t.pos++
	}
	for t.pos < len(t.runes) && isDigit(t.runes[t.pos]) {
		t.pos++
	}
	isFloat := false
	if t.pos < len(t.runes) && t.runes[t.pos] == '.' && t.pos+1 < len(t.runes) && isDigit(t.runes[t.pos+1]) {
		isFloat = true
		t.pos++
		for t.pos < len(t.runes) && isDigit(t.runes[t.pos]) {
			t.pos++
		}
	}
	text := string(t.runes[start:t.pos])
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return values.Value{}, err
		}
		return values.Float(f), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return values.Value{}, err
	}
	return values.Int(i), nil
}

func (t *tokenizer) parseString() (values.Value, error) {
	close, ok := t.quoteClose('"', t.pos+1)
	if !ok {
		return values.Value{}, fmt.Errorf("unclosed string literal")
	}
	s := string(t.runes[t.pos+1 : close])
	t.pos = close + 1
	return values.String(s), nil
}

// quoteClose locates the next occurrence of quote — findMatching's depth
// tracking assumes distinct open/close delimiters, which a quote character
// (the same rune opens and closes) does not have.
func (t *tokenizer) quoteClose(quote rune, from int) (int, bool) {
	for i := from; i < len(t.runes); i++ {
		if t.runes[i] == quote {
			return i, true
		}
	}
	return -1, false
}

func (t *tokenizer) parseChar() (values.Value, error) {
	close, ok := t.quoteClose('\'', t.pos+1)
	if !ok {
		return values.Value{}, fmt.Errorf("unclosed char literal")
	}
	inner := t.runes[t.pos+1 : close]
	if len(inner) != 1 {
		return values.Value{}, fmt.Errorf("char literal must be exactly one code point, got %d", len(inner))
	}
	t.pos = close + 1
	return values.Char(inner[0]), nil
}

func (t *tokenizer) parseCollection() (values.Value, error) {
	close, err := findMatching(t.runes, t.pos, '[', ']')
	if err != nil {
		return values.Value{}, err
	}
	inner := string(t.runes[t.pos+1 : close])
	t.pos = close + 1
	fragments, err := SplitTopLevel(inner, ',')
	if err != nil {
		return values.Value{}, err
	}
	items := make([]values.Value, 0, len(fragments))
	for _, frag := range fragments {
		postfix, err := ParseExpression(frag)
		if err != nil {
			return values.Value{}, err
		}
		items = append(items, values.Operation(postfix))
	}
	return values.Collection(items), nil
}

func (t *tokenizer) parseParenGroup() (values.Value, error) {
	close, err := findMatching(t.runes, t.pos, '(', ')')
	if err != nil {
		return values.Value{}, err
	}
	inner := string(t.runes[t.pos+1 : close])
	t.pos = close + 1
	postfix, err := ParseExpression(inner)
	if err != nil {
		return values.Value{}, err
	}
	return values.Operation(postfix), nil
}

func (t *tokenizer) parseIdentOrCall() (values.Value, error) {
	start := t.pos
	for t.pos < len(t.runes) && isIdentChar(t.runes[t.pos]) {
		t.pos++
	}
	name := string(t.runes[start:t.pos])

	switch name {
	case "true":
		return values.Bool(true), nil
	case "false":
		return values.Bool(false), nil
	}

	if t.pos < len(t.runes) && t.runes[t.pos] == '(' {
		close, err := findMatching(t.runes, t.pos, '(', ')')
		if err != nil {
			return values.Value{}, err
		}
		argsSource := string(t.runes[t.pos+1 : close])
		t.pos = close + 1
		return values.Value{Kind: values.KindCall, Name: name, Str: argsSource}, nil
	}
	return values.Var(name), nil
}
