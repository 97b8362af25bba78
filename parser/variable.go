/*
File    : drython/parser/variable.go
Author  : Drython Contributors
Contact : dryscript/drython
*/
package parser

import (
	"fmt"
	"strings"
)

// ParsedAssignment is the result of parsing one assignment line: the
// leading `pub!const!...` modifier names, the assignment target, and the
// (possibly desugared) right-hand-side source text, still unparsed.
type ParsedAssignment struct {
	Modifiers []string
	Name      string
	RHS       string
}

// ParseVariableLine splits an assignment line into (modifiers, name, rhs),
// desugaring `++`, `--`, and the compound `+=`/`-=`/`*=`/`/=` forms. line
// has already had its `<n>)` prefix stripped and is known (via
// lexer.Classify) to be KindAssignment.
func ParseVariableLine(line string) (ParsedAssignment, error) {
	// Modifiers live before the assignment target, so only `!` characters
	// ahead of the first `=` separate them — a `!=` in the RHS (or a `!`
	// inside a string literal there) is not a modifier boundary.
	head := line
	if eq := strings.IndexRune(line, '='); eq >= 0 {
		head = line[:eq]
	}
	var modifiers []string
	body := line
	if bang := strings.LastIndex(head, "!"); bang >= 0 {
		modifiers = strings.Split(head[:bang], "!")
		body = line[bang+1:]
	}

	if strings.HasSuffix(body, "++") {
		name := strings.TrimSuffix(body, "++")
		if name == "" {
			return ParsedAssignment{}, fmt.Errorf("malformed assignment: %q", line)
		}
		return ParsedAssignment{Modifiers: modifiers, Name: name, RHS: name + "+1"}, nil
	}
	if strings.HasSuffix(body, "--") {
		name := strings.TrimSuffix(body, "--")
		if name == "" {
			return ParsedAssignment{}, fmt.Errorf("malformed assignment: %q", line)
		}
		return ParsedAssignment{Modifiers: modifiers, Name: name, RHS: name + "-1"}, nil
	}

	idx := strings.IndexRune(body, '=')
	if idx < 0 {
		return ParsedAssignment{}, fmt.Errorf("malformed assignment: %q", line)
	}
	left := body[:idx]
	rhs := body[idx+1:]

	if left == "" || rhs == "" {
		return ParsedAssignment{}, fmt.Errorf("malformed assignment: %q", line)
	}

	if n := len(left); n > 0 {
		switch left[n-1] {
		case '+', '-', '*', '/':
			op := string(left[n-1])
			name := left[:n-1]
			if name == "" {
				return ParsedAssignment{}, fmt.Errorf("malformed assignment: %q", line)
			}
			return ParsedAssignment{Modifiers: modifiers, Name: name, RHS: name + op + rhs}, nil
		}
	}

	return ParsedAssignment{Modifiers: modifiers, Name: left, RHS: rhs}, nil
}
